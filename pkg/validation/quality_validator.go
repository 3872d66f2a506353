package validation

import (
	"go-image-quality/pkg/models"
)

// QualityThresholds defines configurable thresholds for quality validation.
// All values share the [0,1] scale of the analysis metrics.
type QualityThresholds struct {
	// Brightness thresholds
	MinBrightness float64
	MaxBrightness float64

	// Contrast threshold
	MinRMSContrast float64

	// Noise threshold
	MaxNoise float64

	// Blur threshold (blur of 0.5 means sharpness equals the blur scale)
	MaxBlur float64
}

// DefaultQualityThresholds returns the default quality thresholds
func DefaultQualityThresholds() QualityThresholds {
	return QualityThresholds{
		MinBrightness:  0.15,
		MaxBrightness:  0.9,
		MinRMSContrast: 0.05,
		MaxNoise:       0.08,
		MaxBlur:        0.6,
	}
}

// QualityValidator handles image quality validation logic
type QualityValidator struct {
	thresholds QualityThresholds
}

// NewQualityValidator creates a new quality validator with default thresholds
func NewQualityValidator() *QualityValidator {
	return &QualityValidator{
		thresholds: DefaultQualityThresholds(),
	}
}

// NewQualityValidatorWithThresholds creates a quality validator with custom thresholds
func NewQualityValidatorWithThresholds(thresholds QualityThresholds) *QualityValidator {
	return &QualityValidator{
		thresholds: thresholds,
	}
}

// Thresholds returns the thresholds in use
func (qv *QualityValidator) Thresholds() QualityThresholds {
	return qv.thresholds
}

// Validate checks an analysis result against the thresholds
func (qv *QualityValidator) Validate(result models.AnalysisResult) []models.QualityIssue {
	var issues []models.QualityIssue

	// 1. Blur
	if result.Blur > qv.thresholds.MaxBlur {
		issues = append(issues, models.QualityIssue{
			Type:        "blurriness",
			Message:     "Image is blurry. Please hold the camera steady and try again.",
			Severity:    "error",
			ActualValue: result.Blur,
			Threshold:   qv.thresholds.MaxBlur,
		})
	}

	// 2. Brightness
	if result.Brightness < qv.thresholds.MinBrightness {
		issues = append(issues, models.QualityIssue{
			Type:        "too_dark",
			Message:     "Image is too dark. Take the photo in more light.",
			Severity:    "error",
			ActualValue: result.Brightness,
			Threshold:   qv.thresholds.MinBrightness,
		})
	} else if result.Brightness > qv.thresholds.MaxBrightness {
		issues = append(issues, models.QualityIssue{
			Type:        "too_bright",
			Message:     "Image is too bright. Avoid strong sunlight or flash.",
			Severity:    "error",
			ActualValue: result.Brightness,
			Threshold:   qv.thresholds.MaxBrightness,
		})
	}

	// 3. Contrast
	if result.Contrast.RMS < qv.thresholds.MinRMSContrast {
		issues = append(issues, models.QualityIssue{
			Type:        "low_contrast",
			Message:     "Image looks flat. Use even lighting with a clear subject.",
			Severity:    "warning",
			ActualValue: result.Contrast.RMS,
			Threshold:   qv.thresholds.MinRMSContrast,
		})
	}

	// 4. Noise
	if result.Noise > qv.thresholds.MaxNoise {
		issues = append(issues, models.QualityIssue{
			Type:        "noise",
			Message:     "Image is grainy. Use more light or a lower ISO setting.",
			Severity:    "warning",
			ActualValue: result.Noise,
			Threshold:   qv.thresholds.MaxNoise,
		})
	}

	return issues
}

// ConvertIssuesToMessages converts quality issues to simple error messages
func (qv *QualityValidator) ConvertIssuesToMessages(issues []models.QualityIssue) []string {
	var messages []string
	for _, issue := range issues {
		messages = append(messages, issue.Message)
	}
	return messages
}

// HasCriticalIssues checks if there are any critical (error severity) issues
func (qv *QualityValidator) HasCriticalIssues(issues []models.QualityIssue) bool {
	for _, issue := range issues {
		if issue.Severity == "error" {
			return true
		}
	}
	return false
}
