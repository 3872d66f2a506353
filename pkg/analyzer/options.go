package analyzer

import (
	"math"
	"strings"

	apperrors "go-image-quality/pkg/errors"
)

// NoiseMethod selects the noise estimation algorithm
type NoiseMethod string

const (
	// NoiseMethodImmerkaer estimates the standard deviation of additive noise
	// from the response of a Laplacian-difference kernel
	NoiseMethodImmerkaer NoiseMethod = "immerkaer"
	// NoiseMethodLocalDeviation averages the absolute deviation of each pixel
	// from its 3x3 neighbourhood mean
	NoiseMethodLocalDeviation NoiseMethod = "local_deviation"
)

// DefaultBlurScale is the sharpness at which blur equals 0.5
const DefaultBlurScale = 0.1

// ParseNoiseMethod maps a method name to a NoiseMethod. An empty name selects the default.
func ParseNoiseMethod(name string) (NoiseMethod, error) {
	switch NoiseMethod(strings.ToLower(strings.TrimSpace(name))) {
	case "", NoiseMethodImmerkaer:
		return NoiseMethodImmerkaer, nil
	case NoiseMethodLocalDeviation:
		return NoiseMethodLocalDeviation, nil
	}
	return "", apperrors.NewValidationError("unknown noise method "+name, nil)
}

// AnalysisOptions provides flexible configuration for image analysis
type AnalysisOptions struct {
	// Blur = 1 / (1 + sharpness/BlurScale)
	BlurScale   float64
	NoiseMethod NoiseMethod

	// Fail with an invalid dimensions error instead of scoring images
	// smaller than 3x3 as sharpness 0, blur 1
	StrictDimensions bool

	// Performance options
	UseWorkerPool bool
	MaxWorkers    int
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		BlurScale:        DefaultBlurScale,
		NoiseMethod:      NoiseMethodImmerkaer,
		StrictDimensions: false,
		UseWorkerPool:    true,
		MaxWorkers:       0, // Use default CPU count
	}
}

// SequentialOptions returns options that evaluate every estimator on the calling goroutine
func SequentialOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.UseWorkerPool = false
	opts.MaxWorkers = 1
	return opts
}

// StrictOptions returns options that reject images too small for gradient estimation
func StrictOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.StrictDimensions = true
	return opts
}

// WithBlurScale sets the sharpness-to-blur scale
func (opts AnalysisOptions) WithBlurScale(scale float64) AnalysisOptions {
	opts.BlurScale = scale
	return opts
}

// WithNoiseMethod selects the noise estimator
func (opts AnalysisOptions) WithNoiseMethod(method NoiseMethod) AnalysisOptions {
	opts.NoiseMethod = method
	return opts
}

// WithStrictDimensions toggles rejection of images smaller than 3x3
func (opts AnalysisOptions) WithStrictDimensions(strict bool) AnalysisOptions {
	opts.StrictDimensions = strict
	return opts
}

// WithMaxWorkers bounds the goroutines used for row strips
func (opts AnalysisOptions) WithMaxWorkers(workers int) AnalysisOptions {
	opts.MaxWorkers = workers
	return opts
}

// Validate checks the options and fills in the default noise method
func (opts *AnalysisOptions) Validate() error {
	if math.IsNaN(opts.BlurScale) || math.IsInf(opts.BlurScale, 0) || opts.BlurScale <= 0 {
		return apperrors.NewValidationError("blur scale must be a positive finite number", nil)
	}
	method, err := ParseNoiseMethod(string(opts.NoiseMethod))
	if err != nil {
		return err
	}
	opts.NoiseMethod = method
	if opts.MaxWorkers < 0 {
		return apperrors.NewValidationError("max workers must not be negative", nil)
	}
	return nil
}
