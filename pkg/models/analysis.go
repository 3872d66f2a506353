package models

import "time"

// Contrast holds the two contrast measures derived from per-pixel brightness
type Contrast struct {
	RMS       float64 `json:"rms"`
	Michelson float64 `json:"michelson"`
}

// AnalysisResult is the fixed-size metric record produced for one pixel buffer.
// Every field is finite.
type AnalysisResult struct {
	Contrast   Contrast `json:"contrast"`
	Brightness float64  `json:"brightness"`
	Noise      float64  `json:"noise"`
	Sharpness  float64  `json:"sharpness"`
	Blur       float64  `json:"blur"`
}

// ImageMetadata describes the buffer an analysis was computed from
type ImageMetadata struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	Format       string `json:"format"`
	SampleKind   string `json:"sample_kind"`
	SourceFormat string `json:"source_format,omitempty"`
	Downscaled   bool   `json:"downscaled,omitempty"`
}

// QualityIssue represents a quality validation finding
type QualityIssue struct {
	Type        string  `json:"type"`
	Message     string  `json:"message"`
	Severity    string  `json:"severity"` // "error", "warning", "info"
	ActualValue float64 `json:"actual_value,omitempty"`
	Threshold   float64 `json:"threshold,omitempty"`
}

// ImageAnalysisResponse is the service-level envelope around an AnalysisResult
type ImageAnalysisResponse struct {
	ID                string         `json:"id"`
	ImageURL          string         `json:"image_url,omitempty"`
	Timestamp         time.Time      `json:"timestamp"`
	ProcessingTimeSec float64        `json:"processing_time_sec"`
	Metadata          ImageMetadata  `json:"metadata"`
	Result            AnalysisResult `json:"result"`
	IsValid           bool           `json:"is_valid"`
	Issues            []QualityIssue `json:"issues,omitempty"`
}
