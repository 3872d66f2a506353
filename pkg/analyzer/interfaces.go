package analyzer

import (
	"image"

	"go-image-quality/pkg/pixel"
)

// ImageAnalyzer defines the main interface for image analysis
type ImageAnalyzer interface {
	// Analyze runs the pipeline on a runtime-typed buffer with the analyzer's options
	Analyze(raw pixel.RawImage) (AnalysisResult, error)
	AnalyzeWithOptions(raw pixel.RawImage, options AnalysisOptions) (AnalysisResult, error)

	// AnalyzeImage flattens a decoded image and analyzes it
	AnalyzeImage(img image.Image, options AnalysisOptions) (AnalysisResult, error)

	// AnalyzeGrid computes the metrics of an existing brightness grid
	AnalyzeGrid(grid *pixel.BrightnessGrid, options AnalysisOptions) (AnalysisResult, error)

	// Stats reports worker pool activity
	Stats() PoolStats

	// Lifecycle management
	Close() error
}

// MetricsCalculator handles image metrics computation over a brightness grid
type MetricsCalculator interface {
	CalculateBasicMetrics(grid *pixel.BrightnessGrid) metrics
	CalculateSharpness(grid *pixel.BrightnessGrid) float64
	CalculateNoise(grid *pixel.BrightnessGrid, method NoiseMethod) float64
}
