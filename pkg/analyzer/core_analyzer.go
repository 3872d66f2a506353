package analyzer

import (
	"image"
	"sync"

	apperrors "go-image-quality/pkg/errors"
	"go-image-quality/pkg/models"
	"go-image-quality/pkg/pixel"
)

// Analyze converts buf to canonical RGB and computes its quality metrics with
// DefaultOptions. It fails with the converter's error and never returns a
// partial result.
func Analyze[T pixel.Sample](buf []T, format pixel.Format, width, height int) (AnalysisResult, error) {
	return AnalyzeWithOptions(buf, format, width, height, DefaultOptions())
}

// AnalyzeWithOptions is Analyze with explicit options
func AnalyzeWithOptions[T pixel.Sample](buf []T, format pixel.Format, width, height int, options AnalysisOptions) (AnalysisResult, error) {
	if err := options.Validate(); err != nil {
		return AnalysisResult{}, err
	}
	canonical, err := pixel.ToCanonical(buf, format, width, height)
	if err != nil {
		return AnalysisResult{}, err
	}
	return analyzeGrid(NewMetricsCalculator(options.MaxWorkers), nil, canonical.Brightness(), options)
}

// coreAnalyzer implements ImageAnalyzer and owns a worker pool for estimator fan-out
type coreAnalyzer struct {
	workerPool *WorkerPool
	options    AnalysisOptions
}

// NewImageAnalyzer creates a new image analyzer with the given default options
func NewImageAnalyzer(options AnalysisOptions) (ImageAnalyzer, error) {
	if err := options.Validate(); err != nil {
		return nil, err
	}

	workerPool := NewWorkerPool(options.MaxWorkers)
	workerPool.Start()

	return &coreAnalyzer{
		workerPool: workerPool,
		options:    options,
	}, nil
}

// Analyze runs the pipeline with the analyzer's default options
func (ca *coreAnalyzer) Analyze(raw pixel.RawImage) (AnalysisResult, error) {
	return ca.AnalyzeWithOptions(raw, ca.options)
}

// AnalyzeWithOptions runs the pipeline on a runtime-typed buffer
func (ca *coreAnalyzer) AnalyzeWithOptions(raw pixel.RawImage, options AnalysisOptions) (AnalysisResult, error) {
	if err := options.Validate(); err != nil {
		return AnalysisResult{}, err
	}
	canonical, err := raw.Canonical()
	if err != nil {
		return AnalysisResult{}, err
	}
	return ca.AnalyzeGrid(canonical.Brightness(), options)
}

// AnalyzeImage flattens img with pixel.FromImage and analyzes it
func (ca *coreAnalyzer) AnalyzeImage(img image.Image, options AnalysisOptions) (AnalysisResult, error) {
	return ca.AnalyzeWithOptions(pixel.FromImage(img), options)
}

// AnalyzeGrid computes all metrics of grid
func (ca *coreAnalyzer) AnalyzeGrid(grid *pixel.BrightnessGrid, options AnalysisOptions) (AnalysisResult, error) {
	if err := options.Validate(); err != nil {
		return AnalysisResult{}, err
	}
	workers := options.MaxWorkers
	if workers == 0 {
		workers = ca.workerPool.Workers()
	}
	return analyzeGrid(NewMetricsCalculator(workers), ca.workerPool, grid, options)
}

// Stats reports the worker pool counters
func (ca *coreAnalyzer) Stats() PoolStats {
	return ca.workerPool.GetStats()
}

// Close shuts down the worker pool
func (ca *coreAnalyzer) Close() error {
	ca.workerPool.Close()
	return nil
}

// analyzeGrid validates grid and fans the statistics, gradient and noise
// estimators out over it. pool may be nil, in which case plain goroutines are used.
func analyzeGrid(calc MetricsCalculator, pool *WorkerPool, grid *pixel.BrightnessGrid, options AnalysisOptions) (AnalysisResult, error) {
	if grid == nil {
		return AnalysisResult{}, apperrors.NewInvalidDimensionsError("missing brightness grid", 0, 0)
	}
	if err := pixel.ValidateArea(grid.Width, grid.Height, 1); err != nil {
		return AnalysisResult{}, err
	}
	if expected := grid.Width * grid.Height; len(grid.Values) != expected {
		return AnalysisResult{}, apperrors.NewInvalidBufferSizeError(expected, len(grid.Values))
	}
	if options.StrictDimensions && (grid.Width < MinGradientSize || grid.Height < MinGradientSize) {
		return AnalysisResult{}, apperrors.NewInvalidDimensionsError("image too small for gradient estimation", grid.Width, grid.Height)
	}

	var (
		basic     metrics
		sharpness float64
		noise     float64
	)
	jobs := []func(){
		func() { basic = calc.CalculateBasicMetrics(grid) },
		func() { sharpness = calc.CalculateSharpness(grid) },
		func() { noise = calc.CalculateNoise(grid, options.NoiseMethod) },
	}

	if options.UseWorkerPool {
		var wg sync.WaitGroup
		wg.Add(len(jobs))
		for _, job := range jobs {
			run := func() {
				defer wg.Done()
				job()
			}
			if pool == nil || !pool.Submit(run) {
				go run()
			}
		}
		wg.Wait()
	} else {
		for _, job := range jobs {
			job()
		}
	}

	return models.AnalysisResult{
		Contrast: models.Contrast{
			RMS:       basic.rmsContrast,
			Michelson: basic.michelsonContrast,
		},
		Brightness: basic.brightness,
		Noise:      noise,
		Sharpness:  sharpness,
		Blur:       BlurFromSharpness(sharpness, options.BlurScale),
	}, nil
}
