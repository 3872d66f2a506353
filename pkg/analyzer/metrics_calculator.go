package analyzer

import (
	"math"
	"runtime"
	"sync"

	"go-image-quality/pkg/pixel"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MinGradientSize is the smallest width and height with an interior pixel
const MinGradientSize = 3

// Grids below this many evaluated pixels are processed in a single strip
const parallelThreshold = 100000

// metricsCalculator implements MetricsCalculator using Gonum and row-strip parallelism
type metricsCalculator struct {
	workers int
}

// NewMetricsCalculator creates a metrics calculator. workers <= 0 uses the CPU count.
func NewMetricsCalculator(workers int) MetricsCalculator {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &metricsCalculator{workers: workers}
}

// CalculateBasicMetrics computes brightness, RMS contrast and Michelson contrast
func (mc *metricsCalculator) CalculateBasicMetrics(grid *pixel.BrightnessGrid) metrics {
	if len(grid.Values) == 0 {
		return metrics{}
	}

	maxB := floats.Max(grid.Values)
	minB := floats.Min(grid.Values)
	if maxB == minB {
		return metrics{brightness: clamp(maxB, 0, 1)}
	}

	mean, variance := stat.PopMeanVariance(grid.Values, nil)

	// Defined as 0 when every pixel is black
	michelson := 0.0
	if denom := maxB + minB; denom > 0 {
		michelson = (maxB - minB) / denom
	}

	return metrics{
		brightness:        clamp(mean, 0, 1),
		rmsContrast:       clamp(math.Sqrt(math.Max(variance, 0)), 0, 1),
		michelsonContrast: clamp(michelson, 0, 1),
	}
}

// CalculateSharpness returns the mean Sobel gradient magnitude over interior
// pixels. Border pixels are excluded. Grids smaller than 3x3 score 0.
func (mc *metricsCalculator) CalculateSharpness(grid *pixel.BrightnessGrid) float64 {
	width, height := grid.Width, grid.Height
	if width < MinGradientSize || height < MinGradientSize {
		return 0
	}

	v := grid.Values
	total := mc.sumInteriorRows(grid, func(y int) float64 {
		var row float64
		for x := 1; x < width-1; x++ {
			gx := calculateSobelX(v, width, x, y)
			gy := calculateSobelY(v, width, x, y)
			row += math.Sqrt(gx*gx + gy*gy)
		}
		return row
	})

	return clamp(total/float64((width-2)*(height-2)), 0, MaxGradientMagnitude)
}

// MaxGradientMagnitude bounds the Sobel magnitude for brightness in [0,1]
var MaxGradientMagnitude = 4 * math.Sqrt2

// BlurFromSharpness maps sharpness onto (0,1]; 1 means no detectable edges
func BlurFromSharpness(sharpness, scale float64) float64 {
	if scale <= 0 || math.IsNaN(scale) {
		scale = DefaultBlurScale
	}
	blur := 1 / (1 + math.Max(sharpness, 0)/scale)
	if math.IsNaN(blur) {
		return 1
	}
	return clamp(blur, 0, 1)
}

// calculateSobelX applies the horizontal kernel [-1 0 1; -2 0 2; -1 0 1]
func calculateSobelX(v []float64, width, x, y int) float64 {
	i := width*y + x
	return -v[i-width-1] + v[i-width+1] +
		-2*v[i-1] + 2*v[i+1] +
		-v[i+width-1] + v[i+width+1]
}

// calculateSobelY applies the vertical kernel [1 2 1; 0 0 0; -1 -2 -1]
func calculateSobelY(v []float64, width, x, y int) float64 {
	i := width*y + x
	return v[i-width-1] + 2*v[i-width] + v[i-width+1] -
		v[i+width-1] - 2*v[i+width] - v[i+width+1]
}

// sumInteriorRows evaluates rowSum for every interior row in horizontal strips
// and folds the per-strip sums in strip order, so the result only depends on
// the number of strips.
func (mc *metricsCalculator) sumInteriorRows(grid *pixel.BrightnessGrid, rowSum func(y int) float64) float64 {
	first, last := 1, grid.Height-1
	rows := last - first
	if rows <= 0 {
		return 0
	}

	numWorkers := mc.workers
	if rows*grid.Width < parallelThreshold {
		numWorkers = 1
	}
	if rows < numWorkers {
		numWorkers = rows
	}
	rowsPerWorker := (rows + numWorkers - 1) / numWorkers // ceil division

	partials := make([]float64, numWorkers)
	if numWorkers == 1 {
		for y := first; y < last; y++ {
			partials[0] += rowSum(y)
		}
		return partials[0]
	}

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		startY := first + i*rowsPerWorker
		endY := startY + rowsPerWorker
		if endY > last {
			endY = last
		}
		if startY >= endY {
			continue
		}
		wg.Add(1)
		go func(i, startY, endY int) {
			defer wg.Done()
			var sum float64
			for y := startY; y < endY; y++ {
				sum += rowSum(y)
			}
			partials[i] = sum
		}(i, startY, endY)
	}
	wg.Wait()

	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}

// clamp bounds v to [lo, hi] and maps NaN to lo
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
