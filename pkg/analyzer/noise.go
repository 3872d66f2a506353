package analyzer

import (
	"math"

	"go-image-quality/pkg/pixel"
)

// Immerkaer noise kernel: the difference of two Laplacians, blind to linear ramps
var noiseWeights = [9]float64{
	1, -2, 1,
	-2, 4, -2,
	1, -2, 1,
}

// CalculateNoise estimates high-frequency energy over interior pixels with the
// selected method. Uniform grids and grids smaller than 3x3 score 0. The result
// is clamped to [0,1].
func (mc *metricsCalculator) CalculateNoise(grid *pixel.BrightnessGrid, method NoiseMethod) float64 {
	width, height := grid.Width, grid.Height
	if width < MinGradientSize || height < MinGradientSize {
		return 0
	}

	var noise float64
	switch method {
	case NoiseMethodLocalDeviation:
		noise = mc.localDeviation(grid)
	default:
		noise = mc.immerkaer(grid)
	}
	return clamp(noise, 0, 1)
}

// immerkaer implements J. Immerkaer, "Fast Noise Variance Estimation",
// Computer Vision and Image Understanding 64(2), 1996.
func (mc *metricsCalculator) immerkaer(grid *pixel.BrightnessGrid) float64 {
	width, height := grid.Width, grid.Height
	v := grid.Values
	offsets := [9]int{
		-width - 1, -width, -width + 1,
		-1, 0, 1,
		width - 1, width, width + 1,
	}

	total := mc.sumInteriorRows(grid, func(y int) float64 {
		var row float64
		for x := 1; x < width-1; x++ {
			i := width*y + x
			// The weights sum to 0, so differences from the center give the
			// same response and cancel exactly on flat regions
			var conv float64
			for j, o := range offsets {
				conv += (v[i+o] - v[i]) * noiseWeights[j]
			}
			row += math.Abs(conv)
		}
		return row
	})

	factor := math.Sqrt(0.5*math.Pi) / (6 * float64(width-2) * float64(height-2))
	return total * factor
}

// localDeviation is the mean of |b - mean3x3(b)| over interior pixels
func (mc *metricsCalculator) localDeviation(grid *pixel.BrightnessGrid) float64 {
	width, height := grid.Width, grid.Height
	v := grid.Values

	total := mc.sumInteriorRows(grid, func(y int) float64 {
		var row float64
		for x := 1; x < width-1; x++ {
			i := width*y + x
			c := v[i]
			diff := (v[i-width-1] - c) + (v[i-width] - c) + (v[i-width+1] - c) +
				(v[i-1] - c) + (v[i+1] - c) +
				(v[i+width-1] - c) + (v[i+width] - c) + (v[i+width+1] - c)
			row += math.Abs(diff) / 9
		}
		return row
	})

	return total / float64((width-2)*(height-2))
}
