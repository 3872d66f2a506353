package pixel

// Weights are the perceptual contributions of R, G and B to luminance. They sum to 1.
var Weights = RGB{0.2125, 0.7154, 0.0721}

// Luminance reduces a canonical triplet to perceptual brightness
func Luminance(c RGB) float64 {
	return c[0]*Weights[0] + c[1]*Weights[1] + c[2]*Weights[2]
}

// MonoToRGB expands a normalized gray value to the neutral triplet whose
// Luminance is m.
func MonoToRGB(m float64) RGB {
	return RGB{m, m, m}
}

// BrightnessGrid holds one luminance value per pixel, row-major
type BrightnessGrid struct {
	Values []float64
	Width  int
	Height int
}

// At returns the brightness at column x, row y
func (g *BrightnessGrid) At(x, y int) float64 {
	return g.Values[g.Width*y+x]
}

// Brightness builds the luminance grid of c
func (c *CanonicalImage) Brightness() *BrightnessGrid {
	grid := &BrightnessGrid{
		Values: make([]float64, len(c.Pix)),
		Width:  c.Width,
		Height: c.Height,
	}
	for i, px := range c.Pix {
		grid.Values[i] = normalize(Luminance(px))
	}
	return grid
}
