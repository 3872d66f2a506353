package pixel

import (
	"math"

	apperrors "go-image-quality/pkg/errors"
)

// RGB is a canonical color triplet with every channel in [0,1]
type RGB [3]float64

// CanonicalImage is the normalized three channel form every input layout converts to
type CanonicalImage struct {
	Pix    []RGB
	Width  int
	Height int
}

// ValidateDimensions rejects images without pixels
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return apperrors.NewInvalidDimensionsError("image must have at least one pixel", width, height)
	}
	return nil
}

// ValidateArea rejects dimensions whose width*height*channels product does not fit in an int
func ValidateArea(width, height, channels int) error {
	if err := ValidateDimensions(width, height); err != nil {
		return err
	}
	if channels <= 0 || width > math.MaxInt/height/channels {
		return apperrors.NewInvalidDimensionsError("image dimensions overflow the sample count", width, height)
	}
	return nil
}

// ExpectedSamples returns width*height*channels for format, validating every operand
func ExpectedSamples(format Format, width, height int) (int, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return 0, err
	}
	channels := format.ChannelCount()
	if channels == 0 {
		return 0, apperrors.NewUnsupportedFormatError("unknown pixel format")
	}
	if err := ValidateArea(width, height, channels); err != nil {
		return 0, err
	}
	return width * height * channels, nil
}

// ToCanonical validates buf against format and dimensions and converts it to
// canonical RGB. buf is only read. Alpha samples are skipped.
func ToCanonical[T Sample](buf []T, format Format, width, height int) (*CanonicalImage, error) {
	expected, err := ExpectedSamples(format, width, height)
	if err != nil {
		return nil, err
	}
	if len(buf) != expected {
		return nil, apperrors.NewInvalidBufferSizeError(expected, len(buf))
	}

	scale := 1 / Divisor[T]()
	out := &CanonicalImage{
		Pix:    make([]RGB, width*height),
		Width:  width,
		Height: height,
	}

	switch format {
	case FormatRGBA:
		for i := range out.Pix {
			src := buf[i*4 : i*4+3]
			out.Pix[i] = RGB{
				normalize(float64(src[0]) * scale),
				normalize(float64(src[1]) * scale),
				normalize(float64(src[2]) * scale),
			}
		}
	case FormatRGB:
		for i := range out.Pix {
			src := buf[i*3 : i*3+3]
			out.Pix[i] = RGB{
				normalize(float64(src[0]) * scale),
				normalize(float64(src[1]) * scale),
				normalize(float64(src[2]) * scale),
			}
		}
	case FormatMono:
		for i := range out.Pix {
			out.Pix[i] = MonoToRGB(normalize(float64(buf[i]) * scale))
		}
	}

	return out, nil
}

// normalize clamps a scaled sample into [0,1]; NaN becomes 0
func normalize(v float64) float64 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 1
	}
	return v
}
