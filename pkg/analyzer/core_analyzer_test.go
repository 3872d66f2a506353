package analyzer

import (
	stderrors "errors"
	"image"
	"image/color"
	"math"
	"math/bits"
	"testing"

	apperrors "go-image-quality/pkg/errors"
	"go-image-quality/pkg/pixel"
)

const epsilon = 1e-9

// uniformBuffer fills width*height pixels of format with the same sample values
func uniformBuffer[T pixel.Sample](format pixel.Format, width, height int, px ...T) []T {
	buf := make([]T, 0, width*height*format.ChannelCount())
	for i := 0; i < width*height; i++ {
		buf = append(buf, px...)
	}
	return buf
}

// checkerboard creates a MONO uint8 buffer alternating black and white cells
func checkerboard(width, height, cell int) []uint8 {
	buf := make([]uint8, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/cell+y/cell)%2 == 1 {
				buf[width*y+x] = 255
			}
		}
	}
	return buf
}

func TestAnalyze_AllZeroMono(t *testing.T) {
	result, err := Analyze(make([]uint8, 512*512), pixel.FormatMono, 512, 512)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if result.Brightness != 0 {
		t.Errorf("Expected brightness 0, got %f", result.Brightness)
	}
	if result.Contrast.RMS != 0 {
		t.Errorf("Expected RMS contrast 0, got %f", result.Contrast.RMS)
	}
	if result.Contrast.Michelson != 0 {
		t.Errorf("Expected Michelson contrast 0, got %f", result.Contrast.Michelson)
	}
	if result.Noise != 0 {
		t.Errorf("Expected noise 0, got %f", result.Noise)
	}
	if result.Sharpness != 0 {
		t.Errorf("Expected sharpness 0, got %f", result.Sharpness)
	}
	if result.Blur != 1 {
		t.Errorf("Expected blur 1, got %f", result.Blur)
	}
}

func TestAnalyze_BlackWhiteRGB(t *testing.T) {
	buf := []uint8{
		255, 255, 255, 0, 0, 0,
		255, 255, 255, 0, 0, 0,
	}
	result, err := Analyze(buf, pixel.FormatRGB, 2, 2)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if math.Abs(result.Brightness-0.5) > epsilon {
		t.Errorf("Expected brightness 0.5, got %f", result.Brightness)
	}
	if math.Abs(result.Contrast.Michelson-1) > epsilon {
		t.Errorf("Expected Michelson contrast 1, got %f", result.Contrast.Michelson)
	}
	if math.Abs(result.Contrast.RMS-0.5) > epsilon {
		t.Errorf("Expected RMS contrast 0.5, got %f", result.Contrast.RMS)
	}
	// Too small for gradients: degenerate scores
	if result.Sharpness != 0 || result.Blur != 1 || result.Noise != 0 {
		t.Errorf("Expected sharpness 0, blur 1, noise 0, got %f, %f, %f", result.Sharpness, result.Blur, result.Noise)
	}
}

func TestAnalyze_WrongBufferSize(t *testing.T) {
	for _, format := range []pixel.Format{pixel.FormatMono, pixel.FormatRGB, pixel.FormatRGBA} {
		t.Run(format.String(), func(t *testing.T) {
			buf := make([]uint8, 512*513*format.ChannelCount())
			_, err := Analyze(buf, format, 512, 512)
			if !stderrors.Is(err, apperrors.ErrInvalidBufferSize) {
				t.Fatalf("Expected ErrInvalidBufferSize, got %v", err)
			}
			var sizeErr *apperrors.BufferSizeError
			if !stderrors.As(err, &sizeErr) {
				t.Fatal("Expected BufferSizeError cause")
			}
			if sizeErr.Expected != 512*512*format.ChannelCount() || sizeErr.Actual != len(buf) {
				t.Errorf("Unexpected sizes %d/%d", sizeErr.Expected, sizeErr.Actual)
			}
		})
	}
}

func TestAnalyze_ZeroDimensions(t *testing.T) {
	testCases := []struct {
		name          string
		width, height int
	}{
		{"Zero width", 0, 16},
		{"Zero height", 16, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Analyze([]float32{}, pixel.FormatRGB, tc.width, tc.height)
			if !stderrors.Is(err, apperrors.ErrInvalidDimensions) {
				t.Errorf("Expected ErrInvalidDimensions, got %v", err)
			}
			if result != (AnalysisResult{}) {
				t.Errorf("Expected empty result on error, got %+v", result)
			}
		})
	}
}

func TestAnalyze_OverflowingDimensions(t *testing.T) {
	const side = 1 << (bits.UintSize / 2)

	for _, opts := range []AnalysisOptions{DefaultOptions(), SequentialOptions()} {
		result, err := AnalyzeWithOptions([]uint8{}, pixel.FormatMono, side, side, opts)
		if !stderrors.Is(err, apperrors.ErrInvalidDimensions) {
			t.Errorf("Expected ErrInvalidDimensions, got %v", err)
		}
		if result != (AnalysisResult{}) {
			t.Errorf("Expected empty result on error, got %+v", result)
		}
	}
}

func TestImageAnalyzer_AnalyzeGridRejectsOverflow(t *testing.T) {
	ia, err := NewImageAnalyzer(DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to create image analyzer: %v", err)
	}
	defer ia.Close()

	const side = 1 << (bits.UintSize / 2)
	grid := &pixel.BrightnessGrid{Width: side, Height: side}
	if _, err := ia.AnalyzeGrid(grid, DefaultOptions()); !stderrors.Is(err, apperrors.ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}
}

func TestAnalyze_AlphaInvariance(t *testing.T) {
	const size = 512
	rgba := make([]uint8, 0, size*size*4)
	for i := 0; i < size*size; i++ {
		rgba = append(rgba, 128, 128, 128, uint8(i*7%256))
	}

	varied, err := Analyze(rgba, pixel.FormatRGBA, size, size)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	opaque, err := Analyze(uniformBuffer[uint8](pixel.FormatRGBA, size, size, 128, 128, 128, 255), pixel.FormatRGBA, size, size)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if varied != opaque {
		t.Errorf("Alpha changed the result: %+v vs %+v", varied, opaque)
	}
}

func TestAnalyze_AlphaStrippedMatchesRGB(t *testing.T) {
	const width, height = 31, 17
	rgba := make([]uint8, 0, width*height*4)
	rgb := make([]uint8, 0, width*height*3)
	for i := 0; i < width*height; i++ {
		r, g, b := uint8(i*13), uint8(i*29), uint8(i*3)
		rgba = append(rgba, r, g, b, uint8(i))
		rgb = append(rgb, r, g, b)
	}

	opts := SequentialOptions()
	a, err := AnalyzeWithOptions(rgba, pixel.FormatRGBA, width, height, opts)
	if err != nil {
		t.Fatalf("RGBA analyze failed: %v", err)
	}
	b, err := AnalyzeWithOptions(rgb, pixel.FormatRGB, width, height, opts)
	if err != nil {
		t.Fatalf("RGB analyze failed: %v", err)
	}
	if a != b {
		t.Errorf("Expected identical results, got %+v vs %+v", a, b)
	}
}

func TestAnalyze_UniformBrightnessAcrossFormats(t *testing.T) {
	for _, c := range []float64{0.25, 0.5, 1} {
		mono, err := Analyze(uniformBuffer[float64](pixel.FormatMono, 8, 8, c), pixel.FormatMono, 8, 8)
		if err != nil {
			t.Fatalf("MONO analyze failed: %v", err)
		}
		rgb, err := Analyze(uniformBuffer[float64](pixel.FormatRGB, 8, 8, c, c, c), pixel.FormatRGB, 8, 8)
		if err != nil {
			t.Fatalf("RGB analyze failed: %v", err)
		}
		rgba, err := Analyze(uniformBuffer[float64](pixel.FormatRGBA, 8, 8, c, c, c, 0.3), pixel.FormatRGBA, 8, 8)
		if err != nil {
			t.Fatalf("RGBA analyze failed: %v", err)
		}

		for name, result := range map[string]AnalysisResult{"MONO": mono, "RGB": rgb, "RGBA": rgba} {
			if math.Abs(result.Brightness-c) > epsilon {
				t.Errorf("%s: expected brightness %f, got %f", name, c, result.Brightness)
			}
			if result.Contrast.RMS != 0 || result.Contrast.Michelson != 0 {
				t.Errorf("%s: expected zero contrast, got %+v", name, result.Contrast)
			}
			if result.Noise != 0 || result.Sharpness != 0 {
				t.Errorf("%s: expected zero noise and sharpness, got %f, %f", name, result.Noise, result.Sharpness)
			}
		}
	}
}

func TestAnalyze_Uint8FullScaleRGB(t *testing.T) {
	result, err := Analyze(uniformBuffer[uint8](pixel.FormatRGB, 16, 16, 255, 255, 255), pixel.FormatRGB, 16, 16)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if math.Abs(result.Brightness-1) > epsilon {
		t.Errorf("Expected brightness 1, got %f", result.Brightness)
	}
}

func TestAnalyze_SampleKindsAgree(t *testing.T) {
	const width, height = 12, 9
	u8 := make([]uint8, width*height)
	u16 := make([]uint16, width*height)
	f32 := make([]float32, width*height)
	for i := range u8 {
		u8[i] = uint8(i * 37 % 256)
		u16[i] = uint16(u8[i]) * 257
		f32[i] = float32(u8[i]) / 255
	}

	opts := SequentialOptions()
	a, err := AnalyzeWithOptions(u8, pixel.FormatMono, width, height, opts)
	if err != nil {
		t.Fatalf("uint8 analyze failed: %v", err)
	}
	b, err := AnalyzeWithOptions(u16, pixel.FormatMono, width, height, opts)
	if err != nil {
		t.Fatalf("uint16 analyze failed: %v", err)
	}
	c, err := AnalyzeWithOptions(f32, pixel.FormatMono, width, height, opts)
	if err != nil {
		t.Fatalf("float32 analyze failed: %v", err)
	}

	for _, other := range []AnalysisResult{b, c} {
		if math.Abs(a.Brightness-other.Brightness) > 1e-5 ||
			math.Abs(a.Contrast.RMS-other.Contrast.RMS) > 1e-5 ||
			math.Abs(a.Sharpness-other.Sharpness) > 1e-5 ||
			math.Abs(a.Noise-other.Noise) > 1e-5 {
			t.Errorf("Results differ: %+v vs %+v", a, other)
		}
	}
}

func TestAnalyze_SharpVersusSmooth(t *testing.T) {
	const size = 64
	sharp, err := Analyze(checkerboard(size, size, 4), pixel.FormatMono, size, size)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	ramp := make([]uint8, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			ramp[size*y+x] = uint8(x * 2)
		}
	}
	smooth, err := Analyze(ramp, pixel.FormatMono, size, size)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}

	if sharp.Sharpness <= smooth.Sharpness {
		t.Errorf("Expected checkerboard sharper than ramp: %f <= %f", sharp.Sharpness, smooth.Sharpness)
	}
	if sharp.Blur >= smooth.Blur {
		t.Errorf("Expected checkerboard less blurry than ramp: %f >= %f", sharp.Blur, smooth.Blur)
	}
	// A linear ramp carries structure but no noise
	if smooth.Noise > epsilon {
		t.Errorf("Expected no noise on a linear ramp, got %f", smooth.Noise)
	}
}

func TestAnalyze_StrictDimensions(t *testing.T) {
	_, err := AnalyzeWithOptions(make([]uint8, 4), pixel.FormatMono, 2, 2, StrictOptions())
	if !stderrors.Is(err, apperrors.ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions, got %v", err)
	}

	if _, err := AnalyzeWithOptions(make([]uint8, 9), pixel.FormatMono, 3, 3, StrictOptions()); err != nil {
		t.Errorf("Expected 3x3 to pass strict mode, got %v", err)
	}
}

func TestAnalyze_InvalidOptions(t *testing.T) {
	_, err := AnalyzeWithOptions(make([]uint8, 9), pixel.FormatMono, 3, 3, DefaultOptions().WithBlurScale(0))
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected validation error for zero blur scale, got %v", err)
	}
	_, err = AnalyzeWithOptions(make([]uint8, 9), pixel.FormatMono, 3, 3, DefaultOptions().WithNoiseMethod("fft"))
	if !apperrors.IsType(err, apperrors.ErrorTypeValidation) {
		t.Errorf("Expected validation error for unknown noise method, got %v", err)
	}
}

func TestAnalyze_ResultsAreFinite(t *testing.T) {
	buf := []float32{
		float32(math.NaN()), float32(math.Inf(1)), float32(math.Inf(-1)),
		-3, 7, 0.5,
		1e30, -1e30, 0.25,
	}
	result, err := Analyze(buf, pixel.FormatMono, 3, 3)
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	for name, v := range map[string]float64{
		"brightness": result.Brightness,
		"rms":        result.Contrast.RMS,
		"michelson":  result.Contrast.Michelson,
		"noise":      result.Noise,
		"sharpness":  result.Sharpness,
		"blur":       result.Blur,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is not finite: %f", name, v)
		}
	}
}

func TestImageAnalyzer_ParallelMatchesSequential(t *testing.T) {
	const size = 400
	buf := checkerboard(size, size, 3)
	for i := range buf {
		buf[i] ^= uint8(i * 31 % 17)
	}

	sequential, err := AnalyzeWithOptions(buf, pixel.FormatMono, size, size, SequentialOptions())
	if err != nil {
		t.Fatalf("Sequential analyze failed: %v", err)
	}

	ia, err := NewImageAnalyzer(DefaultOptions().WithMaxWorkers(4))
	if err != nil {
		t.Fatalf("Failed to create image analyzer: %v", err)
	}
	defer ia.Close()

	parallel, err := ia.Analyze(pixel.EncodeSamples(buf, pixel.FormatMono, size, size))
	if err != nil {
		t.Fatalf("Parallel analyze failed: %v", err)
	}

	pairs := [][2]float64{
		{sequential.Brightness, parallel.Brightness},
		{sequential.Contrast.RMS, parallel.Contrast.RMS},
		{sequential.Contrast.Michelson, parallel.Contrast.Michelson},
		{sequential.Noise, parallel.Noise},
		{sequential.Sharpness, parallel.Sharpness},
		{sequential.Blur, parallel.Blur},
	}
	for i, p := range pairs {
		if math.Abs(p[0]-p[1]) > 1e-9 {
			t.Errorf("Metric %d differs: %f vs %f", i, p[0], p[1])
		}
	}
}

func TestImageAnalyzer_AnalyzeImage(t *testing.T) {
	ia, err := NewImageAnalyzer(DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to create image analyzer: %v", err)
	}
	defer ia.Close()

	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(x * 10)})
		}
	}

	result, err := ia.AnalyzeImage(img, DefaultOptions())
	if err != nil {
		t.Fatalf("AnalyzeImage failed: %v", err)
	}
	if math.Abs(result.Brightness-1) > epsilon {
		t.Errorf("Expected brightness 1 regardless of alpha, got %f", result.Brightness)
	}
}

func TestImageAnalyzer_AnalyzeGridRejectsMismatch(t *testing.T) {
	ia, err := NewImageAnalyzer(SequentialOptions())
	if err != nil {
		t.Fatalf("Failed to create image analyzer: %v", err)
	}
	defer ia.Close()

	grid := &pixel.BrightnessGrid{Values: make([]float64, 5), Width: 2, Height: 2}
	if _, err := ia.AnalyzeGrid(grid, SequentialOptions()); !stderrors.Is(err, apperrors.ErrInvalidBufferSize) {
		t.Errorf("Expected ErrInvalidBufferSize, got %v", err)
	}
}

func TestNewImageAnalyzer_InvalidOptions(t *testing.T) {
	if _, err := NewImageAnalyzer(AnalysisOptions{}); err == nil {
		t.Error("Expected error for zero-value options")
	}
}
