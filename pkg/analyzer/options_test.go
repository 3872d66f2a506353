package analyzer

import (
	"math"
	"testing"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	if opts.BlurScale != DefaultBlurScale {
		t.Errorf("Expected BlurScale to be %f, got %f", DefaultBlurScale, opts.BlurScale)
	}
	if opts.NoiseMethod != NoiseMethodImmerkaer {
		t.Errorf("Expected NoiseMethod to be %s, got %s", NoiseMethodImmerkaer, opts.NoiseMethod)
	}
	if opts.StrictDimensions {
		t.Error("Expected StrictDimensions to be false by default")
	}
	if !opts.UseWorkerPool {
		t.Error("Expected UseWorkerPool to be true by default")
	}
	if opts.MaxWorkers != 0 {
		t.Errorf("Expected MaxWorkers to be 0, got %d", opts.MaxWorkers)
	}
}

func TestSequentialOptions(t *testing.T) {
	opts := SequentialOptions()

	if opts.UseWorkerPool {
		t.Error("Expected UseWorkerPool to be false for sequential options")
	}
	if opts.MaxWorkers != 1 {
		t.Errorf("Expected MaxWorkers to be 1, got %d", opts.MaxWorkers)
	}
}

func TestStrictOptions(t *testing.T) {
	if !StrictOptions().StrictDimensions {
		t.Error("Expected StrictDimensions to be true for strict options")
	}
}

func TestOptionsChaining(t *testing.T) {
	opts := DefaultOptions().
		WithBlurScale(0.25).
		WithNoiseMethod(NoiseMethodLocalDeviation).
		WithStrictDimensions(true).
		WithMaxWorkers(3)

	if opts.BlurScale != 0.25 {
		t.Errorf("Expected BlurScale to be 0.25, got %f", opts.BlurScale)
	}
	if opts.NoiseMethod != NoiseMethodLocalDeviation {
		t.Errorf("Expected NoiseMethod to be %s, got %s", NoiseMethodLocalDeviation, opts.NoiseMethod)
	}
	if !opts.StrictDimensions {
		t.Error("Expected StrictDimensions to be true")
	}
	if opts.MaxWorkers != 3 {
		t.Errorf("Expected MaxWorkers to be 3, got %d", opts.MaxWorkers)
	}

	// Chaining returns copies
	if DefaultOptions().BlurScale != DefaultBlurScale {
		t.Error("Expected chaining not to modify the defaults")
	}
}

func TestParseNoiseMethod(t *testing.T) {
	testCases := []struct {
		input    string
		expected NoiseMethod
		wantErr  bool
	}{
		{"", NoiseMethodImmerkaer, false},
		{"immerkaer", NoiseMethodImmerkaer, false},
		{" IMMERKAER ", NoiseMethodImmerkaer, false},
		{"local_deviation", NoiseMethodLocalDeviation, false},
		{"wavelet", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			method, err := ParseNoiseMethod(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("Expected error=%v, got %v", tc.wantErr, err)
			}
			if method != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, method)
			}
		})
	}
}

func TestAnalysisOptions_Validate(t *testing.T) {
	testCases := []struct {
		name    string
		opts    AnalysisOptions
		wantErr bool
	}{
		{"Defaults", DefaultOptions(), false},
		{"Zero blur scale", DefaultOptions().WithBlurScale(0), true},
		{"Negative blur scale", DefaultOptions().WithBlurScale(-1), true},
		{"NaN blur scale", DefaultOptions().WithBlurScale(math.NaN()), true},
		{"Infinite blur scale", DefaultOptions().WithBlurScale(math.Inf(1)), true},
		{"Negative workers", DefaultOptions().WithMaxWorkers(-2), true},
		{"Unknown noise method", DefaultOptions().WithNoiseMethod("median"), true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Expected error=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestAnalysisOptions_ValidateFillsNoiseMethod(t *testing.T) {
	opts := DefaultOptions().WithNoiseMethod("")
	if err := opts.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if opts.NoiseMethod != NoiseMethodImmerkaer {
		t.Errorf("Expected empty method to default to %s, got %s", NoiseMethodImmerkaer, opts.NoiseMethod)
	}
}
