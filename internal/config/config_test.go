package config

import (
	"testing"
	"time"

	"go-image-quality/pkg/analyzer"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.ServerAddress() != "0.0.0.0:8080" {
		t.Errorf("Expected address 0.0.0.0:8080, got %s", cfg.ServerAddress())
	}
	if cfg.ImageFetchTimeout != 15*time.Second {
		t.Errorf("Expected fetch timeout 15s, got %s", cfg.ImageFetchTimeout)
	}
	if cfg.BlurScale != analyzer.DefaultBlurScale {
		t.Errorf("Expected blur scale %f, got %f", analyzer.DefaultBlurScale, cfg.BlurScale)
	}
	if cfg.NoiseMethod != analyzer.NoiseMethodImmerkaer {
		t.Errorf("Expected noise method %s, got %s", analyzer.NoiseMethodImmerkaer, cfg.NoiseMethod)
	}
	if cfg.AllowLocalFiles {
		t.Error("Expected local files to be disabled by default")
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("ANALYSIS_TIMEOUT", "5s")
	t.Setenv("ANALYSIS_WORKERS", "3")
	t.Setenv("BLUR_SCALE", "0.25")
	t.Setenv("NOISE_METHOD", "local_deviation")
	t.Setenv("MAX_IMAGE_DIMENSION", "1024")
	t.Setenv("ALLOW_LOCAL_FILES", "true")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}

	if cfg.ServerAddress() != "127.0.0.1:9090" {
		t.Errorf("Expected address 127.0.0.1:9090, got %s", cfg.ServerAddress())
	}
	if cfg.AnalysisTimeout != 5*time.Second {
		t.Errorf("Expected analysis timeout 5s, got %s", cfg.AnalysisTimeout)
	}
	if cfg.MaxImageDimension != 1024 || !cfg.AllowLocalFiles {
		t.Errorf("Unexpected source settings: %+v", cfg)
	}

	opts := cfg.AnalysisOptions()
	if opts.BlurScale != 0.25 || opts.NoiseMethod != analyzer.NoiseMethodLocalDeviation || opts.MaxWorkers != 3 {
		t.Errorf("Unexpected analysis options: %+v", opts)
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{"Port out of range", "PORT", "70000"},
		{"Port not numeric", "PORT", "http"},
		{"Zero body size", "MAX_REQUEST_BODY_SIZE", "0"},
		{"Negative workers", "ANALYSIS_WORKERS", "-1"},
		{"Zero blur scale", "BLUR_SCALE", "0"},
		{"Unknown noise method", "NOISE_METHOD", "median"},
		{"Negative max dimension", "MAX_IMAGE_DIMENSION", "-5"},
		{"Azure account without key", "AZURE_STORAGE_ACCOUNT", "images"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			if _, err := LoadFromEnv(); err == nil {
				t.Errorf("Expected error for %s=%s", tc.key, tc.value)
			}
		})
	}
}

func TestParseHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("REQUEST_TIMEOUT", "soon")
	t.Setenv("ALLOW_LOCAL_FILES", "maybe")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv failed: %v", err)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout, got %s", cfg.RequestTimeout)
	}
	if cfg.AllowLocalFiles {
		t.Error("Expected unparsable bool to fall back to false")
	}
}
