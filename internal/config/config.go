package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"go-image-quality/pkg/analyzer"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	ImageFetchTimeout  time.Duration
	AnalysisTimeout    time.Duration
	MaxRequestBodySize int64

	// Analysis
	AnalysisWorkers   int
	BlurScale         float64
	NoiseMethod       analyzer.NoiseMethod
	MaxImageDimension int // 0 disables downscaling

	// Sources
	AzureStorageAccount string
	AzureStorageKey     string
	AllowLocalFiles     bool
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// AnalysisOptions returns the analyzer options described by the configuration
func (c *Config) AnalysisOptions() analyzer.AnalysisOptions {
	return analyzer.DefaultOptions().
		WithBlurScale(c.BlurScale).
		WithNoiseMethod(c.NoiseMethod).
		WithMaxWorkers(c.AnalysisWorkers)
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:                getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                getEnvOrDefault("PORT", "8080"),
		RequestTimeout:      parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		ImageFetchTimeout:   parseDurationOrDefault("IMAGE_FETCH_TIMEOUT", 15*time.Second),
		AnalysisTimeout:     parseDurationOrDefault("ANALYSIS_TIMEOUT", 20*time.Second),
		MaxRequestBodySize:  parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		AnalysisWorkers:     int(parseIntOrDefault("ANALYSIS_WORKERS", 0)),
		BlurScale:           parseFloatOrDefault("BLUR_SCALE", analyzer.DefaultBlurScale),
		MaxImageDimension:   int(parseIntOrDefault("MAX_IMAGE_DIMENSION", 0)),
		AzureStorageAccount: os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureStorageKey:     os.Getenv("AZURE_STORAGE_KEY"),
		AllowLocalFiles:     parseBoolOrDefault("ALLOW_LOCAL_FILES", false),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.RequestTimeout <= 0 || cfg.ImageFetchTimeout <= 0 || cfg.AnalysisTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, analysis=%s)",
			cfg.RequestTimeout, cfg.ImageFetchTimeout, cfg.AnalysisTimeout)
	}
	if cfg.AnalysisWorkers < 0 {
		return nil, fmt.Errorf("ANALYSIS_WORKERS must be >= 0 (got %d)", cfg.AnalysisWorkers)
	}
	if cfg.BlurScale <= 0 {
		return nil, fmt.Errorf("BLUR_SCALE must be > 0 (got %g)", cfg.BlurScale)
	}
	if cfg.MaxImageDimension < 0 {
		return nil, fmt.Errorf("MAX_IMAGE_DIMENSION must be >= 0 (got %d)", cfg.MaxImageDimension)
	}
	method, err := analyzer.ParseNoiseMethod(os.Getenv("NOISE_METHOD"))
	if err != nil {
		return nil, fmt.Errorf("invalid NOISE_METHOD: %w", err)
	}
	cfg.NoiseMethod = method
	if (cfg.AzureStorageAccount == "") != (cfg.AzureStorageKey == "") {
		return nil, fmt.Errorf("AZURE_STORAGE_ACCOUNT and AZURE_STORAGE_KEY must be set together")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func parseBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
