package factory

import (
	"fmt"
	"net/url"
	"strings"

	"go-image-quality/internal/config"
	"go-image-quality/internal/storage"
	"go-image-quality/pkg/analyzer"
)

// AnalyzerType represents different analyzer presets
type AnalyzerType string

const (
	// StandardAnalyzer scores every image, tiny ones included
	StandardAnalyzer AnalyzerType = "standard"
	// StrictAnalyzer rejects images too small for gradient estimation
	StrictAnalyzer AnalyzerType = "strict"
	// SequentialAnalyzer evaluates estimators on the calling goroutine
	SequentialAnalyzer AnalyzerType = "sequential"
)

// StorageType represents different types of storage backends
type StorageType string

const (
	// HTTPStorage for HTTP-based image fetching
	HTTPStorage StorageType = "http"
	// AzureStorage for Azure blob storage
	AzureStorage StorageType = "azure"
	// LocalStorage for local file system
	LocalStorage StorageType = "local"
)

// AnalyzerFactory creates image analyzers
type AnalyzerFactory interface {
	CreateAnalyzer(analyzerType AnalyzerType) (analyzer.ImageAnalyzer, error)
}

// StorageFactory creates storage implementations
type StorageFactory interface {
	CreateStorage(storageType StorageType) (storage.ImageFetcher, error)
}

// StorageTypeForURL picks the backend that serves imageURL
func StorageTypeForURL(imageURL string) (StorageType, error) {
	u, err := url.Parse(imageURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL: %w", err)
	}
	switch strings.ToLower(u.Scheme) {
	case "file":
		return LocalStorage, nil
	case "http", "https":
		if strings.HasSuffix(strings.ToLower(u.Hostname()), storage.BlobHostSuffix) {
			return AzureStorage, nil
		}
		return HTTPStorage, nil
	default:
		return "", fmt.Errorf("unsupported URL scheme: %q", u.Scheme)
	}
}

// analyzerFactory implements AnalyzerFactory
type analyzerFactory struct {
	cfg *config.Config
}

// NewAnalyzerFactory creates a new analyzer factory. Analysis settings come from cfg.
func NewAnalyzerFactory(cfg *config.Config) AnalyzerFactory {
	return &analyzerFactory{cfg: cfg}
}

// CreateAnalyzer creates an analyzer based on the specified type
func (f *analyzerFactory) CreateAnalyzer(analyzerType AnalyzerType) (analyzer.ImageAnalyzer, error) {
	options := f.cfg.AnalysisOptions()
	switch analyzerType {
	case StandardAnalyzer:
	case StrictAnalyzer:
		options = options.WithStrictDimensions(true)
	case SequentialAnalyzer:
		options.UseWorkerPool = false
		options.MaxWorkers = 1
	default:
		return nil, fmt.Errorf("unsupported analyzer type: %s", analyzerType)
	}
	return analyzer.NewImageAnalyzer(options)
}

// storageFactory implements StorageFactory
type storageFactory struct {
	cfg *config.Config
}

// NewStorageFactory creates a new storage factory
func NewStorageFactory(cfg *config.Config) StorageFactory {
	return &storageFactory{cfg: cfg}
}

// CreateStorage creates a storage implementation based on the specified type
func (f *storageFactory) CreateStorage(storageType StorageType) (storage.ImageFetcher, error) {
	switch storageType {
	case HTTPStorage:
		return storage.NewHTTPImageFetcher(f.cfg.ImageFetchTimeout), nil
	case AzureStorage:
		if f.cfg.AzureStorageAccount == "" {
			return nil, fmt.Errorf("azure storage is not configured")
		}
		return storage.NewAzureStorage(f.cfg.AzureStorageAccount, f.cfg.AzureStorageKey)
	case LocalStorage:
		if !f.cfg.AllowLocalFiles {
			return nil, fmt.Errorf("local file access is disabled")
		}
		return storage.NewLocalImageFetcher(), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", storageType)
	}
}

// ComponentFactory combines all factories
type ComponentFactory struct {
	AnalyzerFactory AnalyzerFactory
	StorageFactory  StorageFactory
}

// NewComponentFactory creates a new component factory
func NewComponentFactory(cfg *config.Config) *ComponentFactory {
	return &ComponentFactory{
		AnalyzerFactory: NewAnalyzerFactory(cfg),
		StorageFactory:  NewStorageFactory(cfg),
	}
}
