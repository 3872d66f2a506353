package container

import (
	"fmt"
	"net/http"

	"go-image-quality/internal/config"
	"go-image-quality/internal/factory"
	"go-image-quality/internal/logger"
	"go-image-quality/internal/observer"
	"go-image-quality/internal/repository"
	"go-image-quality/internal/service"
	"go-image-quality/internal/transport"
	"go-image-quality/pkg/analyzer"
	"go-image-quality/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config               *config.Config
	imageAnalyzer        analyzer.ImageAnalyzer
	imageRepository      repository.ImageRepository
	analysisRepository   repository.AnalysisRepository
	events               observer.Subject
	metrics              *observer.MetricsObserver
	imageAnalysisService service.ImageAnalysisService
	handler              http.Handler
}

// NewContainer wires the service graph for cfg
func NewContainer(cfg *config.Config) (*Container, error) {
	components := factory.NewComponentFactory(cfg)

	imageAnalyzer, err := components.AnalyzerFactory.CreateAnalyzer(factory.StandardAnalyzer)
	if err != nil {
		return nil, fmt.Errorf("failed to create analyzer: %w", err)
	}

	urlValidator := validation.NewURLValidator()
	if cfg.AllowLocalFiles {
		urlValidator = validation.NewLocalURLValidator()
	}

	events := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	imageRepository := repository.NewSourceImageRepository(components.StorageFactory, urlValidator)
	analysisRepository := repository.NewMemoryAnalysisRepository(repository.DefaultHistorySize)

	imageAnalysisService := service.NewImageAnalysisService(
		imageRepository,
		analysisRepository,
		imageAnalyzer,
		validation.NewQualityValidator(),
		events,
		service.Config{MaxImageDimension: cfg.MaxImageDimension},
	)
	handler := transport.NewHandler(imageAnalysisService, metrics, imageAnalyzer, cfg)

	return &Container{
		config:               cfg,
		imageAnalyzer:        imageAnalyzer,
		imageRepository:      imageRepository,
		analysisRepository:   analysisRepository,
		events:               events,
		metrics:              metrics,
		imageAnalysisService: imageAnalysisService,
		handler:              handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Service returns the analysis service
func (c *Container) Service() service.ImageAnalysisService {
	return c.imageAnalysisService
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

// Close drains pending events and stops the analyzer's workers
func (c *Container) Close() error {
	c.events.Wait()
	return c.imageAnalyzer.Close()
}
