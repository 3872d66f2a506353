package cli

import (
	"time"

	"go-image-quality/internal/config"
	"go-image-quality/internal/factory"
	"go-image-quality/internal/logger"
	"go-image-quality/internal/observer"
	"go-image-quality/internal/repository"
	"go-image-quality/internal/service"
	"go-image-quality/pkg/analyzer"
	"go-image-quality/pkg/validation"
)

// cliService is the analysis service wired for local use
type cliService struct {
	service.ImageAnalysisService
	analyzer analyzer.ImageAnalyzer
	events   observer.Subject
}

func newCLIService(opts analyzer.AnalysisOptions, maxDimension int) (*cliService, error) {
	cfg := &config.Config{
		ImageFetchTimeout: 30 * time.Second,
		AllowLocalFiles:   true,
	}

	ia, err := analyzer.NewImageAnalyzer(opts)
	if err != nil {
		return nil, err
	}

	events := observer.NewEventPublisher()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))

	svc := service.NewImageAnalysisService(
		repository.NewSourceImageRepository(factory.NewStorageFactory(cfg), validation.NewLocalURLValidator()),
		repository.NewMemoryAnalysisRepository(repository.DefaultHistorySize),
		ia,
		validation.NewQualityValidator(),
		events,
		service.Config{MaxImageDimension: maxDimension},
	)
	return &cliService{ImageAnalysisService: svc, analyzer: ia, events: events}, nil
}

func (s *cliService) Close() {
	s.events.Wait()
	s.analyzer.Close()
}
