package service

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"time"

	"go-image-quality/internal/observer"
	"go-image-quality/internal/repository"
	"go-image-quality/pkg/analyzer"
	apperrors "go-image-quality/pkg/errors"
	"go-image-quality/pkg/models"
	"go-image-quality/pkg/pixel"
	"go-image-quality/pkg/validation"

	"github.com/cespare/xxhash/v2"
	"github.com/disintegration/imaging"
)

// RawSource is the event source recorded for analyses of uploaded buffers
const RawSource = "raw"

// ImageAnalysisService analyzes images from URLs, decoded images and raw pixel buffers
type ImageAnalysisService interface {
	AnalyzeImageURL(ctx context.Context, imageURL string, options analyzer.AnalysisOptions) (*models.ImageAnalysisResponse, error)
	AnalyzeDecoded(ctx context.Context, source string, img image.Image, sourceFormat string, options analyzer.AnalysisOptions) (*models.ImageAnalysisResponse, error)
	AnalyzeRaw(ctx context.Context, raw pixel.RawImage, options analyzer.AnalysisOptions) (*models.ImageAnalysisResponse, error)

	// GetAnalysis returns a previously computed response by ID
	GetAnalysis(ctx context.Context, id string) (*models.ImageAnalysisResponse, error)
	// GetAnalysisHistory returns the retained analyses of a source URL (or "raw"), newest first
	GetAnalysisHistory(ctx context.Context, source string) ([]*models.ImageAnalysisResponse, error)

	ValidateImageURL(imageURL string) error
}

// Config holds the service settings that do not belong to a single request
type Config struct {
	// MaxImageDimension downscales decoded images whose longer side exceeds it. 0 disables.
	MaxImageDimension int
}

// imageAnalysisService implements ImageAnalysisService with single analyzer
type imageAnalysisService struct {
	imageRepo    repository.ImageRepository
	analysisRepo repository.AnalysisRepository
	analyzer     analyzer.ImageAnalyzer
	validator    *validation.QualityValidator
	events       observer.Subject
	cfg          Config
}

// NewImageAnalysisService creates a new image analysis service
func NewImageAnalysisService(
	imageRepository repository.ImageRepository,
	analysisRepository repository.AnalysisRepository,
	imageAnalyzer analyzer.ImageAnalyzer,
	qualityValidator *validation.QualityValidator,
	events observer.Subject,
	cfg Config,
) ImageAnalysisService {
	return &imageAnalysisService{
		imageRepo:    imageRepository,
		analysisRepo: analysisRepository,
		analyzer:     imageAnalyzer,
		validator:    qualityValidator,
		events:       events,
		cfg:          cfg,
	}
}

// AnalyzeImageURL fetches, decodes and analyzes the image at imageURL
func (s *imageAnalysisService) AnalyzeImageURL(ctx context.Context, imageURL string, options analyzer.AnalysisOptions) (*models.ImageAnalysisResponse, error) {
	if err := s.ValidateImageURL(imageURL); err != nil {
		return nil, err
	}

	fetchStart := time.Now()
	img, sourceFormat, err := s.imageRepo.FetchImage(ctx, imageURL)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = apperrors.NewTimeoutError("image fetch timeout", err)
		}
		s.publish(ctx, observer.AnalysisEvent{
			EventType:      observer.ImageFetchFailed,
			Source:         imageURL,
			ProcessingTime: time.Since(fetchStart),
			ErrorMessage:   err.Error(),
			ErrorType:      errorType(err),
		})
		return nil, err
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.ImageFetched,
		Source:         imageURL,
		ProcessingTime: time.Since(fetchStart),
		Success:        true,
		Metadata: map[string]interface{}{
			"source_format": sourceFormat,
			"width":         img.Bounds().Dx(),
			"height":        img.Bounds().Dy(),
		},
	})

	return s.AnalyzeDecoded(ctx, imageURL, img, sourceFormat, options)
}

// AnalyzeDecoded analyzes an already decoded image, downscaling it first when configured
func (s *imageAnalysisService) AnalyzeDecoded(ctx context.Context, source string, img image.Image, sourceFormat string, options analyzer.AnalysisOptions) (*models.ImageAnalysisResponse, error) {
	downscaled := false
	if maxDim := s.cfg.MaxImageDimension; maxDim > 0 {
		bounds := img.Bounds()
		if bounds.Dx() > maxDim || bounds.Dy() > maxDim {
			img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
			downscaled = true
		}
	}

	return s.analyze(ctx, source, pixel.FromImage(img), models.ImageMetadata{
		SourceFormat: sourceFormat,
		Downscaled:   downscaled,
	}, options)
}

// AnalyzeRaw analyzes an uploaded pixel buffer
func (s *imageAnalysisService) AnalyzeRaw(ctx context.Context, raw pixel.RawImage, options analyzer.AnalysisOptions) (*models.ImageAnalysisResponse, error) {
	return s.analyze(ctx, RawSource, raw, models.ImageMetadata{}, options)
}

func (s *imageAnalysisService) GetAnalysis(ctx context.Context, id string) (*models.ImageAnalysisResponse, error) {
	response, err := s.analysisRepo.GetAnalysisResult(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAnalysisNotFound) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("analysis %s not found", id), err)
		}
		return nil, apperrors.NewInternalError("failed to load analysis", err)
	}
	return response, nil
}

// GetAnalysisHistory returns the stored analyses of source, newest first
func (s *imageAnalysisService) GetAnalysisHistory(ctx context.Context, source string) ([]*models.ImageAnalysisResponse, error) {
	if source == "" {
		return nil, apperrors.NewValidationError("source cannot be empty", nil)
	}
	if source == RawSource {
		source = ""
	}
	history, err := s.analysisRepo.GetAnalysisHistory(ctx, source)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load analysis history", err)
	}
	if history == nil {
		history = []*models.ImageAnalysisResponse{}
	}
	return history, nil
}

// ValidateImageURL validates the image URL
func (s *imageAnalysisService) ValidateImageURL(imageURL string) error {
	return s.imageRepo.ValidateImageURL(imageURL)
}

// analyze runs the analyzer on raw, validates the result and records it.
// meta carries the source details known before decoding; the layout fields are filled here.
func (s *imageAnalysisService) analyze(ctx context.Context, source string, raw pixel.RawImage, meta models.ImageMetadata, options analyzer.AnalysisOptions) (*models.ImageAnalysisResponse, error) {
	start := time.Now()
	metadata := map[string]interface{}{
		"width":       raw.Width,
		"height":      raw.Height,
		"format":      raw.Format.String(),
		"sample_kind": raw.Kind.String(),
	}

	s.publish(ctx, observer.AnalysisEvent{
		EventType: observer.AnalysisStarted,
		Source:    source,
		Metadata:  metadata,
	})

	result, err := s.runAnalysis(ctx, raw, options)
	if err != nil {
		s.publish(ctx, observer.AnalysisEvent{
			EventType:      observer.AnalysisFailed,
			Source:         source,
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
			ErrorType:      errorType(err),
			Metadata:       metadata,
		})
		return nil, err
	}

	issues := s.validator.Validate(result)
	response := &models.ImageAnalysisResponse{
		ID:                ContentID(raw),
		Timestamp:         start.UTC(),
		ProcessingTimeSec: time.Since(start).Seconds(),
		Metadata: models.ImageMetadata{
			Width:        raw.Width,
			Height:       raw.Height,
			Format:       raw.Format.String(),
			SampleKind:   raw.Kind.String(),
			SourceFormat: meta.SourceFormat,
			Downscaled:   meta.Downscaled,
		},
		Result:  result,
		IsValid: !s.validator.HasCriticalIssues(issues),
		Issues:  issues,
	}
	if source != RawSource {
		response.ImageURL = source
	}

	if err := s.analysisRepo.SaveAnalysisResult(ctx, response); err != nil {
		return nil, apperrors.NewInternalError("failed to store analysis", err)
	}

	metadata["brightness"] = result.Brightness
	metadata["blur"] = result.Blur
	metadata["issues"] = len(issues)
	s.publish(ctx, observer.AnalysisEvent{
		EventType:      observer.AnalysisCompleted,
		Source:         source,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata:       metadata,
	})

	return response, nil
}

// runAnalysis runs the CPU-bound pipeline off the request goroutine so that
// ctx cancellation is honored
func (s *imageAnalysisService) runAnalysis(ctx context.Context, raw pixel.RawImage, options analyzer.AnalysisOptions) (models.AnalysisResult, error) {
	type outcome struct {
		result models.AnalysisResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := s.analyzer.AnalyzeWithOptions(raw, options)
		done <- outcome{result, err}
	}()

	select {
	case <-ctx.Done():
		return models.AnalysisResult{}, apperrors.NewTimeoutError("image analysis timeout", ctx.Err())
	case out := <-done:
		return out.result, out.err
	}
}

func (s *imageAnalysisService) publish(ctx context.Context, event observer.AnalysisEvent) {
	if s.events != nil {
		s.events.NotifyObservers(ctx, event)
	}
}

// ContentID identifies a buffer by the xxhash of its layout and bytes
func ContentID(raw pixel.RawImage) string {
	var header [18]byte
	header[0] = byte(raw.Kind)
	header[1] = byte(raw.Format)
	binary.LittleEndian.PutUint64(header[2:], uint64(raw.Width))
	binary.LittleEndian.PutUint64(header[10:], uint64(raw.Height))

	d := xxhash.New()
	d.Write(header[:])
	if raw.ByteOrder == binary.BigEndian {
		d.Write([]byte{1})
	}
	d.Write(raw.Data)
	return fmt.Sprintf("%016x", d.Sum64())
}

// errorType returns the AppError type of err, or "internal"
func errorType(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return string(appErr.Type)
	}
	return string(apperrors.ErrorTypeInternal)
}
