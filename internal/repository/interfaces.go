package repository

import (
	"context"
	"image"

	"go-image-quality/pkg/models"
)

// ImageRepository defines the interface for image data access operations
type ImageRepository interface {
	// FetchImage retrieves and decodes an image, returning its container format
	FetchImage(ctx context.Context, imageURL string) (image.Image, string, error)

	// ValidateImageURL validates if the provided URL is acceptable
	ValidateImageURL(imageURL string) error
}

// AnalysisRepository defines the interface for analysis result operations
type AnalysisRepository interface {
	// SaveAnalysisResult stores an analysis result
	SaveAnalysisResult(ctx context.Context, result *models.ImageAnalysisResponse) error

	// GetAnalysisResult retrieves a stored analysis result
	GetAnalysisResult(ctx context.Context, id string) (*models.ImageAnalysisResponse, error)

	// GetAnalysisHistory retrieves analysis history for a specific image URL, newest first
	GetAnalysisHistory(ctx context.Context, imageURL string) ([]*models.ImageAnalysisResponse, error)
}
