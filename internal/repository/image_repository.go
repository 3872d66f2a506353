package repository

import (
	"context"
	"fmt"
	"image"
	"sync"

	"go-image-quality/internal/factory"
	"go-image-quality/internal/storage"
	apperrors "go-image-quality/pkg/errors"
	"go-image-quality/pkg/validation"
)

// SourceImageRepository implements ImageRepository by routing each URL to the
// storage backend that serves it. Backends are created on first use.
type SourceImageRepository struct {
	storageFactory factory.StorageFactory
	validator      *validation.URLValidator

	mu       sync.Mutex
	fetchers map[factory.StorageType]storage.ImageFetcher
}

// NewSourceImageRepository creates a repository over the given storage factory
func NewSourceImageRepository(storageFactory factory.StorageFactory, validator *validation.URLValidator) ImageRepository {
	return &SourceImageRepository{
		storageFactory: storageFactory,
		validator:      validator,
		fetchers:       make(map[factory.StorageType]storage.ImageFetcher),
	}
}

// FetchImage retrieves an image from a URL
func (r *SourceImageRepository) FetchImage(ctx context.Context, imageURL string) (image.Image, string, error) {
	if err := r.ValidateImageURL(imageURL); err != nil {
		return nil, "", err
	}

	fetcher, err := r.fetcherFor(imageURL)
	if err != nil {
		return nil, "", err
	}
	return fetcher.FetchImage(ctx, imageURL)
}

// ValidateImageURL validates if the provided URL is acceptable
func (r *SourceImageRepository) ValidateImageURL(imageURL string) error {
	if imageURL == "" {
		return apperrors.NewValidationError(ErrInvalidImageURL.Error(), ErrInvalidImageURL)
	}
	return r.validator.ValidateImageURL(imageURL)
}

func (r *SourceImageRepository) fetcherFor(imageURL string) (storage.ImageFetcher, error) {
	storageType, err := factory.StorageTypeForURL(imageURL)
	if err != nil {
		return nil, apperrors.NewValidationError(err.Error(), ErrInvalidImageURL)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if fetcher, ok := r.fetchers[storageType]; ok {
		return fetcher, nil
	}
	fetcher, err := r.storageFactory.CreateStorage(storageType)
	if err != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("%s storage unavailable", storageType), err)
	}
	r.fetchers[storageType] = fetcher
	return fetcher, nil
}
