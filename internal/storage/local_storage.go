package storage

import (
	"context"
	"errors"
	"image"
	"io/fs"
	"net/url"
	"os"

	apperrors "go-image-quality/pkg/errors"
)

// LocalImageFetcher reads images from the local filesystem. It accepts
// file:// URLs and plain paths.
type LocalImageFetcher struct{}

func NewLocalImageFetcher() *LocalImageFetcher {
	return &LocalImageFetcher{}
}

func (l *LocalImageFetcher) FetchImage(ctx context.Context, location string) (image.Image, string, error) {
	if err := ctx.Err(); err != nil {
		return nil, "", apperrors.NewTimeoutError("image read cancelled", err)
	}

	path := location
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		path = u.Path
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", apperrors.NewNotFoundError("image file not found", err)
		}
		return nil, "", apperrors.NewProcessingError("failed to open image file", err)
	}
	defer f.Close()

	return DecodeImage(f)
}
