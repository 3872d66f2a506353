package storage

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	apperrors "go-image-quality/pkg/errors"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageFetcher loads and decodes an image addressed by URL. The returned
// string names the container format reported by the decoder.
type ImageFetcher interface {
	FetchImage(ctx context.Context, imageURL string) (image.Image, string, error)
}

// DecodeImage decodes any registered container format (png, jpeg, gif, bmp, tiff, webp)
func DecodeImage(r io.Reader) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", apperrors.NewUnsupportedFormatError(fmt.Sprintf("failed to decode image: %v", err))
	}
	return img, format, nil
}
