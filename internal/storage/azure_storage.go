package storage

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"strings"

	apperrors "go-image-quality/pkg/errors"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

// BlobHostSuffix identifies Azure blob endpoints
const BlobHostSuffix = ".blob.core.windows.net"

type azureStorage struct {
	client *azblob.Client
}

// NewAzureStorage creates a fetcher for blob URLs of the form
// https://<account>.blob.core.windows.net/<container>/<blob>
func NewAzureStorage(accountName string, accountKey string) (ImageFetcher, error) {
	credential, err := azblob.NewSharedKeyCredential(accountName, accountKey)
	if err != nil {
		return nil, fmt.Errorf("azure credential: %w", err)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(
		fmt.Sprintf("https://%s%s", accountName, BlobHostSuffix),
		credential,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	return &azureStorage{client: client}, nil
}

// ParseBlobURL splits a blob URL into container and blob name
func ParseBlobURL(blobURL string) (string, string, error) {
	parsedURL, err := url.Parse(blobURL)
	if err != nil {
		return "", "", apperrors.NewValidationError("invalid blob URL", err)
	}

	container, blob, ok := strings.Cut(strings.TrimPrefix(parsedURL.Path, "/"), "/")
	if !ok || container == "" || blob == "" {
		return "", "", apperrors.NewValidationError("blob URL must name a container and a blob", nil)
	}
	return container, blob, nil
}

func (s *azureStorage) FetchImage(ctx context.Context, blobURL string) (image.Image, string, error) {
	containerName, blobName, err := ParseBlobURL(blobURL)
	if err != nil {
		return nil, "", err
	}

	downloadResponse, err := s.client.DownloadStream(ctx, containerName, blobName, nil)
	if err != nil {
		return nil, "", apperrors.NewNetworkError("blob download failed", err)
	}

	retryReader := downloadResponse.Body
	defer retryReader.Close()

	return DecodeImage(retryReader)
}
