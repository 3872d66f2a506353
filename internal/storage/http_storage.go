package storage

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	apperrors "go-image-quality/pkg/errors"
)

const maxFetchAttempts = 3

// HTTPImageFetcher implements ImageFetcher over http and https
type HTTPImageFetcher struct {
	client *http.Client

	// retryDelay is multiplied by the attempt number between retries
	retryDelay time.Duration
}

// NewHTTPImageFetcher creates an HTTP image fetcher. timeout bounds each request;
// zero selects 30s.
func NewHTTPImageFetcher(timeout time.Duration) *HTTPImageFetcher {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	transport := &http.Transport{
		// Connection pooling tuned for single image downloads
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,

		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: 10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,

		DisableCompression:     false,
		MaxResponseHeaderBytes: 4096,
	}

	return &HTTPImageFetcher{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,

			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("too many redirects (limit: 3)")
				}
				return nil
			},
		},
		retryDelay: time.Second,
	}
}

func (h *HTTPImageFetcher) FetchImage(ctx context.Context, imageURL string) (image.Image, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, "", apperrors.NewValidationError("invalid URL", err)
	}

	req.Header.Set("Accept", "image/png, image/jpeg, image/webp, image/tiff, image/bmp, image/gif, */*")
	req.Header.Set("User-Agent", "Go-Image-Quality/1.0")

	// Only transient failures (transport errors and 5xx) are retried
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxFetchAttempts; attempt++ {
		resp, err = h.client.Do(req)
		if err != nil {
			lastErr = err
		}

		if err == nil && resp.StatusCode == http.StatusOK {
			break
		}

		if err == nil {
			resp.Body.Close()

			// 4xx client errors are non-retryable
			if resp.StatusCode >= 400 && resp.StatusCode < 500 {
				lastErr = fmt.Errorf("client error: status code %d", resp.StatusCode)
				resp = nil
				break
			}
			lastErr = fmt.Errorf("server error: status code %d", resp.StatusCode)
			resp = nil
		}

		if attempt < maxFetchAttempts-1 {
			select {
			case <-ctx.Done():
				return nil, "", apperrors.NewTimeoutError("image fetch cancelled", ctx.Err())
			case <-time.After(time.Duration(attempt+1) * h.retryDelay):
			}
		}
	}

	if resp == nil {
		if lastErr == nil {
			lastErr = fmt.Errorf("unknown error")
		}
		return nil, "", apperrors.NewNetworkError(fmt.Sprintf("failed to fetch image after %d attempts", maxFetchAttempts), lastErr)
	}
	defer resp.Body.Close()

	return DecodeImage(resp.Body)
}
