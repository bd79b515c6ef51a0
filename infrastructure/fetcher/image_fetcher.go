package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"seo-publisher/domain/ports"
)

// maxImageSize caps remote image downloads at 10MB.
const maxImageSize = 10 * 1024 * 1024

// HTTPImageFetcher downloads remote images for re-upload to a target
// platform.
type HTTPImageFetcher struct {
	httpClient *http.Client
	logger     *slog.Logger
}

func NewHTTPImageFetcher() *HTTPImageFetcher {
	return &HTTPImageFetcher{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: slog.Default().With("component", "image_fetcher"),
	}
}

func (f *HTTPImageFetcher) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageSize))
	if err != nil {
		return nil, "", err
	}

	contentType := resp.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		contentType = http.DetectContentType(data)
	}

	f.logger.DebugContext(ctx, "Image fetched",
		"url", url,
		"size", len(data),
		"content_type", contentType,
	)
	return data, contentType, nil
}

// Verify interface implementation
var _ ports.ImageFetcherPort = (*HTTPImageFetcher)(nil)
