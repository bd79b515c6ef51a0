package ports

import "context"

// ImageFetcherPort - downloads a remote image for re-upload
type ImageFetcherPort interface {
	// Fetch returns the image bytes and detected content type
	Fetch(ctx context.Context, url string) ([]byte, string, error)
}
