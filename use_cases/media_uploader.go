package use_cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gosimple/slug"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// maxFilenameLen caps the slug part of generated filenames.
const maxFilenameLen = 80

// MediaUploader turns an ImageRef into a persisted media asset on the
// target platform, deriving filename, title, alt text and attribution
// caption from the image and its surrounding item.
type MediaUploader struct {
	api     ports.WordPressAPI
	fetcher ports.ImageFetcherPort
	logger  *slog.Logger
}

func NewMediaUploader(api ports.WordPressAPI, fetcher ports.ImageFetcherPort) *MediaUploader {
	return &MediaUploader{
		api:     api,
		fetcher: fetcher,
		logger:  slog.Default().With("component", "media_uploader"),
	}
}

// Upload persists one image. A non-nil data slice (the base64 case) is
// used directly; otherwise the remote URL is fetched first. Failures
// surface as a single UploadError carrying the platform's raw error body.
func (u *MediaUploader) Upload(ctx context.Context, image models.ImageRef, data []byte, item *models.ContentItem, index int) (*models.MediaAsset, error) {
	title := mediaTitle(image, item, index)

	contentType := ""
	if data == nil {
		if image.RemoteURL == "" {
			return nil, &models.UploadError{Filename: title, Err: fmt.Errorf("image has neither data nor a remote URL")}
		}
		var err error
		data, contentType, err = u.fetcher.Fetch(ctx, image.RemoteURL)
		if err != nil {
			return nil, &models.UploadError{Filename: title, Err: fmt.Errorf("fetch %s: %w", image.RemoteURL, err)}
		}
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}

	req := &models.MediaUploadRequest{
		Filename:    makeFilename(title, contentType),
		Data:        data,
		ContentType: contentType,
		Title:       title,
		AltText:     altText(image, item),
		Caption:     image.Attribution(),
	}

	asset, err := u.api.UploadMedia(ctx, req)
	if err != nil {
		var upErr *models.UploadError
		if errors.As(err, &upErr) {
			return nil, err
		}
		return nil, &models.UploadError{Filename: req.Filename, Err: err}
	}

	u.logger.DebugContext(ctx, "Media uploaded",
		"filename", req.Filename,
		"asset_id", asset.ID,
		"size", len(data),
	)
	return asset, nil
}

// mediaTitle picks the display name for an uploaded image: user-assigned
// name, then item title plus position, then the image's own description.
func mediaTitle(image models.ImageRef, item *models.ContentItem, index int) string {
	if strings.TrimSpace(image.Name) != "" {
		return strings.TrimSpace(image.Name)
	}
	if item != nil && strings.TrimSpace(item.Title) != "" {
		return fmt.Sprintf("%s %d", strings.TrimSpace(item.Title), index+1)
	}
	if strings.TrimSpace(image.Description) != "" {
		return strings.TrimSpace(image.Description)
	}
	return fmt.Sprintf("image %d", index+1)
}

// makeFilename slugifies a title into a filesystem-safe name and appends
// the extension matching the content type.
func makeFilename(title, contentType string) string {
	s := slug.Make(title)
	if len(s) > maxFilenameLen {
		s = strings.TrimRight(s[:maxFilenameLen], "-")
	}
	if s == "" {
		s = "image"
	}
	return s + extensionFor(contentType)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	case "image/svg+xml":
		return ".svg"
	default:
		return ".jpg"
	}
}

// altText prefers the item's search term and keyword context over the
// image's own description.
func altText(image models.ImageRef, item *models.ContentItem) string {
	if item != nil {
		if kw := strings.TrimSpace(item.Keyword); kw != "" {
			return kw
		}
		if ctx := strings.TrimSpace(item.KeywordContext); ctx != "" {
			return firstLine(ctx)
		}
	}
	return strings.TrimSpace(image.Description)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
