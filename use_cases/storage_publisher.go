package use_cases

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// StoragePublisher writes image sets to an S3-compatible bucket (R2),
// one object per image under {prefix}/{set-slug}/. Text content has no
// meaning on this platform.
type StoragePublisher struct {
	factory ports.StorageFactory
	fetcher ports.ImageFetcherPort
	logger  *slog.Logger
}

func NewStoragePublisher(factory ports.StorageFactory, fetcher ports.ImageFetcherPort) *StoragePublisher {
	return &StoragePublisher{
		factory: factory,
		fetcher: fetcher,
		logger:  slog.Default().With("component", "storage_publisher"),
	}
}

func (p *StoragePublisher) Platform() models.Platform {
	return models.PlatformStorage
}

func (p *StoragePublisher) Supports(sourceType models.SourceType) bool {
	return sourceType == models.SourceTypeImageSet
}

func (p *StoragePublisher) Publish(ctx context.Context, item *models.ContentItem, channel *models.Channel) (*models.PublishedDestination, error) {
	if err := channel.Validate(); err != nil {
		return nil, err
	}
	cfg := channel.Storage

	client, err := p.factory(cfg)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}

	setSlug := slug.Make(item.Name)
	if setSlug == "" {
		setSlug = item.ID
	}

	details := make([]models.PublishedDestinationDetail, 0, len(item.Images))
	var firstURL string
	failed := 0

	for i, image := range item.Images {
		url, upErr := p.uploadImage(ctx, client, cfg, setSlug, image, item, i)
		if upErr != nil {
			failed++
			details = append(details, models.PublishedDestinationDetail{
				Status: models.PublishStatusFailed,
				Log:    upErr.Error(),
			})
			continue
		}
		if firstURL == "" {
			firstURL = url
		}
		details = append(details, models.PublishedDestinationDetail{
			Status: models.PublishStatusSuccess,
			Log:    fmt.Sprintf("uploaded %s", url),
			URL:    url,
		})
	}

	status := models.PublishStatusSuccess
	if failed > 0 {
		status = models.PublishStatusFailed
	}

	return &models.PublishedDestination{
		Platform:    models.PlatformStorage,
		Status:      status,
		Target:      channel.Name,
		URL:         firstURL,
		PublishedAt: time.Now(),
		Log:         fmt.Sprintf("uploaded %d/%d images to bucket %s", len(item.Images)-failed, len(item.Images), cfg.Bucket),
		Details:     details,
	}, nil
}

func (p *StoragePublisher) uploadImage(ctx context.Context, client ports.StoragePort, cfg *models.StorageConfig, setSlug string, image models.ImageRef, item *models.ContentItem, index int) (string, error) {
	var data []byte
	contentType := ""

	if image.IsEmbedded() {
		decoded, ct, ok := decodeDataURI(image.EmbeddedData)
		if !ok {
			return "", &models.UploadError{Filename: image.Name, Err: fmt.Errorf("malformed data URI")}
		}
		data, contentType = decoded, ct
	} else {
		if image.RemoteURL == "" {
			return "", &models.UploadError{Filename: image.Name, Err: fmt.Errorf("image has neither data nor a remote URL")}
		}
		var err error
		data, contentType, err = p.fetcher.Fetch(ctx, image.RemoteURL)
		if err != nil {
			return "", &models.UploadError{Filename: image.Name, Err: fmt.Errorf("fetch %s: %w", image.RemoteURL, err)}
		}
	}

	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		contentType = "image/jpeg"
	}

	filename := makeFilename(mediaTitle(image, item, index), contentType)
	key := path.Join(cfg.PathPrefix, setSlug, filename)

	// same set published twice reuses the stored object
	if exists, _ := client.Exists(ctx, key); exists {
		p.logger.DebugContext(ctx, "Object already present, skipping upload", "key", key)
		return client.GetPublicURL(key), nil
	}

	if err := client.Upload(ctx, key, data, contentType); err != nil {
		return "", &models.UploadError{Filename: filename, Err: err}
	}
	return client.GetPublicURL(key), nil
}

// Verify interface implementation
var _ ports.ChannelPublisherPort = (*StoragePublisher)(nil)
