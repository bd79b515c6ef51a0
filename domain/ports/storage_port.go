package ports

import (
	"context"

	"seo-publisher/domain/models"
)

// StoragePort - Object storage target (R2/S3) for image-set publishing
type StoragePort interface {
	// Upload writes one object
	Upload(ctx context.Context, path string, data []byte, contentType string) error

	// Exists checks whether an object is already present
	Exists(ctx context.Context, path string) (bool, error)

	// GetPublicURL builds the public URL for an object path
	GetPublicURL(path string) string
}

// StorageFactory builds a storage client bound to one channel config.
type StorageFactory func(cfg *models.StorageConfig) (StoragePort, error)
