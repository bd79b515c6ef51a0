package ports

import (
	"context"

	"seo-publisher/domain/models"
)

// ChannelPublisherPort - one publishing backend. Turns a (ContentItem,
// Channel) pair into exactly one PublishedDestination. A returned error
// is converted by the router into a failed destination; implementations
// must not leave partial state behind on failure.
type ChannelPublisherPort interface {
	// Platform this publisher handles
	Platform() models.Platform

	// Supports reports whether the source type can be published here.
	// Unsupported combinations fail in the router before any network call.
	Supports(sourceType models.SourceType) bool

	// Publish performs the full publish flow for one item
	Publish(ctx context.Context, item *models.ContentItem, channel *models.Channel) (*models.PublishedDestination, error)
}

// WordPressAPI - WordPress REST endpoints the pipeline needs
// (media upload, term listing/creation, content creation).
// One instance is bound to one channel's endpoint and credentials.
type WordPressAPI interface {
	// UploadMedia persists one media item and returns its asset ID and URL
	UploadMedia(ctx context.Context, req *models.MediaUploadRequest) (*models.MediaAsset, error)

	// ListTerms fetches the current term list for a taxonomy
	ListTerms(ctx context.Context, termType models.TermType) ([]models.Term, error)

	// CreateTerm creates a missing term. When the platform reports the term
	// already exists and returns its ID, the existing term comes back with
	// a nil error; otherwise the error wraps models.ErrTermExists.
	CreateTerm(ctx context.Context, termType models.TermType, name string) (*models.Term, error)

	// CreatePost issues the create-content call
	CreatePost(ctx context.Context, req models.PostRequest) (*models.PostResult, error)
}

// WordPressAPIFactory builds an API client bound to one channel config.
type WordPressAPIFactory func(cfg *models.WordPressConfig) WordPressAPI

// WebhookAPI - generic REST ingest endpoint
type WebhookAPI interface {
	// CreateContent posts the formatted content and returns the item URL
	// when the endpoint reports one
	CreateContent(ctx context.Context, title, content, status string) (string, error)
}

// WebhookAPIFactory builds an ingest client bound to one channel config.
type WebhookAPIFactory func(cfg *models.WebhookConfig) WebhookAPI
