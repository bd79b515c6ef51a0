package ports

import (
	"context"

	"seo-publisher/domain/models"
)

// ContentStorePort - read side of the content store plus the append-only
// publication history. The pipeline never updates or deletes content.
type ContentStorePort interface {
	// GetContentItem fetches one item by id and variant
	GetContentItem(ctx context.Context, id string, sourceType models.SourceType) (*models.ContentItem, error)

	// AppendDestination appends one publish outcome to the item's history
	AppendDestination(ctx context.Context, itemID string, dest *models.PublishedDestination) error
}

// ChannelStorePort - supplies channel credentials and knobs
type ChannelStorePort interface {
	GetChannel(ctx context.Context, id string) (*models.Channel, error)
}

// QueueStorePort - work item persistence. Status moves
// queued → publishing → success|failed; the terminal write happens
// exactly once per attempt and always carries a non-empty log.
type QueueStorePort interface {
	// CreateWorkItem inserts a new queued item
	CreateWorkItem(ctx context.Context, item *models.WorkItem) error

	GetWorkItem(ctx context.Context, id string) (*models.WorkItem, error)

	// MarkPublishing transitions a queued item to publishing
	MarkPublishing(ctx context.Context, id string) error

	// Complete records the terminal status and log for one attempt
	Complete(ctx context.Context, id string, status string, log string) error
}
