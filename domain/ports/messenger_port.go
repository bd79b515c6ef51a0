package ports

import (
	"context"

	"seo-publisher/domain/models"
)

// MessengerPort - pushes publish progress back to the UI
type MessengerPort interface {
	// SendProgress sends a progress update; the admin UI subscribes to
	// render the per-item progress state
	SendProgress(ctx context.Context, update *models.ProgressUpdate) error

	// SendCompleted signals a finished publish
	SendCompleted(ctx context.Context, workItemID string) error

	// SendFailed signals a failed publish
	SendFailed(ctx context.Context, workItemID string, err error) error
}

// Progress stages
const (
	StageLoading    = "loading"
	StagePublishing = "publishing"
	StageCompleted  = "completed"
	StageFailed     = "failed"
)
