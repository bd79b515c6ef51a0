package messenger

import (
	"context"
	"log/slog"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// NoopMessenger logs progress instead of sending it; used when the
// worker runs without a NATS connection and in tests.
type NoopMessenger struct {
	logger *slog.Logger
}

func NewNoopMessenger() *NoopMessenger {
	return &NoopMessenger{
		logger: slog.Default().With("component", "noop_messenger"),
	}
}

func (m *NoopMessenger) SendProgress(ctx context.Context, update *models.ProgressUpdate) error {
	m.logger.InfoContext(ctx, "Progress (noop)",
		"work_item_id", update.WorkItemID,
		"stage", update.Stage,
		"progress", update.Progress,
	)
	return nil
}

func (m *NoopMessenger) SendCompleted(ctx context.Context, workItemID string) error {
	m.logger.InfoContext(ctx, "Completed (noop)", "work_item_id", workItemID)
	return nil
}

func (m *NoopMessenger) SendFailed(ctx context.Context, workItemID string, err error) error {
	m.logger.WarnContext(ctx, "Failed (noop)", "work_item_id", workItemID, "error", err)
	return nil
}

// Verify interface implementation
var _ ports.MessengerPort = (*NoopMessenger)(nil)
