package messenger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

type NATSPublisher struct {
	nc     *nats.Conn
	logger *slog.Logger
}

func NewNATSPublisher(nc *nats.Conn) *NATSPublisher {
	return &NATSPublisher{
		nc:     nc,
		logger: slog.Default().With("component", "nats_publisher"),
	}
}

// SendProgress publishes a progress update.
// Subject: publish.progress.{work_item_id}
func (p *NATSPublisher) SendProgress(ctx context.Context, update *models.ProgressUpdate) error {
	subject := fmt.Sprintf("publish.progress.%s", update.WorkItemID)

	data, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal progress update: %w", err)
	}

	if err := p.nc.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish progress: %w", err)
	}

	p.logger.DebugContext(ctx, "Progress sent",
		"work_item_id", update.WorkItemID,
		"stage", update.Stage,
		"progress", update.Progress,
	)
	return nil
}

// SendCompleted signals a finished publish.
func (p *NATSPublisher) SendCompleted(ctx context.Context, workItemID string) error {
	update := &models.ProgressUpdate{
		WorkItemID: workItemID,
		Stage:      ports.StageCompleted,
		Progress:   100,
		Message:    "Published successfully",
		Timestamp:  time.Now().Unix(),
	}
	return p.SendProgress(ctx, update)
}

// SendFailed signals a failed publish.
func (p *NATSPublisher) SendFailed(ctx context.Context, workItemID string, err error) error {
	update := &models.ProgressUpdate{
		WorkItemID: workItemID,
		Stage:      ports.StageFailed,
		Progress:   0,
		Error:      err.Error(),
		Timestamp:  time.Now().Unix(),
	}
	return p.SendProgress(ctx, update)
}

// Verify interface implementation
var _ ports.MessengerPort = (*NATSPublisher)(nil)
