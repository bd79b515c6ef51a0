package ports

import (
	"context"

	"seo-publisher/domain/models"
)

// JobHandler - function signature for handling one publish job
type JobHandler func(ctx context.Context, job *models.PublishJob) error

// ConsumerPort - work-queue consumer
type ConsumerPort interface {
	// Start begins consuming messages (blocking)
	Start(ctx context.Context) error

	// Stop drains in-flight jobs and disconnects (graceful)
	Stop()

	// SetHandler wires the job handler; must be called before Start
	SetHandler(handler JobHandler)

	// IsRunning reports whether the consumer is active
	IsRunning() bool

	// IsPaused reports whether job intake is suspended
	IsPaused() bool

	// Pause suspends job intake without disconnecting
	Pause()

	// Resume restarts job intake
	Resume()
}
