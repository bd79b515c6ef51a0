package use_cases

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// QueueHandler processes one publish job from the work queue: loads the
// work item, channel and content item, drives the router, and applies the
// outcome to the work item and the content item's publication history.
type QueueHandler struct {
	queueStore   ports.QueueStorePort
	channelStore ports.ChannelStorePort
	contentStore ports.ContentStorePort
	router       *PublishRouter
	messenger    ports.MessengerPort

	logger *slog.Logger
}

func NewQueueHandler(
	queueStore ports.QueueStorePort,
	channelStore ports.ChannelStorePort,
	contentStore ports.ContentStorePort,
	router *PublishRouter,
	messenger ports.MessengerPort,
) *QueueHandler {
	return &QueueHandler{
		queueStore:   queueStore,
		channelStore: channelStore,
		contentStore: contentStore,
		router:       router,
		messenger:    messenger,
		logger:       slog.Default().With("component", "queue_handler"),
	}
}

// ProcessJob handles one job end to end. A returned error requeues the
// message; jobs whose outcome is already recorded on the work item return
// nil so a terminal publish is never re-attempted by the queue.
func (h *QueueHandler) ProcessJob(ctx context.Context, job *models.PublishJob) error {
	startTime := time.Now()

	h.logger.InfoContext(ctx, "Processing publish job",
		"work_item_id", job.WorkItemID,
		"channel_id", job.ChannelID,
	)

	h.sendProgress(ctx, job.WorkItemID, ports.StageLoading, 10)

	work, err := h.queueStore.GetWorkItem(ctx, job.WorkItemID)
	if err != nil {
		h.messenger.SendFailed(ctx, job.WorkItemID, err)
		return fmt.Errorf("load work item: %w", err)
	}
	if work.Status != models.WorkStatusQueued {
		h.logger.WarnContext(ctx, "Work item not queued, skipping",
			"work_item_id", work.ID,
			"status", work.Status,
		)
		return nil
	}

	channel, err := h.channelStore.GetChannel(ctx, job.ChannelID)
	if err != nil {
		return h.failBeforePublish(ctx, work.ID, fmt.Errorf("load channel %s: %w", job.ChannelID, err))
	}

	item, err := h.contentStore.GetContentItem(ctx, work.SourceID, work.SourceType)
	if err != nil {
		return h.failBeforePublish(ctx, work.ID, fmt.Errorf("load content item %s: %w", work.SourceID, err))
	}

	if err := h.queueStore.MarkPublishing(ctx, work.ID); err != nil {
		// item stays queued; let the queue redeliver
		return fmt.Errorf("mark publishing: %w", err)
	}

	h.sendProgress(ctx, job.WorkItemID, ports.StagePublishing, 40)

	dest := h.router.Publish(ctx, item, channel)

	workStatus := models.WorkStatusSuccess
	if dest.Status != models.PublishStatusSuccess {
		workStatus = models.WorkStatusFailed
	}

	// the outcome is decided at this point; persistence failures are
	// logged rather than returned, a redelivery would publish twice
	if err := h.queueStore.Complete(ctx, work.ID, workStatus, dest.Log); err != nil {
		h.logger.ErrorContext(ctx, "Failed to record work item outcome",
			"work_item_id", work.ID,
			"error", err,
		)
	}
	if err := h.contentStore.AppendDestination(ctx, item.ID, dest); err != nil {
		h.logger.ErrorContext(ctx, "Failed to append publication history",
			"item_id", item.ID,
			"error", err,
		)
	}

	if workStatus == models.WorkStatusSuccess {
		h.messenger.SendCompleted(ctx, work.ID)
	} else {
		h.messenger.SendFailed(ctx, work.ID, errors.New(dest.Log))
	}

	h.logger.InfoContext(ctx, "Publish job finished",
		"work_item_id", work.ID,
		"platform", channel.Platform,
		"status", workStatus,
		"duration", time.Since(startTime),
	)
	return nil
}

// failBeforePublish records a terminal failure for errors that happen
// before dispatch. These are deterministic (bad channel id, missing
// content), so redelivering the job would not help.
func (h *QueueHandler) failBeforePublish(ctx context.Context, workItemID string, cause error) error {
	if err := h.queueStore.Complete(ctx, workItemID, models.WorkStatusFailed, cause.Error()); err != nil {
		h.logger.ErrorContext(ctx, "Failed to record work item failure",
			"work_item_id", workItemID,
			"error", err,
		)
	}
	h.messenger.SendFailed(ctx, workItemID, cause)
	return nil
}

func (h *QueueHandler) sendProgress(ctx context.Context, workItemID, stage string, progress int) {
	update := models.NewProgressUpdate(workItemID, stage, progress)
	if err := h.messenger.SendProgress(ctx, update); err != nil {
		h.logger.WarnContext(ctx, "Failed to send progress", "error", err)
	}
}
