package models

import "time"

// Work item lifecycle. The queue manager creates items as queued; the
// publish flow moves them to publishing and then exactly once to a
// terminal state, always with a non-empty log.
const (
	WorkStatusQueued     = "queued"
	WorkStatusPublishing = "publishing"
	WorkStatusSuccess    = "success"
	WorkStatusFailed     = "failed"
)

// WorkItem - queue entry for one publish attempt
type WorkItem struct {
	ID         string     `json:"id"`
	SourceID   string     `json:"source_id"`
	SourceType SourceType `json:"source_type"`
	Status     string     `json:"status"`
	Log        string     `json:"log,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// PublishJob - message delivered over the work queue.
// Sent by the application when the user selects items to publish.
type PublishJob struct {
	WorkItemID string `json:"work_item_id"`
	ChannelID  string `json:"channel_id"`
	Priority   int    `json:"priority"` // 1=urgent, 2=normal, 3=backfill
	CreatedAt  int64  `json:"created_at"`
}

// NewPublishJob creates a normal-priority job.
func NewPublishJob(workItemID, channelID string) *PublishJob {
	return &PublishJob{
		WorkItemID: workItemID,
		ChannelID:  channelID,
		Priority:   2,
		CreatedAt:  time.Now().Unix(),
	}
}

// ProgressUpdate - publish progress pushed back to the UI
type ProgressUpdate struct {
	WorkItemID string `json:"work_item_id"`
	Stage      string `json:"stage"`
	Progress   int    `json:"progress"` // 0-100
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	Timestamp  int64  `json:"timestamp"`
}

func NewProgressUpdate(workItemID, stage string, progress int) *ProgressUpdate {
	return &ProgressUpdate{
		WorkItemID: workItemID,
		Stage:      stage,
		Progress:   progress,
		Timestamp:  time.Now().Unix(),
	}
}
