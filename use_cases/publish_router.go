package use_cases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// PublishRouter is the single entry point for publishing one content item
// to one channel. It dispatches on platform and source type, performs no
// retries of its own, and never lets an error escape: every call yields a
// fully resolved PublishedDestination with a human-readable log line.
type PublishRouter struct {
	publishers map[models.Platform]ports.ChannelPublisherPort
	logger     *slog.Logger
}

func NewPublishRouter(publishers ...ports.ChannelPublisherPort) *PublishRouter {
	r := &PublishRouter{
		publishers: make(map[models.Platform]ports.ChannelPublisherPort, len(publishers)),
		logger:     slog.Default().With("component", "publish_router"),
	}
	for _, pub := range publishers {
		r.publishers[pub.Platform()] = pub
	}
	return r
}

// Publish routes one item to the channel's publisher. Unsupported
// platform/source-type combinations fail before any network call.
func (r *PublishRouter) Publish(ctx context.Context, item *models.ContentItem, channel *models.Channel) *models.PublishedDestination {
	pub, ok := r.publishers[channel.Platform]
	if !ok {
		return r.failed(channel, fmt.Sprintf("unknown platform %q", channel.Platform))
	}
	if !pub.Supports(item.SourceType) {
		return r.failed(channel, fmt.Sprintf("unsupported combination: %s content cannot be published to %s", item.SourceType, channel.Platform))
	}

	dest, err := pub.Publish(ctx, item, channel)
	if err != nil {
		r.logger.ErrorContext(ctx, "Publish failed",
			"platform", channel.Platform,
			"channel", channel.Name,
			"source_type", item.SourceType,
			"error", err,
		)
		return r.failed(channel, err.Error())
	}
	return dest
}

func (r *PublishRouter) failed(channel *models.Channel, log string) *models.PublishedDestination {
	return &models.PublishedDestination{
		Platform:    channel.Platform,
		Status:      models.PublishStatusFailed,
		Target:      channel.Name,
		PublishedAt: time.Now(),
		Log:         log,
	}
}
