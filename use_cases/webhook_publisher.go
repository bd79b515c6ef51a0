package use_cases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// WebhookPublisher posts formatted text content to a generic REST ingest
// endpoint. No media library, no taxonomy: image sets are not supported
// and the router rejects them before this publisher is reached.
type WebhookPublisher struct {
	apiFactory ports.WebhookAPIFactory
	logger     *slog.Logger
}

func NewWebhookPublisher(apiFactory ports.WebhookAPIFactory) *WebhookPublisher {
	return &WebhookPublisher{
		apiFactory: apiFactory,
		logger:     slog.Default().With("component", "webhook_publisher"),
	}
}

func (p *WebhookPublisher) Platform() models.Platform {
	return models.PlatformWebhook
}

func (p *WebhookPublisher) Supports(sourceType models.SourceType) bool {
	return sourceType == models.SourceTypeArticle || sourceType == models.SourceTypePost
}

func (p *WebhookPublisher) Publish(ctx context.Context, item *models.ContentItem, channel *models.Channel) (*models.PublishedDestination, error) {
	if err := channel.Validate(); err != nil {
		return nil, err
	}
	cfg := channel.Webhook

	formatted := FormatContent(item)

	url, err := p.apiFactory(cfg).CreateContent(ctx, formatted.Title, formatted.Content, cfg.Status)
	if err != nil {
		return nil, &models.PublishError{Primary: err}
	}

	p.logger.InfoContext(ctx, "Content posted to webhook",
		"channel", channel.Name,
		"url", url,
	)

	return &models.PublishedDestination{
		Platform:    models.PlatformWebhook,
		Status:      models.PublishStatusSuccess,
		Target:      channel.Name,
		URL:         url,
		PublishedAt: time.Now(),
		Log:         fmt.Sprintf("posted %q to %s", formatted.Title, channel.Name),
	}, nil
}

// Verify interface implementation
var _ ports.ChannelPublisherPort = (*WebhookPublisher)(nil)
