package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// PostgresRepository backs the content, channel and queue stores with
// one postgres database. Publication history is append-only: rows in
// published_destinations are inserted, never updated or deleted.
type PostgresRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db:     db,
		logger: slog.Default().With("component", "postgres_repository"),
	}
}

func (r *PostgresRepository) GetContentItem(ctx context.Context, id string, sourceType models.SourceType) (*models.ContentItem, error) {
	query := `
		SELECT id, source_type,
		       COALESCE(title, ''), COALESCE(name, ''),
		       COALESCE(markdown, ''), COALESCE(html, ''),
		       COALESCE(keyword, ''), COALESCE(keyword_context, ''),
		       COALESCE(images, '[]')
		FROM content_items
		WHERE id = $1 AND source_type = $2`

	var item models.ContentItem
	var imagesJSON []byte
	err := r.db.QueryRowContext(ctx, query, id, string(sourceType)).Scan(
		&item.ID, &item.SourceType,
		&item.Title, &item.Name,
		&item.Markdown, &item.HTML,
		&item.Keyword, &item.KeywordContext,
		&imagesJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("query content item %s: %w", id, err)
	}

	if err := json.Unmarshal(imagesJSON, &item.Images); err != nil {
		return nil, fmt.Errorf("decode images for %s: %w", id, err)
	}
	return &item, nil
}

func (r *PostgresRepository) AppendDestination(ctx context.Context, itemID string, dest *models.PublishedDestination) error {
	detailsJSON, err := json.Marshal(dest.Details)
	if err != nil {
		return fmt.Errorf("encode details: %w", err)
	}

	query := `
		INSERT INTO published_destinations
			(item_id, platform, status, target, url, published_at, log, details)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err = r.db.ExecContext(ctx, query,
		itemID, string(dest.Platform), dest.Status, dest.Target,
		dest.URL, dest.PublishedAt, dest.Log, detailsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert destination for %s: %w", itemID, err)
	}

	r.logger.InfoContext(ctx, "Publication history appended",
		"item_id", itemID,
		"platform", dest.Platform,
		"status", dest.Status,
	)
	return nil
}

func (r *PostgresRepository) GetChannel(ctx context.Context, id string) (*models.Channel, error) {
	query := `SELECT id, name, platform, config FROM channels WHERE id = $1`

	var channel models.Channel
	var configJSON []byte
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&channel.ID, &channel.Name, &channel.Platform, &configJSON,
	)
	if err != nil {
		return nil, fmt.Errorf("query channel %s: %w", id, err)
	}

	// config holds the per-platform variant under its platform key
	if err := json.Unmarshal(configJSON, &channel); err != nil {
		return nil, fmt.Errorf("decode channel config %s: %w", id, err)
	}
	return &channel, nil
}

func (r *PostgresRepository) CreateWorkItem(ctx context.Context, item *models.WorkItem) error {
	query := `
		INSERT INTO work_items (id, source_id, source_type, status, log, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`

	now := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		item.ID, item.SourceID, string(item.SourceType), models.WorkStatusQueued, "", now,
	)
	if err != nil {
		return fmt.Errorf("insert work item: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetWorkItem(ctx context.Context, id string) (*models.WorkItem, error) {
	query := `
		SELECT id, source_id, source_type, status, COALESCE(log, ''), created_at, updated_at
		FROM work_items WHERE id = $1`

	var item models.WorkItem
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.SourceID, &item.SourceType,
		&item.Status, &item.Log, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("query work item %s: %w", id, err)
	}
	return &item, nil
}

// MarkPublishing transitions a queued item to publishing. The status
// guard in the WHERE clause keeps a stale redelivery from re-entering
// the publish flow.
func (r *PostgresRepository) MarkPublishing(ctx context.Context, id string) error {
	query := `
		UPDATE work_items SET status = $2, updated_at = $3
		WHERE id = $1 AND status = $4`

	result, err := r.db.ExecContext(ctx, query, id, models.WorkStatusPublishing, time.Now(), models.WorkStatusQueued)
	if err != nil {
		return fmt.Errorf("mark publishing %s: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("work item %s is not queued", id)
	}
	return nil
}

func (r *PostgresRepository) Complete(ctx context.Context, id string, status string, log string) error {
	query := `UPDATE work_items SET status = $2, log = $3, updated_at = $4 WHERE id = $1`

	_, err := r.db.ExecContext(ctx, query, id, status, log, time.Now())
	if err != nil {
		return fmt.Errorf("complete work item %s: %w", id, err)
	}
	return nil
}

// Verify interface implementations
var (
	_ ports.ContentStorePort = (*PostgresRepository)(nil)
	_ ports.ChannelStorePort = (*PostgresRepository)(nil)
	_ ports.QueueStorePort   = (*PostgresRepository)(nil)
)
