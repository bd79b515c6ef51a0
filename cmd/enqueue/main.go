package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"

	"seo-publisher/config"
	"seo-publisher/domain/models"
	"seo-publisher/infrastructure/repository"
)

// Manual job submission tool for local testing: creates a queued work item
// and dispatches the matching job message.
func main() {
	sourceID := flag.String("source", "", "Content item ID to publish")
	sourceType := flag.String("type", "article", "Source type: article, post, image_set")
	channelID := flag.String("channel", "", "Channel ID to publish to")
	priority := flag.Int("priority", 2, "Job priority (1=urgent, 2=normal, 3=backfill)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if *sourceID == "" || *channelID == "" {
		logger.Error("Both -source and -channel are required")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	repo := repository.NewPostgresRepository(db)

	item := &models.WorkItem{
		ID:         uuid.NewString(),
		SourceID:   *sourceID,
		SourceType: models.SourceType(*sourceType),
		Status:     models.WorkStatusQueued,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := repo.CreateWorkItem(ctx, item); err != nil {
		logger.Error("Failed to create work item", "error", err)
		os.Exit(1)
	}
	logger.Info("Work item created", "work_item_id", item.ID)

	nc, err := nats.Connect(cfg.NATS.URL)
	if err != nil {
		logger.Error("Failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer nc.Close()

	js, err := nc.JetStream()
	if err != nil {
		logger.Error("Failed to get JetStream context", "error", err)
		os.Exit(1)
	}

	job := models.NewPublishJob(item.ID, *channelID)
	job.Priority = *priority

	data, _ := json.Marshal(job)
	if _, err := js.Publish(cfg.NATS.Subject, data); err != nil {
		logger.Error("Failed to publish job", "error", err)
		os.Exit(1)
	}

	logger.Info("Job published",
		"work_item_id", job.WorkItemID,
		"channel_id", job.ChannelID,
		"priority", job.Priority,
	)
}
