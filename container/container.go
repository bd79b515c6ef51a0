package container

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"

	"seo-publisher/config"
	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
	"seo-publisher/infrastructure/consumer"
	"seo-publisher/infrastructure/fetcher"
	"seo-publisher/infrastructure/messenger"
	"seo-publisher/infrastructure/repository"
	"seo-publisher/infrastructure/storage"
	"seo-publisher/infrastructure/webhook"
	"seo-publisher/infrastructure/wordpress"
	"seo-publisher/use_cases"
)

// Container - Dependency Injection Container
type Container struct {
	Config *config.Config

	// External connections
	NATSConn *nats.Conn
	DB       *sql.DB

	// Ports (Interfaces)
	ImageFetcher ports.ImageFetcherPort
	Consumer     ports.ConsumerPort
	Messenger    ports.MessengerPort

	// Use Cases
	Router  *use_cases.PublishRouter
	Handler *use_cases.QueueHandler

	logger *slog.Logger
}

func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{
		Config: cfg,
		logger: slog.Default().With("component", "container"),
	}

	var err error

	// ─────────────────────────────────────────────────────────────────────────────
	// 1. External Connections
	// ─────────────────────────────────────────────────────────────────────────────

	// NATS Connection
	c.NATSConn, err = nats.Connect(cfg.NATS.URL,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	c.logger.Info("Connected to NATS", "url", cfg.NATS.URL)

	// Database Connection
	c.DB, err = sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := c.DB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	c.logger.Info("Connected to database")

	// ─────────────────────────────────────────────────────────────────────────────
	// 2. Infrastructure Layer
	// ─────────────────────────────────────────────────────────────────────────────

	repo := repository.NewPostgresRepository(c.DB)
	c.logger.Info("Postgres repository created")

	c.ImageFetcher = fetcher.NewHTTPImageFetcher()
	c.logger.Info("Image fetcher created")

	// Channel API factories. Credentials live per channel, so clients are
	// constructed at publish time from the channel config.
	wpFactory := ports.WordPressAPIFactory(func(cfg *models.WordPressConfig) ports.WordPressAPI {
		return wordpress.NewClient(cfg)
	})
	webhookFactory := ports.WebhookAPIFactory(func(cfg *models.WebhookConfig) ports.WebhookAPI {
		return webhook.NewClient(cfg)
	})
	storageFactory := ports.StorageFactory(func(cfg *models.StorageConfig) (ports.StoragePort, error) {
		return storage.NewR2Client(cfg)
	})

	// NATS Consumer
	consumerImpl, err := consumer.NewNATSConsumer(consumer.NATSConsumerConfig{
		URL:             cfg.NATS.URL,
		Stream:          cfg.NATS.Stream,
		Subject:         cfg.NATS.Subject,
		ConsumerName:    cfg.NATS.Consumer,
		Concurrency:     cfg.Worker.Concurrency,
		ShutdownTimeout: cfg.NATS.ShutdownTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer: %w", err)
	}
	c.Consumer = consumerImpl
	c.logger.Info("NATS consumer created", "stream", cfg.NATS.Stream)

	// NATS Messenger (Progress Publisher)
	c.Messenger = messenger.NewNATSPublisher(c.NATSConn)
	c.logger.Info("NATS messenger created")

	// ─────────────────────────────────────────────────────────────────────────────
	// 3. Use Cases Layer
	// ─────────────────────────────────────────────────────────────────────────────

	c.Router = use_cases.NewPublishRouter(
		use_cases.NewWordPressPublisher(wpFactory, c.ImageFetcher),
		use_cases.NewStoragePublisher(storageFactory, c.ImageFetcher),
		use_cases.NewWebhookPublisher(webhookFactory),
	)
	c.logger.Info("Publish router created")

	c.Handler = use_cases.NewQueueHandler(repo, repo, repo, c.Router, c.Messenger)
	c.logger.Info("Queue handler created")

	// Wire handler to consumer
	c.Consumer.SetHandler(c.Handler.ProcessJob)

	c.logger.Info("Container initialized successfully")
	return c, nil
}

// Start runs all services.
func (c *Container) Start(ctx context.Context) error {
	c.logger.Info("Starting container services...")

	// Start consumer (blocking)
	if err := c.Consumer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start consumer: %w", err)
	}

	return nil
}

// Stop shuts down all services gracefully.
func (c *Container) Stop() {
	c.logger.Info("Stopping container services...")

	c.Consumer.Stop()
	c.logger.Info("Consumer stopped")

	if c.DB != nil {
		c.DB.Close()
		c.logger.Info("Database connection closed")
	}

	if c.NATSConn != nil {
		c.NATSConn.Close()
		c.logger.Info("NATS connection closed")
	}

	c.logger.Info("Container stopped")
}
