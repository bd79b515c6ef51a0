package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Worker   WorkerConfig
	NATS     NATSConfig
	Database DatabaseConfig
}

type WorkerConfig struct {
	ID          string
	Concurrency int
}

type NATSConfig struct {
	URL             string
	Stream          string
	Subject         string
	Consumer        string
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	URL string
}

func Load() (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	concurrency, _ := strconv.Atoi(getEnv("WORKER_CONCURRENCY", "2"))
	workerID := getEnv("WORKER_ID", "publish-worker-1")

	return &Config{
		Worker: WorkerConfig{
			ID:          workerID,
			Concurrency: concurrency,
		},
		NATS: NATSConfig{
			URL:             getEnv("NATS_URL", "nats://localhost:4222"),
			Stream:          getEnv("NATS_STREAM", "PUBLISH_JOBS"),
			Subject:         "publish.job.dispatch",
			Consumer:        "publish-worker-" + workerID,
			ShutdownTimeout: 60 * time.Second,
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
