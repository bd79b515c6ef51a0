package models

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Platform - publishing destinations
type Platform string

const (
	PlatformWordPress Platform = "wordpress"
	PlatformStorage   Platform = "storage"
	PlatformWebhook   Platform = "webhook"
)

var validate = validator.New()

// Channel - one configured publishing destination. Exactly one of the
// per-platform config variants is set, keyed by Platform.
type Channel struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Platform Platform `json:"platform"`

	WordPress *WordPressConfig `json:"wordpress,omitempty"`
	Storage   *StorageConfig   `json:"storage,omitempty"`
	Webhook   *WebhookConfig   `json:"webhook,omitempty"`
}

// WordPressConfig - WordPress REST API target (basic auth with an
// application password).
type WordPressConfig struct {
	Endpoint    string `json:"endpoint" validate:"required,url"`
	Username    string `json:"username" validate:"required"`
	AppPassword string `json:"app_password" validate:"required"`
	Status      string `json:"status,omitempty" validate:"omitempty,oneof=draft publish private pending"`
	Locale      string `json:"locale,omitempty"`
	Tags        string `json:"tags,omitempty"`       // comma-separated names or IDs
	Categories  string `json:"categories,omitempty"` // comma-separated names or IDs
}

// PostStatus returns the configured post status, defaulting to draft.
func (c *WordPressConfig) PostStatus() string {
	if c.Status == "" {
		return "draft"
	}
	return c.Status
}

// StorageConfig - S3-compatible object storage target (Cloudflare R2).
type StorageConfig struct {
	Endpoint   string `json:"endpoint" validate:"required,url"`
	AccessKey  string `json:"access_key" validate:"required"`
	SecretKey  string `json:"secret_key" validate:"required"`
	Bucket     string `json:"bucket" validate:"required"`
	PublicURL  string `json:"public_url" validate:"required,url"`
	PathPrefix string `json:"path_prefix,omitempty"`
}

// WebhookConfig - generic REST ingest endpoint (bearer token).
type WebhookConfig struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	Token    string `json:"token,omitempty"`
	Status   string `json:"status,omitempty"`
}

// Validate checks that the config variant matching the platform is present
// and complete. Runs before any network call so a misconfigured channel
// fails as a ConfigError, never as a network error.
func (c *Channel) Validate() error {
	var cfg any
	switch c.Platform {
	case PlatformWordPress:
		cfg = c.WordPress
	case PlatformStorage:
		cfg = c.Storage
	case PlatformWebhook:
		cfg = c.Webhook
	default:
		return &ConfigError{Platform: c.Platform, Reason: "unknown platform"}
	}

	switch v := cfg.(type) {
	case *WordPressConfig:
		if v == nil {
			return &ConfigError{Platform: c.Platform, Reason: "missing wordpress config"}
		}
	case *StorageConfig:
		if v == nil {
			return &ConfigError{Platform: c.Platform, Reason: "missing storage config"}
		}
	case *WebhookConfig:
		if v == nil {
			return &ConfigError{Platform: c.Platform, Reason: "missing webhook config"}
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return &ConfigError{Platform: c.Platform, Reason: fmt.Sprintf("incomplete config: %v", err)}
	}
	return nil
}
