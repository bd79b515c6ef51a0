package storage

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// R2Client - S3-compatible client for Cloudflare R2, bound to one
// storage channel's bucket and credentials.
type R2Client struct {
	client    *s3.Client
	bucket    string
	publicURL string
	logger    *slog.Logger
}

func NewR2Client(cfg *models.StorageConfig) (*R2Client, error) {
	resolver := aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
		return aws.Endpoint{
			URL: cfg.Endpoint,
		}, nil
	})

	awsCfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithEndpointResolverWithOptions(resolver),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = true
	})

	return &R2Client{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		logger:    slog.Default().With("component", "r2_storage"),
	}, nil
}

func (c *R2Client) Upload(ctx context.Context, path string, data []byte, contentType string) error {
	_, err := c.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(path),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to R2: %w", err)
	}

	c.logger.InfoContext(ctx, "File uploaded",
		"path", path,
		"size", len(data),
	)
	return nil
}

func (c *R2Client) Exists(ctx context.Context, path string) (bool, error) {
	_, err := c.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (c *R2Client) GetPublicURL(path string) string {
	return fmt.Sprintf("%s/%s", c.publicURL, path)
}

// Verify interface implementation
var _ ports.StoragePort = (*R2Client)(nil)
