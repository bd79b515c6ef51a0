package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// Client posts formatted content to a generic REST ingest endpoint with
// an optional bearer token. One instance per channel.
type Client struct {
	endpoint   string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg *models.WebhookConfig) *Client {
	return &Client{
		endpoint: cfg.Endpoint,
		token:    cfg.Token,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		logger: slog.Default().With("component", "webhook_client"),
	}
}

type contentPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Status  string `json:"status,omitempty"`
}

type apiResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		URL string `json:"url"`
	} `json:"data"`
}

// CreateContent posts one content item and returns the target URL when
// the endpoint reports one.
func (c *Client) CreateContent(ctx context.Context, title, content, status string) (string, error) {
	jsonBody, err := json.Marshal(contentPayload{Title: title, Content: content, Status: status})
	if err != nil {
		return "", fmt.Errorf("marshal content: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ingest request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("ingest API error: %d - %s", resp.StatusCode, string(body))
	}

	// response shape is endpoint-specific; a bare 2xx without a decodable
	// body still counts as accepted
	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return "", nil
	}
	if apiResp.Error != "" && !apiResp.Success {
		return "", fmt.Errorf("ingest API error: %s", apiResp.Error)
	}

	c.logger.InfoContext(ctx, "Content accepted",
		"endpoint", c.endpoint,
		"url", apiResp.Data.URL,
	)
	return apiResp.Data.URL, nil
}

// Verify interface implementation
var _ ports.WebhookAPI = (*Client)(nil)
