package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// Client talks to one WordPress site's REST API (wp/v2) with basic auth
// using an application password. One instance per channel.
type Client struct {
	baseURL    string
	username   string
	password   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(cfg *models.WordPressConfig) *Client {
	return &Client{
		baseURL:  strings.TrimRight(cfg.Endpoint, "/"),
		username: cfg.Username,
		password: cfg.AppPassword,
		httpClient: &http.Client{
			Timeout: 120 * time.Second, // media payloads can be large
		},
		logger: slog.Default().With("component", "wordpress_client"),
	}
}

// wpError is the REST API's error envelope.
type wpError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Status int `json:"status"`
		TermID int `json:"term_id"`
	} `json:"data"`
}

func (c *Client) endpoint(resource string) string {
	return fmt.Sprintf("%s/wp-json/wp/v2/%s", c.baseURL, resource)
}

// UploadMedia posts the binary first, then sets title/alt/caption in a
// follow-up call. A metadata failure keeps the asset and is only logged.
func (c *Client) UploadMedia(ctx context.Context, req *models.MediaUploadRequest) (*models.MediaAsset, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("media"), bytes.NewReader(req.Data))
	if err != nil {
		return nil, fmt.Errorf("create media request: %w", err)
	}
	httpReq.SetBasicAuth(c.username, c.password)
	httpReq.Header.Set("Content-Type", req.ContentType)
	httpReq.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.Filename))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &models.UploadError{Filename: req.Filename, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return nil, &models.UploadError{
			Filename:   req.Filename,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	var media struct {
		ID        int64  `json:"id"`
		SourceURL string `json:"source_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&media); err != nil {
		return nil, &models.UploadError{Filename: req.Filename, Err: fmt.Errorf("decode media response: %w", err)}
	}

	if err := c.updateMediaDetails(ctx, media.ID, req); err != nil {
		c.logger.WarnContext(ctx, "Media metadata update failed (non-critical)",
			"media_id", media.ID,
			"error", err,
		)
	}

	c.logger.InfoContext(ctx, "Media uploaded",
		"filename", req.Filename,
		"media_id", media.ID,
	)
	return &models.MediaAsset{ID: media.ID, URL: media.SourceURL}, nil
}

func (c *Client) updateMediaDetails(ctx context.Context, mediaID int64, req *models.MediaUploadRequest) error {
	payload := map[string]string{
		"title":    req.Title,
		"alt_text": req.AltText,
		"caption":  req.Caption,
	}
	return c.postJSON(ctx, c.endpoint(fmt.Sprintf("media/%d", mediaID)), payload, nil)
}

func (c *Client) ListTerms(ctx context.Context, termType models.TermType) ([]models.Term, error) {
	url := c.endpoint(string(termType)) + "?per_page=100"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create terms request: %w", err)
	}
	httpReq.SetBasicAuth(c.username, c.password)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", termType, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("list %s: %d - %s", termType, resp.StatusCode, string(body))
	}

	var terms []models.Term
	if err := json.NewDecoder(resp.Body).Decode(&terms); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", termType, err)
	}
	return terms, nil
}

// CreateTerm creates a taxonomy term. A term_exists rejection that names
// the existing ID resolves to that term; otherwise the error wraps
// models.ErrTermExists so the resolver can treat it as recoverable.
func (c *Client) CreateTerm(ctx context.Context, termType models.TermType, name string) (*models.Term, error) {
	payload := map[string]string{"name": name}

	body, status, err := c.doJSON(ctx, http.MethodPost, c.endpoint(string(termType)), payload)
	if err != nil {
		return nil, fmt.Errorf("create %s %q: %w", termType, name, err)
	}

	if status == http.StatusOK || status == http.StatusCreated {
		var term models.Term
		if err := json.Unmarshal(body, &term); err != nil {
			return nil, fmt.Errorf("decode created term: %w", err)
		}
		return &term, nil
	}

	var apiErr wpError
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Code == "term_exists" {
		if apiErr.Data.TermID > 0 {
			return &models.Term{ID: apiErr.Data.TermID, Name: name}, nil
		}
		return nil, fmt.Errorf("%s %q: %w", termType, name, models.ErrTermExists)
	}
	return nil, fmt.Errorf("create %s %q: %d - %s", termType, name, status, string(body))
}

func (c *Client) CreatePost(ctx context.Context, req models.PostRequest) (*models.PostResult, error) {
	var result models.PostResult
	if err := c.postJSON(ctx, c.endpoint("posts"), req, &result); err != nil {
		return nil, err
	}

	c.logger.InfoContext(ctx, "Post created",
		"post_id", result.ID,
		"status", req.Status,
	)
	return &result, nil
}

// postJSON posts a JSON payload and decodes a 2xx response into out.
func (c *Client) postJSON(ctx context.Context, url string, payload any, out any) error {
	body, status, err := c.doJSON(ctx, http.MethodPost, url, payload)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return fmt.Errorf("wordpress API error: %d - %s", status, string(body))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) doJSON(ctx context.Context, method, url string, payload any) ([]byte, int, error) {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, 0, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, 0, fmt.Errorf("create request: %w", err)
	}
	httpReq.SetBasicAuth(c.username, c.password)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// Verify interface implementation
var _ ports.WordPressAPI = (*Client)(nil)
