package use_cases

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

// WordPressPublisher publishes articles, posts and image sets to a
// WordPress REST channel: formats content, uploads embedded images and
// rewrites their tags, picks a featured image, resolves taxonomy, and
// issues the create-content call with a one-shot no-taxonomy fallback.
type WordPressPublisher struct {
	apiFactory ports.WordPressAPIFactory
	fetcher    ports.ImageFetcherPort
	logger     *slog.Logger
}

func NewWordPressPublisher(apiFactory ports.WordPressAPIFactory, fetcher ports.ImageFetcherPort) *WordPressPublisher {
	return &WordPressPublisher{
		apiFactory: apiFactory,
		fetcher:    fetcher,
		logger:     slog.Default().With("component", "wordpress_publisher"),
	}
}

func (p *WordPressPublisher) Platform() models.Platform {
	return models.PlatformWordPress
}

func (p *WordPressPublisher) Supports(sourceType models.SourceType) bool {
	switch sourceType {
	case models.SourceTypeArticle, models.SourceTypePost, models.SourceTypeImageSet:
		return true
	}
	return false
}

func (p *WordPressPublisher) Publish(ctx context.Context, item *models.ContentItem, channel *models.Channel) (*models.PublishedDestination, error) {
	if err := channel.Validate(); err != nil {
		return nil, err
	}
	api := p.apiFactory(channel.WordPress)

	if item.SourceType == models.SourceTypeImageSet {
		return p.publishImageSet(ctx, api, item, channel)
	}
	return p.publishText(ctx, api, item, channel)
}

func (p *WordPressPublisher) publishText(ctx context.Context, api ports.WordPressAPI, item *models.ContentItem, channel *models.Channel) (*models.PublishedDestination, error) {
	cfg := channel.WordPress
	formatted := FormatContent(item)
	uploader := NewMediaUploader(api, p.fetcher)

	content, featuredID := p.processInlineImages(ctx, uploader, formatted, item)

	// tag and category resolution are two independent round trips
	resolver := NewTermResolver(api)
	var tagIDs, catIDs []int
	var tagErr, catErr error
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		tagIDs, tagErr = resolver.Resolve(ctx, cfg.Tags, models.TermTypeTags)
	}()
	go func() {
		defer wg.Done()
		catIDs, catErr = resolver.Resolve(ctx, cfg.Categories, models.TermTypeCategories)
	}()
	wg.Wait()

	var taxonomyNote string
	if tagErr != nil || catErr != nil {
		resolveErr := errors.Join(tagErr, catErr)
		taxonomyNote = fmt.Sprintf("taxonomy skipped after resolution error: %v", resolveErr)
		tagIDs, catIDs = nil, nil
		p.logger.WarnContext(ctx, "Term resolution failed, publishing without taxonomy",
			"channel", channel.Name,
			"error", resolveErr,
		)
	}

	req := models.PostRequest{
		Title:         formatted.Title,
		Content:       content,
		Status:        cfg.PostStatus(),
		Locale:        cfg.Locale,
		FeaturedMedia: featuredID,
		Tags:          tagIDs,
		Categories:    catIDs,
	}

	result, fallbackNote, err := p.createWithFallback(ctx, api, req)
	if err != nil {
		return nil, err
	}
	if fallbackNote != "" {
		taxonomyNote = fallbackNote
	}

	log := fmt.Sprintf("published %q to %s (%s)", formatted.Title, channel.Name, cfg.PostStatus())
	if taxonomyNote != "" {
		log += "; " + taxonomyNote
	}

	p.logger.InfoContext(ctx, "Content published",
		"channel", channel.Name,
		"post_id", result.ID,
		"featured_media", featuredID,
	)

	return &models.PublishedDestination{
		Platform:    models.PlatformWordPress,
		Status:      models.PublishStatusSuccess,
		Target:      channel.Name,
		URL:         result.URL,
		PublishedAt: time.Now(),
		Log:         log,
	}, nil
}

// createWithFallback submits the create-content request, retrying exactly
// once with taxonomy stripped. The fallback request is derived from the
// primary one; the returned note preserves the original error text.
func (p *WordPressPublisher) createWithFallback(ctx context.Context, api ports.WordPressAPI, req models.PostRequest) (*models.PostResult, string, error) {
	result, err := api.CreatePost(ctx, req)
	if err == nil {
		return result, "", nil
	}
	if !req.HasTaxonomy() {
		return nil, "", &models.PublishError{Primary: err}
	}

	result, retryErr := api.CreatePost(ctx, req.WithoutTaxonomy())
	if retryErr != nil {
		return nil, "", &models.PublishError{Primary: err, Fallback: retryErr}
	}
	return result, fmt.Sprintf("taxonomy skipped after create error: %v", err), nil
}

// processInlineImages scans the formatted HTML for <img> tags. Base64
// sources are uploaded and rewritten to the returned asset URL; remote
// sources stay in place, but the first image may be sideloaded purely to
// fill the featured-image slot. Returns the rewritten content and the
// featured media ID (0 when none).
func (p *WordPressPublisher) processInlineImages(ctx context.Context, uploader *MediaUploader, formatted models.FormattedContent, item *models.ContentItem) (string, int64) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(formatted.Content))
	if err != nil {
		p.logger.WarnContext(ctx, "Content scan failed, publishing unmodified", "error", err)
		return formatted.Content, 0
	}

	var featuredID int64
	index := 0
	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		src, _ := sel.Attr("src")
		idx := index
		index++

		ref := matchImageRef(sel, src, formatted.Images)

		if data, _, ok := decodeDataURI(src); ok {
			asset, upErr := uploader.Upload(ctx, ref, data, item, idx)
			if upErr != nil {
				p.logger.WarnContext(ctx, "Embedded image upload failed, tag left in place",
					"index", idx,
					"error", upErr,
				)
				return
			}
			sel.SetAttr("src", asset.URL)
			if featuredID == 0 {
				featuredID = asset.ID
			}
			return
		}

		// remote image: content stays untouched; sideload the first one
		// for the featured slot, best effort only
		if featuredID == 0 && idx == 0 && src != "" {
			asset, upErr := uploader.Upload(ctx, ref, nil, item, idx)
			if upErr != nil {
				p.logger.WarnContext(ctx, "Featured image sideload failed (non-critical)",
					"src", src,
					"error", upErr,
				)
				return
			}
			featuredID = asset.ID
		}
	})

	out, err := doc.Find("body").Html()
	if err != nil {
		return formatted.Content, featuredID
	}
	return out, featuredID
}

func (p *WordPressPublisher) publishImageSet(ctx context.Context, api ports.WordPressAPI, item *models.ContentItem, channel *models.Channel) (*models.PublishedDestination, error) {
	uploader := NewMediaUploader(api, p.fetcher)

	details := make([]models.PublishedDestinationDetail, 0, len(item.Images))
	var firstURL string
	failed := 0

	for i, image := range item.Images {
		var data []byte
		if image.IsEmbedded() {
			if d, _, ok := decodeDataURI(image.EmbeddedData); ok {
				data = d
			}
		}

		asset, err := uploader.Upload(ctx, image, data, item, i)
		if err != nil {
			failed++
			details = append(details, models.PublishedDestinationDetail{
				Status: models.PublishStatusFailed,
				Log:    err.Error(),
			})
			continue
		}
		if firstURL == "" {
			firstURL = asset.URL
		}
		details = append(details, models.PublishedDestinationDetail{
			Status: models.PublishStatusSuccess,
			Log:    fmt.Sprintf("uploaded %s", asset.URL),
			URL:    asset.URL,
		})
	}

	status := models.PublishStatusSuccess
	if failed > 0 {
		status = models.PublishStatusFailed
	}

	return &models.PublishedDestination{
		Platform:    models.PlatformWordPress,
		Status:      status,
		Target:      channel.Name,
		URL:         firstURL,
		PublishedAt: time.Now(),
		Log:         fmt.Sprintf("uploaded %d/%d images to %s media library", len(item.Images)-failed, len(item.Images), channel.Name),
		Details:     details,
	}, nil
}

// matchImageRef links an inline <img> back to its ImageRef: the embedded
// id attribute first, then a URL match, then a synthesized placeholder so
// a publish never aborts over missing image metadata. Two images sharing
// a URL resolve to the same ref.
func matchImageRef(sel *goquery.Selection, src string, known []models.ImageRef) models.ImageRef {
	if id, ok := sel.Attr("data-image-id"); ok && id != "" {
		for _, ref := range known {
			if ref.ID == id {
				return ref
			}
		}
	}
	for _, ref := range known {
		if ref.RemoteURL != "" && ref.RemoteURL == src {
			return ref
		}
	}
	if strings.HasPrefix(src, "data:") {
		return models.ImageRef{}
	}
	return models.ImageRef{RemoteURL: src}
}

// decodeDataURI decodes a base64 data URI into raw bytes and a content
// type. Returns ok=false for anything that is not a data URI.
func decodeDataURI(src string) ([]byte, string, bool) {
	if !strings.HasPrefix(src, "data:") {
		return nil, "", false
	}
	meta, payload, found := strings.Cut(src[len("data:"):], ",")
	if !found {
		return nil, "", false
	}
	contentType, _, _ := strings.Cut(meta, ";")
	if !strings.Contains(meta, "base64") {
		return nil, "", false
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", false
	}
	return data, contentType, true
}

// Verify interface implementation
var _ ports.ChannelPublisherPort = (*WordPressPublisher)(nil)
