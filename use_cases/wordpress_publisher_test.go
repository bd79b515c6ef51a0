package use_cases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"seo-publisher/domain/models"
	"seo-publisher/domain/ports"
)

func wpChannel(cfg *models.WordPressConfig) *models.Channel {
	if cfg == nil {
		cfg = &models.WordPressConfig{
			Endpoint:    "https://blog.example.com",
			Username:    "editor",
			AppPassword: "xxxx yyyy",
		}
	}
	return &models.Channel{
		ID:        "ch-1",
		Name:      "Main Blog",
		Platform:  models.PlatformWordPress,
		WordPress: cfg,
	}
}

func wpPublisher(api *fakeWordPressAPI, fetcher *fakeFetcher) *WordPressPublisher {
	factory := ports.WordPressAPIFactory(func(*models.WordPressConfig) ports.WordPressAPI { return api })
	return NewWordPressPublisher(factory, fetcher)
}

func TestWordPressPublishConfigError(t *testing.T) {
	api := newFakeWordPressAPI()
	pub := wpPublisher(api, newFakeFetcher())

	channel := &models.Channel{Name: "broken", Platform: models.PlatformWordPress}
	item := &models.ContentItem{SourceType: models.SourceTypeArticle, Title: "T"}

	_, err := pub.Publish(context.Background(), item, channel)

	var cfgErr *models.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *models.ConfigError", err)
	}
	if len(api.posts) != 0 || api.listCalls != 0 || api.uploadCalls != 0 {
		t.Error("API reached despite invalid config")
	}
}

func TestWordPressPublishArticle(t *testing.T) {
	api := newFakeWordPressAPI()
	pub := wpPublisher(api, newFakeFetcher())

	item := &models.ContentItem{
		SourceType: models.SourceTypeArticle,
		Title:      "Hello World",
		Markdown:   "plain body",
	}

	dest, err := pub.Publish(context.Background(), item, wpChannel(nil))
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if dest.Status != models.PublishStatusSuccess {
		t.Errorf("status = %q, want success", dest.Status)
	}
	if dest.URL != "https://blog.example.com/?p=42" {
		t.Errorf("url = %q", dest.URL)
	}
	if !strings.Contains(dest.Log, `published "Hello World" to Main Blog (draft)`) {
		t.Errorf("log = %q", dest.Log)
	}
	if len(api.posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(api.posts))
	}
	if api.posts[0].Status != "draft" {
		t.Errorf("post status = %q, want default draft", api.posts[0].Status)
	}
	// no tags or categories configured, so no taxonomy round trips
	if api.listCalls != 0 {
		t.Errorf("listCalls = %d, want 0", api.listCalls)
	}
}

func TestWordPressTaxonomyResolutionErrorSkipsTaxonomy(t *testing.T) {
	api := newFakeWordPressAPI()
	api.listErr = errors.New("503 service unavailable")
	pub := wpPublisher(api, newFakeFetcher())

	cfg := &models.WordPressConfig{
		Endpoint:    "https://blog.example.com",
		Username:    "editor",
		AppPassword: "pw",
		Tags:        "golang, testing",
	}
	item := &models.ContentItem{SourceType: models.SourceTypeArticle, Title: "T", Markdown: "b"}

	dest, err := pub.Publish(context.Background(), item, wpChannel(cfg))
	if err != nil {
		t.Fatalf("resolution failure must not abort the publish: %v", err)
	}

	if dest.Status != models.PublishStatusSuccess {
		t.Errorf("status = %q, want success", dest.Status)
	}
	if !strings.Contains(dest.Log, "taxonomy skipped after resolution error") {
		t.Errorf("log = %q, want resolution skip note", dest.Log)
	}
	if !strings.Contains(dest.Log, "503 service unavailable") {
		t.Errorf("log = %q, want original error preserved", dest.Log)
	}
	if api.posts[0].HasTaxonomy() {
		t.Error("post carried taxonomy after a resolution failure")
	}
}

func TestWordPressCreateFallback(t *testing.T) {
	api := newFakeWordPressAPI()
	api.terms[models.TermTypeTags] = []models.Term{{ID: 9, Name: "golang"}}
	api.postErr = errors.New("invalid term id")
	api.fallbackOK = true
	pub := wpPublisher(api, newFakeFetcher())

	cfg := &models.WordPressConfig{
		Endpoint:    "https://blog.example.com",
		Username:    "editor",
		AppPassword: "pw",
		Tags:        "golang",
	}
	item := &models.ContentItem{SourceType: models.SourceTypeArticle, Title: "T", Markdown: "b"}

	dest, err := pub.Publish(context.Background(), item, wpChannel(cfg))
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if len(api.posts) != 2 {
		t.Fatalf("create calls = %d, want primary + fallback", len(api.posts))
	}
	if !api.posts[0].HasTaxonomy() {
		t.Error("primary call lost its taxonomy")
	}
	if api.posts[1].HasTaxonomy() {
		t.Error("fallback call still carries taxonomy")
	}
	if !strings.Contains(dest.Log, "taxonomy skipped after create error") {
		t.Errorf("log = %q, want create skip note", dest.Log)
	}
	if !strings.Contains(dest.Log, "invalid term id") {
		t.Errorf("log = %q, want original error preserved", dest.Log)
	}
}

func TestWordPressCreateDoubleFailure(t *testing.T) {
	api := newFakeWordPressAPI()
	api.terms[models.TermTypeTags] = []models.Term{{ID: 9, Name: "golang"}}
	api.postErr = errors.New("boom")
	pub := wpPublisher(api, newFakeFetcher())

	cfg := &models.WordPressConfig{
		Endpoint:    "https://blog.example.com",
		Username:    "editor",
		AppPassword: "pw",
		Tags:        "golang",
	}
	item := &models.ContentItem{SourceType: models.SourceTypeArticle, Title: "T", Markdown: "b"}

	_, err := pub.Publish(context.Background(), item, wpChannel(cfg))

	var pubErr *models.PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("error type = %T, want *models.PublishError", err)
	}
	if pubErr.Fallback == nil {
		t.Error("fallback error missing from double failure")
	}
	if len(api.posts) != 2 {
		t.Errorf("create calls = %d, want 2", len(api.posts))
	}
}

func TestWordPressCreateFailureWithoutTaxonomy(t *testing.T) {
	api := newFakeWordPressAPI()
	api.postErr = errors.New("boom")
	pub := wpPublisher(api, newFakeFetcher())

	item := &models.ContentItem{SourceType: models.SourceTypeArticle, Title: "T", Markdown: "b"}

	_, err := pub.Publish(context.Background(), item, wpChannel(nil))

	var pubErr *models.PublishError
	if !errors.As(err, &pubErr) {
		t.Fatalf("error type = %T, want *models.PublishError", err)
	}
	if pubErr.Fallback != nil {
		t.Error("fallback attempted without taxonomy to strip")
	}
	if len(api.posts) != 1 {
		t.Errorf("create calls = %d, want 1", len(api.posts))
	}
}

func TestWordPressInlineImageRewrite(t *testing.T) {
	api := newFakeWordPressAPI()
	pub := wpPublisher(api, newFakeFetcher())

	item := &models.ContentItem{
		SourceType: models.SourceTypePost,
		Title:      "With Image",
		HTML:       `<p>before</p><img src="data:image/png;base64,ZmFrZXBuZw==" data-image-id="img-1"/>`,
		Images:     []models.ImageRef{{ID: "img-1", Name: "inline shot"}},
	}

	_, err := pub.Publish(context.Background(), item, wpChannel(nil))
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if api.uploadCalls != 1 {
		t.Fatalf("upload calls = %d, want 1", api.uploadCalls)
	}
	content := api.posts[0].Content
	if strings.Contains(content, "data:image/png") {
		t.Errorf("data URI left in content:\n%s", content)
	}
	if !strings.Contains(content, "wp-content/uploads") {
		t.Errorf("src not rewritten to asset URL:\n%s", content)
	}
	if api.posts[0].FeaturedMedia == 0 {
		t.Error("featured media not set from uploaded image")
	}
	// the ImageRef name drives the upload metadata
	if api.uploads[0].Title != "inline shot" {
		t.Errorf("upload title = %q, want ImageRef name", api.uploads[0].Title)
	}
}

func TestWordPressSideloadFailureIsSwallowed(t *testing.T) {
	api := newFakeWordPressAPI()
	fetcher := newFakeFetcher()
	fetcher.err = errors.New("HTTP 404")
	pub := wpPublisher(api, fetcher)

	item := &models.ContentItem{
		SourceType: models.SourceTypePost,
		Title:      "Remote Image",
		HTML:       `<img src="https://i.example.com/hero.jpg"/>`,
	}

	dest, err := pub.Publish(context.Background(), item, wpChannel(nil))
	if err != nil {
		t.Fatalf("sideload failure must not abort the publish: %v", err)
	}

	if dest.Status != models.PublishStatusSuccess {
		t.Errorf("status = %q, want success", dest.Status)
	}
	if api.posts[0].FeaturedMedia != 0 {
		t.Error("featured media set despite failed sideload")
	}
	if !strings.Contains(api.posts[0].Content, "https://i.example.com/hero.jpg") {
		t.Errorf("remote src rewritten:\n%s", api.posts[0].Content)
	}
}

func TestWordPressImageSetPartialFailure(t *testing.T) {
	api := newFakeWordPressAPI()
	pub := wpPublisher(api, newFakeFetcher())

	item := &models.ContentItem{
		SourceType: models.SourceTypeImageSet,
		Name:       "Gallery",
		Images: []models.ImageRef{
			{ID: "1", RemoteURL: "https://i.example.com/1.jpg"},
			{ID: "2"}, // no data and no URL, upload fails
			{ID: "3", RemoteURL: "https://i.example.com/3.jpg"},
		},
	}

	dest, err := pub.Publish(context.Background(), item, wpChannel(nil))
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}

	if dest.Status != models.PublishStatusFailed {
		t.Errorf("status = %q, want failed with one bad image", dest.Status)
	}
	if len(dest.Details) != 3 {
		t.Fatalf("details = %d, want one per image", len(dest.Details))
	}
	failures := 0
	for _, d := range dest.Details {
		if d.Status == models.PublishStatusFailed {
			failures++
		} else if d.URL == "" {
			t.Error("successful detail missing its URL")
		}
	}
	if failures != 1 {
		t.Errorf("failed details = %d, want 1", failures)
	}
	if !strings.Contains(dest.Log, "uploaded 2/3 images") {
		t.Errorf("log = %q", dest.Log)
	}
	if dest.URL == "" {
		t.Error("destination URL missing despite successful uploads")
	}
}

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		name      string
		src       string
		wantOK    bool
		wantCT    string
		wantBytes string
	}{
		{"png", "data:image/png;base64,ZmFrZXBuZw==", true, "image/png", "fakepng"},
		{"not a data uri", "https://x.example.com/a.jpg", false, "", ""},
		{"missing payload", "data:image/png;base64", false, "", ""},
		{"not base64 encoded", "data:text/plain,hello", false, "", ""},
		{"bad base64", "data:image/png;base64,!!!", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, ct, ok := decodeDataURI(tt.src)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ct != tt.wantCT {
				t.Errorf("content type = %q, want %q", ct, tt.wantCT)
			}
			if string(data) != tt.wantBytes {
				t.Errorf("data = %q, want %q", data, tt.wantBytes)
			}
		})
	}
}
