package use_cases

import (
	"context"
	"errors"
	"strings"
	"testing"

	"seo-publisher/domain/models"
)

func TestUploadUsesProvidedData(t *testing.T) {
	api := newFakeWordPressAPI()
	fetcher := newFakeFetcher()
	up := NewMediaUploader(api, fetcher)

	image := models.ImageRef{ID: "1", Name: "My Shot"}
	item := &models.ContentItem{Title: "Post", Keyword: "coffee"}

	asset, err := up.Upload(context.Background(), image, []byte("\x89PNG\r\n\x1a\nrest"), item, 0)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if asset.ID == 0 || asset.URL == "" {
		t.Errorf("asset = %+v, want id and url", asset)
	}
	if len(fetcher.fetched) != 0 {
		t.Errorf("fetcher called for provided data: %v", fetcher.fetched)
	}

	req := api.uploads[0]
	if req.Filename != "my-shot.png" {
		t.Errorf("filename = %q, want my-shot.png", req.Filename)
	}
	if req.AltText != "coffee" {
		t.Errorf("alt text = %q, want keyword", req.AltText)
	}
}

func TestUploadFetchesRemote(t *testing.T) {
	api := newFakeWordPressAPI()
	fetcher := newFakeFetcher()
	fetcher.data["https://i.example.com/x.jpg"] = []byte("jpeg-bytes")
	up := NewMediaUploader(api, fetcher)

	image := models.ImageRef{RemoteURL: "https://i.example.com/x.jpg", Description: "a cat"}

	_, err := up.Upload(context.Background(), image, nil, nil, 2)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if len(fetcher.fetched) != 1 {
		t.Fatalf("fetch calls = %d, want 1", len(fetcher.fetched))
	}
	if api.uploads[0].Title != "a cat" {
		t.Errorf("title = %q, want image description", api.uploads[0].Title)
	}
}

func TestUploadFetchFailure(t *testing.T) {
	api := newFakeWordPressAPI()
	fetcher := newFakeFetcher()
	fetcher.err = errors.New("HTTP 404")
	up := NewMediaUploader(api, fetcher)

	_, err := up.Upload(context.Background(), models.ImageRef{RemoteURL: "https://gone.example.com/x.jpg"}, nil, nil, 0)

	var upErr *models.UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("error type = %T, want *models.UploadError", err)
	}
	if api.uploadCalls != 0 {
		t.Error("upload attempted after fetch failure")
	}
}

func TestUploadNoSource(t *testing.T) {
	up := NewMediaUploader(newFakeWordPressAPI(), newFakeFetcher())

	_, err := up.Upload(context.Background(), models.ImageRef{Name: "empty"}, nil, nil, 0)

	var upErr *models.UploadError
	if !errors.As(err, &upErr) {
		t.Fatalf("error type = %T, want *models.UploadError", err)
	}
}

func TestUploadAttributionCaption(t *testing.T) {
	api := newFakeWordPressAPI()
	up := NewMediaUploader(api, newFakeFetcher())

	image := models.ImageRef{Name: "shot", Author: "Jane Doe", SourcePlatform: "unsplash"}
	_, err := up.Upload(context.Background(), image, []byte("data"), nil, 0)
	if err != nil {
		t.Fatalf("Upload() error: %v", err)
	}
	if got := api.uploads[0].Caption; !strings.Contains(got, "Jane Doe") || !strings.Contains(got, "Unsplash") {
		t.Errorf("caption = %q, want author and provider", got)
	}
}

func TestMediaTitle(t *testing.T) {
	item := &models.ContentItem{Title: "Ten Rooftop Bars"}

	tests := []struct {
		name  string
		image models.ImageRef
		item  *models.ContentItem
		index int
		want  string
	}{
		{"user name wins", models.ImageRef{Name: "Skyline", Description: "d"}, item, 0, "Skyline"},
		{"item title with position", models.ImageRef{}, item, 2, "Ten Rooftop Bars 3"},
		{"description fallback", models.ImageRef{Description: "a rooftop at dusk"}, nil, 0, "a rooftop at dusk"},
		{"last resort", models.ImageRef{}, nil, 4, "image 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mediaTitle(tt.image, tt.item, tt.index); got != tt.want {
				t.Errorf("mediaTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMakeFilename(t *testing.T) {
	tests := []struct {
		title       string
		contentType string
		want        string
	}{
		{"Top 10: Café Life!! 2024", "image/jpeg", "top-10-cafe-life-2024.jpg"},
		{"hello world", "image/png", "hello-world.png"},
		{"", "image/gif", "image.gif"},
		{"!!!", "image/webp", "image.webp"},
	}

	for _, tt := range tests {
		got := makeFilename(tt.title, tt.contentType)
		if got != tt.want {
			t.Errorf("makeFilename(%q, %q) = %q, want %q", tt.title, tt.contentType, got, tt.want)
		}
	}
}

func TestMakeFilenameCapsLength(t *testing.T) {
	long := strings.Repeat("word ", 40)
	got := makeFilename(long, "image/jpeg")

	base := strings.TrimSuffix(got, ".jpg")
	if len(base) > maxFilenameLen {
		t.Errorf("slug length = %d, want <= %d", len(base), maxFilenameLen)
	}
	if strings.HasSuffix(base, "-") {
		t.Errorf("slug %q ends with a dash", base)
	}
}

func TestAltTextFallback(t *testing.T) {
	tests := []struct {
		name  string
		image models.ImageRef
		item  *models.ContentItem
		want  string
	}{
		{"keyword first", models.ImageRef{Description: "d"}, &models.ContentItem{Keyword: "kw", KeywordContext: "ctx"}, "kw"},
		{"context first line", models.ImageRef{Description: "d"}, &models.ContentItem{KeywordContext: "line one\nline two"}, "line one"},
		{"image description", models.ImageRef{Description: "d"}, &models.ContentItem{}, "d"},
		{"nothing", models.ImageRef{}, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := altText(tt.image, tt.item); got != tt.want {
				t.Errorf("altText() = %q, want %q", got, tt.want)
			}
		})
	}
}
