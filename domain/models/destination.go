package models

import "time"

// Publish outcome statuses (also used per image in Details).
const (
	PublishStatusSuccess = "success"
	PublishStatusFailed  = "failed"
)

// PublishedDestination - outcome of one publish attempt. Appended to the
// content item's publication history; history entries are never rewritten.
type PublishedDestination struct {
	Platform    Platform                     `json:"platform"`
	Status      string                       `json:"status"`
	Target      string                       `json:"target"` // channel name
	URL         string                       `json:"url,omitempty"`
	PublishedAt time.Time                    `json:"published_at"`
	Log         string                       `json:"log"`
	Details     []PublishedDestinationDetail `json:"details,omitempty"`
}

// PublishedDestinationDetail - per-image outcome within an image-set
// publish. Partial success stays visible here even when the overall
// status is failed.
type PublishedDestinationDetail struct {
	Status string `json:"status"`
	Log    string `json:"log"`
	URL    string `json:"url,omitempty"`
}

// Term - a taxonomy term as the target platform reports it. Only valid
// for the duration of one resolution call, never cached across publishes.
type Term struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TermType selects which taxonomy a resolution call works against.
type TermType string

const (
	TermTypeTags       TermType = "tags"
	TermTypeCategories TermType = "categories"
)

// MediaAsset - a persisted media object on the target platform
type MediaAsset struct {
	ID  int64  `json:"id"`
	URL string `json:"url"`
}

// MediaUploadRequest - outgoing media upload, fully derived from an
// ImageRef plus its surrounding item before any network call.
type MediaUploadRequest struct {
	Filename    string
	Data        []byte
	ContentType string
	Title       string
	AltText     string
	Caption     string
}

// PostRequest - outgoing create-content call
type PostRequest struct {
	Title         string `json:"title"`
	Content       string `json:"content"`
	Status        string `json:"status"`
	Locale        string `json:"lang,omitempty"`
	FeaturedMedia int64  `json:"featured_media,omitempty"`
	Tags          []int  `json:"tags,omitempty"`
	Categories    []int  `json:"categories,omitempty"`
}

// WithoutTaxonomy returns a copy of the request with tags and categories
// stripped, for the one-shot fallback attempt.
func (r PostRequest) WithoutTaxonomy() PostRequest {
	r.Tags = nil
	r.Categories = nil
	return r
}

// HasTaxonomy reports whether the request carries any taxonomy IDs.
func (r PostRequest) HasTaxonomy() bool {
	return len(r.Tags) > 0 || len(r.Categories) > 0
}

// PostResult - response of a successful create-content call
type PostResult struct {
	ID  int64  `json:"id"`
	URL string `json:"link"`
}
