package models

// SourceType - content variants the pipeline knows how to publish
type SourceType string

const (
	SourceTypeArticle  SourceType = "article"
	SourceTypePost     SourceType = "post"
	SourceTypeImageSet SourceType = "image_set"
)

// ContentItem - one publishable item from the content store.
// The pipeline never mutates it; fields not used by a variant stay empty.
type ContentItem struct {
	ID         string     `json:"id"`
	SourceType SourceType `json:"source_type"`

	// article / post
	Title          string `json:"title,omitempty"`
	Markdown       string `json:"markdown,omitempty"` // article body
	HTML           string `json:"html,omitempty"`     // post body
	Keyword        string `json:"keyword,omitempty"`  // primary search term
	KeywordContext string `json:"keyword_context,omitempty"`

	// image_set
	Name string `json:"name,omitempty"`

	// post used_images / image_set members
	Images []ImageRef `json:"images,omitempty"`
}

// ImageRef - a single image bound to a ContentItem. Either RemoteURL or
// EmbeddedData (base64 data URI) is meaningful, never both.
type ImageRef struct {
	ID             string `json:"id"`
	RemoteURL      string `json:"remote_url,omitempty"`
	EmbeddedData   string `json:"embedded_data,omitempty"`
	Name           string `json:"name,omitempty"` // user-assigned
	Description    string `json:"description,omitempty"`
	Author         string `json:"author,omitempty"`
	SourcePlatform string `json:"source_platform,omitempty"`
}

// IsEmbedded reports whether the image carries inline base64 data.
func (r ImageRef) IsEmbedded() bool {
	return r.EmbeddedData != ""
}

// FormattedContent - normalized output of a content formatter.
type FormattedContent struct {
	Title   string
	Content string
	Images  []ImageRef
}
