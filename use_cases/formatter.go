package use_cases

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"seo-publisher/domain/models"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(gmhtml.WithXHTML()),
	)
	sanitizer = newSanitizer()
)

// newSanitizer extends the UGC policy with what the publishing pipeline
// needs to survive sanitization: inline data-URI images, the image-id
// attribute linking inline images to their ImageRef, and inline styles on
// the keyword-context block.
func newSanitizer() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowDataURIImages()
	p.AllowAttrs("data-image-id").OnElements("img")
	p.AllowAttrs("style").OnElements("div", "span", "p")
	return p
}

// keywordContextMarker labels the keyword reference block appended to
// formatted content. The UI and downstream checks match on this literal.
const keywordContextMarker = "关键词上下文参考"

// FormatContent normalizes one content item into {title, content, images}
// for a text destination. Pure and synchronous: no I/O, no randomness,
// never fails - missing fields degrade to empty strings.
func FormatContent(item *models.ContentItem) models.FormattedContent {
	switch item.SourceType {
	case models.SourceTypeArticle:
		return formatArticle(item)
	case models.SourceTypePost:
		return formatPost(item)
	default:
		// image sets pass through untransformed; only media paths consume them
		return models.FormattedContent{Title: item.Name, Images: item.Images}
	}
}

// formatArticle converts the Markdown body to HTML. Articles carry no
// bound media, so the images list stays empty.
func formatArticle(item *models.ContentItem) models.FormattedContent {
	var buf bytes.Buffer
	content := ""
	if err := markdownEngine.Convert([]byte(item.Markdown), &buf); err == nil {
		content = sanitizer.Sanitize(buf.String())
	} else {
		content = "<p>" + html.EscapeString(item.Markdown) + "</p>"
	}
	return models.FormattedContent{
		Title:   item.Title,
		Content: appendKeywordContext(content, item.KeywordContext),
	}
}

func formatPost(item *models.ContentItem) models.FormattedContent {
	content := sanitizer.Sanitize(item.HTML)
	return models.FormattedContent{
		Title:   item.Title,
		Content: appendKeywordContext(content, item.KeywordContext),
		Images:  item.Images,
	}
}

// appendKeywordContext appends the keyword reference block when the item
// carries keyword context. The container styling is fixed so the block
// stays visually distinct on every destination.
func appendKeywordContext(content, keywordContext string) string {
	ctx := strings.TrimSpace(keywordContext)
	if ctx == "" {
		return content
	}
	block := fmt.Sprintf(
		`<div style="margin-top:2em;padding:12px 16px;border:1px dashed #cbd5e1;border-radius:8px;background:#f8fafc;color:#475569;font-size:0.9em"><strong>%s</strong><p style="margin:8px 0 0;white-space:pre-wrap">%s</p></div>`,
		keywordContextMarker,
		html.EscapeString(ctx),
	)
	return content + "\n" + block
}
