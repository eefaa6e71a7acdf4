package delivery

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdRenderer    goldmark.Markdown
	htmlSanitizer *bluemonday.Policy
)

func init() {
	mdRenderer = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	htmlSanitizer = bluemonday.UGCPolicy()
}

// renderDescription converts a business description written in markdown to
// sanitized HTML. Returns "" for empty input.
func renderDescription(src string) template.HTML {
	if src == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(src), &buf); err != nil {
		return template.HTML(htmlSanitizer.Sanitize(src))
	}

	return template.HTML(htmlSanitizer.Sanitize(buf.String()))
}
