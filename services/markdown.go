package services

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Readme files come from the single trusted admin, so raw HTML passes
// through unescaped like the writer intended.
var readmeRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithUnsafe()),
)

// RenderMarkdown converts an uploaded markdown document into the HTML stored
// in a project's full description.
func RenderMarkdown(source []byte) (string, error) {
	var buf bytes.Buffer
	if err := readmeRenderer.Convert(source, &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}
