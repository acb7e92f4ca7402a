package util

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	strictPolicy = bluemonday.StrictPolicy()
	notePolicy   = newNoteHTMLPolicy()
	markdown     = goldmark.New(goldmark.WithExtensions(extension.GFM))
)

func newNoteHTMLPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.RequireNoFollowOnLinks(true)
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	return policy
}

// StripTags removes any HTML from user input and trims surrounding space.
// Entities are decoded again so plain text such as "Tom & Jerry" survives unchanged.
func StripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// RenderMarkdown renders note markdown to sanitised HTML
func RenderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return notePolicy.Sanitize(buf.String()), nil
}
