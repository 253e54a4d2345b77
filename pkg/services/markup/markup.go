// Package markup removes HTML markup from free text fields of the source.
package markup

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// StripFunc turns a possibly marked-up text into plain text.
type StripFunc func(string) string

// StripTags removes all tags and decodes entities, keeping the text content.
// Text without markup is returned unchanged.
func StripTags(text string) string {
	if !strings.ContainsAny(text, "<&") {
		return text
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return doc.Text()
}

// Keep is a StripFunc that leaves text untouched.
func Keep(text string) string {
	return text
}
