package pages

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// stripTags returns the trimmed text content of an HTML fragment.
func stripTags(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}
