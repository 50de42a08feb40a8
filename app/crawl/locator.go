package crawl

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
)

// Locator finds the primary content container of a listing page by trying an
// ordered chain of selectors and returning the first match, with the document
// body as last resort. Errors only when the document has no body at all.
type Locator struct {
	selectors []string
}

func NewLocator(selectors []string) *Locator {
	return &Locator{selectors: selectors}
}

func (l *Locator) Run(doc *goquery.Document) (*goquery.Selection, error) {
	for _, selector := range l.selectors {
		selection := doc.Find(selector)
		if selection.Length() > 0 {
			return selection.First(), nil
		}
	}

	body := doc.Find("body")
	if body.Length() > 0 {
		return body.First(), nil
	}

	return nil, fmt.Errorf("no content container matched any of %d selectors", len(l.selectors))
}
