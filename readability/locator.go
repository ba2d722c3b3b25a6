// Package readability locates article bodies with go-readability for sites
// without a stable body selector.
package readability

import (
	"strings"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/go-shiori/go-readability"
)

// Ensure Locator implements newsparse.Locator at compile time.
var _ newsparse.Locator = (*Locator)(nil)

// Locator wraps go-readability to find the main content of a page.
type Locator struct{}

// NewLocator creates a new Locator.
func NewLocator() *Locator {
	return &Locator{}
}

// Locate returns the readable content node of the page.
func (l *Locator) Locate(page string) (newsparse.Node, error) {
	if strings.TrimSpace(page) == "" {
		return nil, newsparse.Errorf(newsparse.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(page), nil)
	if err != nil {
		return nil, newsparse.Errorf(newsparse.ENOTFOUND, "readable content not found: %v", err)
	}
	if article.Node == nil {
		return nil, newsparse.Errorf(newsparse.ENOTFOUND, "readable content not found")
	}
	return goquery.WrapNode(article.Node), nil
}
