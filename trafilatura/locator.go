// Package trafilatura locates article bodies with go-trafilatura for sites
// without a stable body selector.
package trafilatura

import (
	"strings"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// Ensure Locator implements newsparse.Locator at compile time.
var _ newsparse.Locator = (*Locator)(nil)

// Locator wraps go-trafilatura to find the main content of a page.
type Locator struct {
	opts trafilatura.Options
}

// NewLocator creates a new Locator. Images and links are kept so the
// extractor can emit them as blocks.
func NewLocator() *Locator {
	return &Locator{opts: trafilatura.Options{
		EnableFallback: true,
		IncludeImages:  true,
		IncludeLinks:   true,
	}}
}

// Locate returns the main content node of the page.
func (l *Locator) Locate(page string) (newsparse.Node, error) {
	if strings.TrimSpace(page) == "" {
		return nil, newsparse.Errorf(newsparse.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(page), l.opts)
	if err != nil {
		return nil, newsparse.Errorf(newsparse.ENOTFOUND, "main content not found: %v", err)
	}
	if result.ContentNode == nil {
		return nil, newsparse.Errorf(newsparse.ENOTFOUND, "main content not found")
	}
	return goquery.WrapNode(result.ContentNode), nil
}
