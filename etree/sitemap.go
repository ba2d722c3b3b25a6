// Package etree implements newsparse.FeedParser for Google News sitemaps
// using github.com/beevik/etree, for sites that publish no RSS feed.
package etree

import (
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/newsparse"
)

// Ensure SitemapParser implements newsparse.FeedParser at compile time.
var _ newsparse.FeedParser = (*SitemapParser)(nil)

// publicationLayouts are the W3C datetime forms allowed in news sitemaps.
var publicationLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
}

// SitemapParser parses a news sitemap <urlset> into feed items.
type SitemapParser struct{}

// NewSitemapParser creates a new SitemapParser.
func NewSitemapParser() *SitemapParser {
	return &SitemapParser{}
}

// Parse returns one item per <url> entry with a location, in document order.
func (p *SitemapParser) Parse(data string) ([]*newsparse.FeedItem, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(data); err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "parsing sitemap XML: %v", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "empty sitemap XML")
	}
	if root.Tag != "urlset" {
		return nil, newsparse.Errorf(newsparse.EINVALID, "unexpected sitemap root <%s>", root.Tag)
	}

	var items []*newsparse.FeedItem
	for _, urlEl := range root.SelectElements("url") {
		loc := text(urlEl.SelectElement("loc"))
		if loc == "" {
			continue
		}
		item := &newsparse.FeedItem{Link: loc}
		if news := urlEl.SelectElement("news"); news != nil {
			item.Title = text(news.SelectElement("title"))
			item.PublishedAt = parseDate(text(news.SelectElement("publication_date")))
		}
		if img := urlEl.SelectElement("image"); img != nil {
			item.Image = text(img.SelectElement("loc"))
		}
		if item.PublishedAt.IsZero() {
			item.PublishedAt = parseDate(text(urlEl.SelectElement("lastmod")))
		}
		items = append(items, item)
	}
	return items, nil
}

func text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

func parseDate(s string) time.Time {
	for _, layout := range publicationLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
