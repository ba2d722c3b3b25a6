// Package gofeed implements newsparse.FeedParser for RSS and Atom feeds
// using github.com/mmcdole/gofeed.
package gofeed

import (
	"strings"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/mmcdole/gofeed"
)

// Ensure Parser implements newsparse.FeedParser at compile time.
var _ newsparse.FeedParser = (*Parser)(nil)

// Parser parses RSS and Atom feeds.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse returns the feed items in feed order. Items without a link are
// skipped since their article cannot be fetched or identified.
func (p *Parser) Parse(data string) ([]*newsparse.FeedItem, error) {
	if strings.TrimSpace(data) == "" {
		return nil, newsparse.Errorf(newsparse.EINVALID, "empty feed")
	}

	feed, err := gofeed.NewParser().ParseString(data)
	if err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "failed to parse feed: %v", err)
	}

	items := make([]*newsparse.FeedItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		link := strings.TrimSpace(item.Link)
		if link == "" {
			continue
		}
		items = append(items, &newsparse.FeedItem{
			Title:       strings.TrimSpace(item.Title),
			Description: item.Description,
			Link:        link,
			Image:       image(item),
			PublishedAt: published(item),
			Content:     content(item),
		})
	}
	return items, nil
}

// image returns the item image, preferring an image enclosure.
func image(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		if enc.Type == "" || strings.HasPrefix(enc.Type, "image/") {
			return enc.URL
		}
	}
	if item.Image != nil {
		return item.Image.URL
	}
	return ""
}

func published(item *gofeed.Item) time.Time {
	switch {
	case item.PublishedParsed != nil:
		return item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		return item.UpdatedParsed.UTC()
	}
	return time.Time{}
}

// content returns the full article HTML embedded in the item: the Yandex
// turbo:content or yandex:full-text extension, or content:encoded.
func content(item *gofeed.Item) string {
	if v := extension(item, "turbo", "content"); v != "" {
		return v
	}
	if v := extension(item, "yandex", "full-text"); v != "" {
		return v
	}
	return item.Content
}

func extension(item *gofeed.Item, prefix, name string) string {
	for _, e := range item.Extensions[prefix][name] {
		if strings.TrimSpace(e.Value) != "" {
			return e.Value
		}
	}
	return ""
}
