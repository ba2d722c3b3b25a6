package newsparse

import "time"

// FeedItem is one entry of a site's news feed.
type FeedItem struct {
	Title       string
	Description string
	Link        string
	Image       string
	PublishedAt time.Time

	// Content holds the full article HTML for feeds that embed it,
	// e.g. Yandex Turbo feeds.
	Content string
}

// FeedParser parses an RSS or Atom document into feed items.
type FeedParser interface {
	Parse(data string) ([]*FeedItem, error)
}
