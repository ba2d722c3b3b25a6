package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/newsparse"
)

// Ensure LoggingFeedParser implements newsparse.FeedParser.
var _ newsparse.FeedParser = (*LoggingFeedParser)(nil)

// LoggingFeedParser wraps a FeedParser with logging.
type LoggingFeedParser struct {
	next   newsparse.FeedParser
	logger *slog.Logger
}

// NewLoggingFeedParser creates a new LoggingFeedParser.
func NewLoggingFeedParser(next newsparse.FeedParser, logger *slog.Logger) *LoggingFeedParser {
	return &LoggingFeedParser{next: next, logger: logger}
}

// Parse delegates to the wrapped parser and logs the item count.
func (p *LoggingFeedParser) Parse(data string) (items []*newsparse.FeedItem, err error) {
	defer func(begin time.Time) {
		p.logger.Info("parse feed",
			"bytes", len(data),
			"count", len(items),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Parse(data)
}
