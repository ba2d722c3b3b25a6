package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/newsparse"
)

// Ensure LoggingLocator implements newsparse.Locator.
var _ newsparse.Locator = (*LoggingLocator)(nil)

// LoggingLocator wraps a Locator with debug logging.
type LoggingLocator struct {
	next   newsparse.Locator
	logger *slog.Logger
}

// NewLoggingLocator creates a new LoggingLocator.
func NewLoggingLocator(next newsparse.Locator, logger *slog.Logger) *LoggingLocator {
	return &LoggingLocator{next: next, logger: logger}
}

// Locate delegates to the wrapped locator and logs the located body.
func (l *LoggingLocator) Locate(html string) (n newsparse.Node, err error) {
	defer func(begin time.Time) {
		tag := ""
		if n != nil {
			tag = n.Tag()
		}
		l.logger.Debug("locate body",
			"bytes", len(html),
			"tag", tag,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.Locate(html)
}
