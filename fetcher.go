package newsparse

import "context"

// Fetcher retrieves feeds and article pages.
type Fetcher interface {
	// Fetch retrieves the URL and returns its body decoded to UTF-8.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
