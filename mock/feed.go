package mock

import "github.com/fwojciec/newsparse"

var _ newsparse.FeedParser = (*FeedParser)(nil)

// FeedParser is a mock implementation of newsparse.FeedParser.
type FeedParser struct {
	ParseFn func(data string) ([]*newsparse.FeedItem, error)
}

func (p *FeedParser) Parse(data string) ([]*newsparse.FeedItem, error) {
	return p.ParseFn(data)
}
