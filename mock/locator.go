package mock

import "github.com/fwojciec/newsparse"

var _ newsparse.Locator = (*Locator)(nil)

// Locator is a mock implementation of newsparse.Locator.
type Locator struct {
	LocateFn func(html string) (newsparse.Node, error)
}

func (l *Locator) Locate(html string) (newsparse.Node, error) {
	return l.LocateFn(html)
}
