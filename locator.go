package newsparse

// Locator finds the article body in a fetched page.
type Locator interface {
	// Locate parses html and returns the article body node.
	// Returns ENOTFOUND if the page has no recognizable body.
	Locate(html string) (Node, error)
}
