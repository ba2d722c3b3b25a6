package newsparse

// SeenFilter remembers article links so the same article is not processed
// twice, whether it appears in several feeds or in consecutive runs.
type SeenFilter interface {
	// TestAndAdd reports whether link was already seen and marks it seen.
	// False positives are allowed; false negatives are not.
	TestAndAdd(link string) bool
}
