// Package bloom provides article link deduplication using Bloom filters.
package bloom

import (
	"io"
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/fwojciec/newsparse"
)

// Ensure Filter implements newsparse.SeenFilter at compile time.
var _ newsparse.SeenFilter = (*Filter)(nil)

// Filter wraps a Bloom filter for link deduplication.
// It is safe for concurrent use.
type Filter struct {
	mu sync.Mutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// ReadFilter restores a filter saved with WriteTo.
func ReadFilter(r io.Reader) (*Filter, error) {
	f := &bloom.BloomFilter{}
	if _, err := f.ReadFrom(r); err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "failed to read seen filter: %v", err)
	}
	return &Filter{f: f}, nil
}

// Add adds a link to the filter.
func (f *Filter) Add(link string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(link)
}

// Test returns true if the link might be in the filter.
// False positives are possible; false negatives are not.
func (f *Filter) Test(link string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestString(link)
}

// TestAndAdd reports whether the link might be in the filter and adds it.
func (f *Filter) TestAndAdd(link string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.TestAndAddString(link)
}

// EstimatedCount returns the approximate number of items in the filter.
func (f *Filter) EstimatedCount() uint {
	f.mu.Lock()
	defer f.mu.Unlock()
	return uint(f.f.ApproximatedSize())
}

// WriteTo saves the filter so a later run can skip the same articles.
func (f *Filter) WriteTo(w io.Writer) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.f.WriteTo(w)
}
