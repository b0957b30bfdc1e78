// Package bloom remembers product URLs already visited during a scrape.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter wraps a Bloom filter for URL deduplication.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Visit records url and reports whether it was new. A product linked from
// several categories is therefore visited once.
func (f *Filter) Visit(url string) bool {
	return !f.f.TestAndAddString(url)
}
