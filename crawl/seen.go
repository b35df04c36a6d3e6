package crawl

import (
	"sync"

	"github.com/fwojciec/gradscout/bloom"
)

// SeenSet remembers candidate URLs using a Bloom filter.
// It is safe for concurrent use by multiple goroutines.
type SeenSet struct {
	mu   sync.Mutex
	seen *bloom.Filter
}

// NewSeenSet creates a SeenSet sized for n expected URLs
// with the given false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		seen: bloom.NewFilter(n, fpRate),
	}
}

// Add records the URL and reports whether it was new. URLs are compared
// as given, so URLs differing only by fragment are distinct.
func (s *SeenSet) Add(rawURL string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return !s.seen.TestAndAdd(rawURL)
}
