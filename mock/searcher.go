package mock

import (
	"context"

	"github.com/fwojciec/gradscout"
)

var _ gradscout.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of gradscout.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, max int) ([]gradscout.Hit, error)
}

func (s *Searcher) Search(ctx context.Context, query string, max int) ([]gradscout.Hit, error) {
	return s.SearchFn(ctx, query, max)
}
