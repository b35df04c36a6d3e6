package mock

import (
	"context"

	"github.com/fwojciec/gradscout"
)

var _ gradscout.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of gradscout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) *gradscout.FetchResult
}

func (f *Fetcher) Fetch(ctx context.Context, url string) *gradscout.FetchResult {
	return f.FetchFn(ctx, url)
}

var _ gradscout.DomainResolver = (*DomainResolver)(nil)

// DomainResolver is a mock implementation of gradscout.DomainResolver.
type DomainResolver struct {
	DomainFn func(rawURL string) string
}

func (r *DomainResolver) Domain(rawURL string) string {
	return r.DomainFn(rawURL)
}
