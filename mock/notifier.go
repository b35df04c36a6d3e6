package mock

import (
	"context"

	"github.com/fwojciec/gradscout"
)

// Compile-time interface verification.
var (
	_ gradscout.Notifier  = (*Notifier)(nil)
	_ gradscout.RowWriter = (*RowWriter)(nil)
)

// Notifier is a mock implementation of gradscout.Notifier.
type Notifier struct {
	NotifyFn func(ctx context.Context, digest *gradscout.Digest) error
}

func (n *Notifier) Notify(ctx context.Context, digest *gradscout.Digest) error {
	return n.NotifyFn(ctx, digest)
}

// RowWriter is a mock implementation of gradscout.RowWriter.
type RowWriter struct {
	WriteRowsFn func(ctx context.Context, rows []*gradscout.ResultRow) error
}

func (w *RowWriter) WriteRows(ctx context.Context, rows []*gradscout.ResultRow) error {
	return w.WriteRowsFn(ctx, rows)
}
