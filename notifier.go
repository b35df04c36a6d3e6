package gradscout

import "context"

// RowWriter writes result rows to an output.
type RowWriter interface {
	WriteRows(ctx context.Context, rows []*ResultRow) error
}

// Digest describes a finished run to be delivered to a recipient.
type Digest struct {
	Subject  string
	FromName string

	// Rows is the number of result rows in the attachment.
	Rows int

	// AttachmentPath is the CSV file with the results.
	AttachmentPath string
}

// Notifier delivers run digests.
type Notifier interface {
	Notify(ctx context.Context, digest *Digest) error
}
