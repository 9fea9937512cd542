package repositories

import (
	"context"
	"io"
)

// AttachmentStore keeps uploaded voucher scans and returns the URL they are served from.
type AttachmentStore interface {
	Save(ctx context.Context, name string, content io.Reader) (string, error)

	// Delete removes a stored scan. A missing file is not an error.
	Delete(ctx context.Context, name string) error
}
