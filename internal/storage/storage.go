package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/google/uuid"
)

// ReceiptStorage persists uploaded bill photos. Save returns an opaque
// reference stored on the expense record; Remove undoes a Save when the
// record insert that should reference it fails.
type ReceiptStorage interface {
	Save(ctx context.Context, originalName string, r io.Reader) (ref string, err error)
	Remove(ctx context.Context, ref string) error
}

// objectKey builds a date-bucketed unique key, keeping the original
// extension so the file stays openable after download.
func objectKey(originalName string) string {
	d := time.Now()
	return fmt.Sprintf("receipts/%d/%02d/%02d/%s%s",
		d.Year(), d.Month(), d.Day(), uuid.NewString(), path.Ext(originalName))
}
