package port

import (
	"context"

	"payproof/internal/paydoc"
)

// DocumentParser is the single entry point exposed by the extraction core.
// Parse never returns an error for recoverable conditions; catastrophic I/O
// failure yields an error-shaped record with confidence 0 instead.
type DocumentParser interface {
	Parse(ctx context.Context, path string, docType paydoc.DocType) *paydoc.Document
}
