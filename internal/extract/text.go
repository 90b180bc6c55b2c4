package extract

import (
	"context"
	"log"
	"strings"

	"payproof/internal/fields"
	"payproof/internal/paydoc"
	"payproof/internal/port"
)

// MethodText tags a text result that came back from the engine.
const MethodText = "text"

// TextResult is the outcome of the text extraction stage.
type TextResult struct {
	FullText string
	Pages    []port.PageText
	Method   string
	Fields   fields.Fields
}

// TextAdapter wraps the external raw-text extraction engine.
type TextAdapter struct {
	engine port.TextEngine
}

// NewTextAdapter creates a TextAdapter over the given engine.
func NewTextAdapter(engine port.TextEngine) *TextAdapter {
	return &TextAdapter{engine: engine}
}

// Extract concatenates all pages' text with newline separators and runs the
// field pattern matcher over the whole blob. On engine failure it returns an
// empty result tagged "failed" rather than an error.
func (a *TextAdapter) Extract(ctx context.Context, path string, docType paydoc.DocType) *TextResult {
	pages, err := a.engine.ReadText(ctx, path)
	if err != nil {
		log.Printf("extract.TextAdapter: text extraction failed: %v", err)
		return &TextResult{Method: MethodFailed}
	}

	var b strings.Builder
	for _, p := range pages {
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
	fullText := b.String()

	return &TextResult{
		FullText: fullText,
		Pages:    pages,
		Method:   MethodText,
		Fields:   fields.Extract(fullText, docType),
	}
}
