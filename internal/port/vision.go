package port

import "context"

// Page is a rendered or extracted first page handed to the vision model.
type Page struct {
	Data      []byte
	MediaType string // e.g. "image/jpeg" or "application/pdf"
}

// CompletionRequest carries one instruction to the vision-capable model.
// Attachment may be nil when page rendering failed; the model then works from
// the instruction text alone.
type CompletionRequest struct {
	Instruction string
	Attachment  *Page
	Temperature float64
	MaxTokens   int
}

// VisionModel abstracts the external vision-capable language model service.
// Failures (timeout, quota, malformed response) are returned as errors
// distinguishable from success; rate limiting surfaces as *RateLimitError
// from the implementing package.
type VisionModel interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// PageRasterizer produces the first-page artifact for the vision model.
type PageRasterizer interface {
	RenderFirstPage(ctx context.Context, path string, dpi int) (*Page, error)
}
