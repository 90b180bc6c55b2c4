// Package raster prepares document pages for the vision stage and probes
// whether a PDF is readable at all.
package raster

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"payproof/internal/port"
)

// PDF implements port.PageRasterizer by trimming the source document to its
// first page. Multimodal endpoints accept PDF attachments directly, so the
// page is shipped as a single-page PDF rather than a rendered bitmap.
type PDF struct{}

// NewPDF creates a first-page extractor.
func NewPDF() *PDF {
	return &PDF{}
}

// Probe checks that the file parses as a PDF and returns its page count.
// A zero-page or unparseable file is the one condition the pipeline treats
// as fatal.
func (p *PDF) Probe(path string) (int, error) {
	count, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading PDF %s: %w", filepath.Base(path), err)
	}
	if count == 0 {
		return 0, fmt.Errorf("PDF %s has no pages", filepath.Base(path))
	}
	return count, nil
}

// RenderFirstPage extracts page one into a standalone optimized PDF and
// returns its bytes. The dpi argument is ignored: no rasterization happens,
// the attachment keeps the vector content.
func (p *PDF) RenderFirstPage(ctx context.Context, path string, dpi int) (*port.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "payproof-page-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed

	trimmed := filepath.Join(tmpDir, "page1.pdf")
	if err := api.TrimFile(path, trimmed, []string{"1"}, cfg); err != nil {
		return nil, fmt.Errorf("trimming to first page: %w", err)
	}

	optimized := filepath.Join(tmpDir, "page1-opt.pdf")
	if err := api.OptimizeFile(trimmed, optimized, cfg); err != nil {
		// Optimization is best-effort; fall back to the trimmed page.
		optimized = trimmed
	}

	data, err := os.ReadFile(optimized)
	if err != nil {
		return nil, fmt.Errorf("reading first page: %w", err)
	}

	return &port.Page{Data: data, MediaType: "application/pdf"}, nil
}
