// Package vision merges the heuristic extraction results with a multimodal
// model pass over the document's first page. A failed enhancement returns an
// error so the caller can fall back to the heuristic-only record.
package vision

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"payproof/internal/config"
	"payproof/internal/extract"
	"payproof/internal/paydoc"
	"payproof/internal/port"
)

const (
	defaultTemperature = 0.1
	defaultMaxTokens   = 3000
	defaultDPI         = 200

	// maxTextContext bounds how much raw page text is embedded in the prompt.
	maxTextContext = 4000
)

// Enhancer runs the model-assisted extraction stage.
type Enhancer struct {
	model       port.VisionModel
	raster      port.PageRasterizer
	temperature float64
	maxTokens   int
	dpi         int
}

// NewEnhancer creates an Enhancer from a vision config. The rasterizer may be
// nil, in which case the prompt is sent without a page attachment.
func NewEnhancer(model port.VisionModel, raster port.PageRasterizer, cfg *config.VisionConfig) *Enhancer {
	e := &Enhancer{
		model:       model,
		raster:      raster,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		dpi:         cfg.DPI,
	}
	if e.temperature == 0 {
		e.temperature = defaultTemperature
	}
	if e.maxTokens == 0 {
		e.maxTokens = defaultMaxTokens
	}
	if e.dpi == 0 {
		e.dpi = defaultDPI
	}
	return e
}

// Enhance sends the first page plus both adapters' partial results to the
// model and decodes the returned JSON into a document record. Any failure,
// from rendering through decoding, is returned to the caller; the page
// attachment alone is best-effort and degrades to a text-only prompt.
func (e *Enhancer) Enhance(ctx context.Context, path string, docType paydoc.DocType, tables *extract.TableResult, text *extract.TextResult) (*paydoc.Document, error) {
	prompt := BuildPrompt(docType, tableContext(tables), textContext(text))

	req := port.CompletionRequest{
		Instruction: prompt,
		Temperature: e.temperature,
		MaxTokens:   e.maxTokens,
	}

	if e.raster != nil {
		page, err := e.raster.RenderFirstPage(ctx, path, e.dpi)
		if err != nil {
			log.Printf("vision.Enhancer: first page render failed, sending text-only prompt: %v", err)
		} else {
			req.Attachment = page
		}
	}

	raw, err := e.model.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("vision completion: %w", err)
	}

	doc, err := decodeDocument(raw)
	if err != nil {
		return nil, err
	}

	if doc.DocType == "" {
		doc.DocType = docType
	}
	doc.SetMeta(paydoc.MetaVisionUsed, true)
	doc.SetMeta(paydoc.MetaTablesFound, len(tables.Tables))
	doc.SetMeta(paydoc.MetaTextLength, len(text.FullText))
	return doc, nil
}

// decodeDocument carves the JSON object out of the model's reply, tolerating
// prose or markdown fences around it, and unmarshals it.
func decodeDocument(raw string) (*paydoc.Document, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON object in model response: %s", truncate(raw, 200))
	}

	var doc paydoc.Document
	if err := json.Unmarshal([]byte(raw[start:end+1]), &doc); err != nil {
		return nil, fmt.Errorf("decoding model JSON: %w (raw: %s)", err, truncate(raw, 500))
	}
	return &doc, nil
}

func tableContext(tables *extract.TableResult) string {
	if tables == nil || tables.Method == extract.MethodFailed {
		return "(table extraction failed)"
	}
	hints, err := json.MarshalIndent(tables.Fields, "", "  ")
	if err != nil {
		return "(table extraction failed)"
	}
	return fmt.Sprintf("%d table(s) detected via %s strategy. Heuristic fields:\n%s", len(tables.Tables), tables.Method, hints)
}

func textContext(text *extract.TextResult) string {
	if text == nil || text.Method == extract.MethodFailed {
		return "(text extraction failed)"
	}
	hints, err := json.MarshalIndent(text.Fields, "", "  ")
	if err != nil {
		return "(text extraction failed)"
	}
	return fmt.Sprintf("Heuristic fields:\n%s\n\nPage text excerpt:\n%s", hints, truncate(text.FullText, maxTextContext))
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
