// Package pipeline sequences the extraction stages into the single parse
// entry point. Only an unreadable input file is fatal; every later stage
// degrades, ending at worst with a heuristic-only record.
package pipeline

import (
	"context"
	"log"

	"payproof/internal/categorize"
	"payproof/internal/extract"
	"payproof/internal/fields"
	"payproof/internal/paydoc"
	"payproof/internal/score"
)

// FallbackConfidence is the fixed baseline for records built without the
// vision stage. Heuristic extraction alone recovers too little structure for
// the completeness score to be meaningful, so the baseline stands in for it.
const FallbackConfidence = 0.6

// Prober reports whether a file is a processable document.
type Prober interface {
	Probe(path string) (int, error)
}

// TableExtractor is the table extraction stage.
type TableExtractor interface {
	Extract(ctx context.Context, path string, docType paydoc.DocType) *extract.TableResult
}

// TextExtractor is the text extraction stage.
type TextExtractor interface {
	Extract(ctx context.Context, path string, docType paydoc.DocType) *extract.TextResult
}

// Enhancer is the model-assisted extraction stage.
type Enhancer interface {
	Enhance(ctx context.Context, path string, docType paydoc.DocType, tables *extract.TableResult, text *extract.TextResult) (*paydoc.Document, error)
}

// RecordValidator annotates a finished record with warnings and the
// structural validation result.
type RecordValidator interface {
	Validate(d *paydoc.Document)
}

// Orchestrator implements port.DocumentParser.
type Orchestrator struct {
	prober    Prober
	tables    TableExtractor
	text      TextExtractor
	enhancer  Enhancer
	validator RecordValidator
}

// New wires the stages into an orchestrator.
func New(prober Prober, tables TableExtractor, text TextExtractor, enhancer Enhancer, validator RecordValidator) *Orchestrator {
	return &Orchestrator{
		prober:    prober,
		tables:    tables,
		text:      text,
		enhancer:  enhancer,
		validator: validator,
	}
}

// Parse runs the full pipeline over one document. It never returns nil and
// never propagates recoverable failures: an unreadable file yields an
// error-shaped record with confidence 0, a failed vision stage yields the
// heuristic-only fallback record.
func (o *Orchestrator) Parse(ctx context.Context, path string, docType paydoc.DocType) *paydoc.Document {
	if _, err := o.prober.Probe(path); err != nil {
		log.Printf("pipeline.Orchestrator: unreadable input %s: %v", path, err)
		return paydoc.ErrorRecord(docType, err)
	}

	tables := o.tables.Extract(ctx, path, docType)
	text := o.text.Extract(ctx, path, docType)

	doc, err := o.enhancer.Enhance(ctx, path, docType, tables, text)
	if err != nil {
		log.Printf("pipeline.Orchestrator: vision stage failed, using heuristic-only record: %v", err)
		doc = fallbackRecord(docType, tables, text)
	}

	categorize.Document(doc)
	paydoc.DeriveIncome(doc)

	if doc.VisionUsed() {
		doc.ConfidenceScore = score.Completeness(doc)
	}

	o.validator.Validate(doc)
	return doc
}

// fallbackRecord assembles a record from the heuristic fields alone. The
// confidence stays at the fixed baseline rather than being recomputed: the
// completeness score presumes line items the heuristics cannot produce.
func fallbackRecord(docType paydoc.DocType, tables *extract.TableResult, text *extract.TextResult) *paydoc.Document {
	var merged fields.Fields
	if tables != nil {
		merged.Merge(tables.Fields)
	}
	if text != nil {
		merged.Merge(text.Fields)
	}

	doc := &paydoc.Document{
		DocType: docType,
		Employer: paydoc.Employer{
			Name:       merged.CompanyName,
			EmployeeID: merged.EmployeeID,
		},
		Employee: paydoc.Employee{
			Name:      merged.EmployeeName,
			SSNMasked: merged.SSN,
		},
		PayFrequency:       merged.PayFrequency,
		ConfidenceScore:    FallbackConfidence,
		ValidationWarnings: []string{},
	}
	if docType == paydoc.DocTypeW2 {
		doc.Employer.TaxID = merged.EIN
		doc.BenefitCodes = merged.BenefitCodes
	}

	tablesFound := 0
	if tables != nil {
		tablesFound = len(tables.Tables)
	}
	textLength := 0
	if text != nil {
		textLength = len(text.FullText)
	}
	doc.ProcessingMetadata = map[string]any{
		paydoc.MetaVisionUsed:       false,
		paydoc.MetaExtractionMethod: "traditional_extraction_only",
		paydoc.MetaTablesFound:      tablesFound,
		paydoc.MetaTextLength:       textLength,
		paydoc.MetaDetectedAmounts:  merged.DetectedAmounts,
		paydoc.MetaDetectedDates:    merged.DetectedDates,
	}
	return doc
}
