// Package extract contains the table and text extraction adapters. Both wrap
// an external engine, run the field pattern matcher over whatever came back,
// and degrade to an explicit "failed" result instead of returning errors:
// extraction failure is never fatal to the pipeline.
package extract

import (
	"context"
	"log"
	"strings"

	"payproof/internal/fields"
	"payproof/internal/paydoc"
	"payproof/internal/port"
)

// MethodFailed tags a result whose extraction produced nothing.
const MethodFailed = "failed"

// TableResult is the outcome of the table extraction stage.
type TableResult struct {
	Tables []port.Table
	Method string // strategy that produced the tables, or "failed"
	Fields fields.Fields
}

// TableAdapter wraps the external table-structure engine.
type TableAdapter struct {
	engine port.TableEngine
}

// NewTableAdapter creates a TableAdapter over the given engine.
func NewTableAdapter(engine port.TableEngine) *TableAdapter {
	return &TableAdapter{engine: engine}
}

// Extract tries the ruled/bordered strategy first and the whitespace-delimited
// strategy second, using the first that yields at least one table. Heuristic
// fields from every table are merged, later tables filling only keys not yet
// set while the detected amount/date lists concatenate up to their caps.
func (a *TableAdapter) Extract(ctx context.Context, path string, docType paydoc.DocType) *TableResult {
	var tables []port.Table
	method := MethodFailed

	for _, strategy := range []port.TableStrategy{port.StrategyLattice, port.StrategyStream} {
		found, err := a.engine.DetectTables(ctx, path, strategy)
		if err != nil {
			log.Printf("extract.TableAdapter: %s strategy failed: %v", strategy, err)
			continue
		}
		if len(found) > 0 {
			tables = found
			method = string(strategy)
			break
		}
	}

	result := &TableResult{Tables: tables, Method: method}
	for _, table := range tables {
		flat := flattenTable(table)
		if flat == "" {
			continue
		}
		result.Fields.Merge(fields.Extract(flat, docType))
	}
	return result
}

// flattenTable renders a table grid to the textual form the pattern matcher
// operates on: cells joined by spaces, rows by newlines.
func flattenTable(t port.Table) string {
	var b strings.Builder
	for _, row := range t.Rows {
		b.WriteString(strings.Join(row, "  "))
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}
