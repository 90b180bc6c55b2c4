package port

import "context"

// TableStrategy selects a table-detection strategy in the external engine.
type TableStrategy string

const (
	// StrategyLattice targets ruled/bordered tables.
	StrategyLattice TableStrategy = "lattice"
	// StrategyStream targets whitespace-delimited tables.
	StrategyStream TableStrategy = "stream"
)

// Table is one detected table: a quality score and a grid of string cells.
type Table struct {
	Accuracy   float64    `json:"accuracy"`
	Whitespace float64    `json:"whitespace"`
	Rows       [][]string `json:"rows"`
}

// PageText is the extracted text of a single page.
type PageText struct {
	PageNumber int    `json:"page_number"`
	Text       string `json:"text"`
}

// TableEngine abstracts the external table-structure extraction service.
type TableEngine interface {
	DetectTables(ctx context.Context, path string, strategy TableStrategy) ([]Table, error)
}

// TextEngine abstracts the external raw-text extraction service.
type TextEngine interface {
	ReadText(ctx context.Context, path string) ([]PageText, error)
}
