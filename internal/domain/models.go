package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ParseResult is a persisted extraction outcome. Record holds the full
// paydoc.Document JSON exactly as the pipeline returned it; the scalar
// columns are denormalized for listing and filtering.
type ParseResult struct {
	ID               uuid.UUID       `db:"id" json:"id"`
	FileName         string          `db:"file_name" json:"file_name"`
	DocType          string          `db:"doc_type" json:"doc_type"`
	Record           json.RawMessage `db:"record" json:"record"`
	ConfidenceScore  float64         `db:"confidence_score" json:"confidence_score"`
	WarningCount     int             `db:"warning_count" json:"warning_count"`
	VisionUsed       bool            `db:"vision_used" json:"vision_used"`
	ValidationPassed bool            `db:"validation_passed" json:"validation_passed"`
	ReviewStatus     ReviewStatus    `db:"review_status" json:"review_status"`
	ReviewerNotes    string          `db:"reviewer_notes" json:"reviewer_notes"`
	ArchiveBucket    string          `db:"archive_bucket" json:"archive_bucket,omitempty"`
	ArchiveKey       string          `db:"archive_key" json:"archive_key,omitempty"`
	CreatedAt        time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time       `db:"updated_at" json:"updated_at"`
}
