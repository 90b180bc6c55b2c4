package port

import "context"

// ReviewAlert describes a parsed document that needs human review.
type ReviewAlert struct {
	ResultID     string
	FileName     string
	DocType      string
	Confidence   float64
	WarningCount int
}

// EmailSender defines the contract for review-alert delivery.
type EmailSender interface {
	SendReviewAlert(ctx context.Context, toEmail string, alert ReviewAlert) error
}
