package noop

import (
	"context"
	"log"

	"payproof/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs alerts to stdout.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendReviewAlert(_ context.Context, toEmail string, alert port.ReviewAlert) error {
	log.Printf("[NOOP EMAIL] Review alert for %s: file=%s type=%s confidence=%.2f warnings=%d",
		toEmail, alert.FileName, alert.DocType, alert.Confidence, alert.WarningCount)
	return nil
}
