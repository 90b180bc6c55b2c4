package port

import (
	"context"

	"github.com/google/uuid"

	"payproof/internal/domain"
)

// ResultFilter narrows result listings.
type ResultFilter struct {
	DocType      string
	ReviewStatus string
	Limit        int
	Offset       int
}

// ResultRepository persists parse results.
type ResultRepository interface {
	Create(ctx context.Context, r *domain.ParseResult) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ParseResult, error)
	List(ctx context.Context, filter ResultFilter) ([]domain.ParseResult, error)
	UpdateReview(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string) error
	Count(ctx context.Context) (int64, error)
}
