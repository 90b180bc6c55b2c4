package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"payproof/internal/domain"
	"payproof/internal/port"
)

type resultRepo struct {
	db *sqlx.DB
}

// NewResultRepo creates a new PostgreSQL-backed ResultRepository.
func NewResultRepo(db *sqlx.DB) port.ResultRepository {
	return &resultRepo{db: db}
}

func (r *resultRepo) Create(ctx context.Context, res *domain.ParseResult) error {
	now := time.Now().UTC()
	res.CreatedAt = now
	res.UpdatedAt = now

	query := `INSERT INTO parse_results (
		id, file_name, doc_type, record,
		confidence_score, warning_count, vision_used, validation_passed,
		review_status, reviewer_notes, archive_bucket, archive_key,
		created_at, updated_at
	) VALUES (
		$1, $2, $3, $4,
		$5, $6, $7, $8,
		$9, $10, $11, $12,
		$13, $14
	)`

	_, err := r.db.ExecContext(ctx, query,
		res.ID, res.FileName, res.DocType, res.Record,
		res.ConfidenceScore, res.WarningCount, res.VisionUsed, res.ValidationPassed,
		res.ReviewStatus, res.ReviewerNotes, res.ArchiveBucket, res.ArchiveKey,
		res.CreatedAt, res.UpdatedAt)
	if err != nil {
		return fmt.Errorf("resultRepo.Create: %w", err)
	}
	return nil
}

func (r *resultRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParseResult, error) {
	var res domain.ParseResult
	err := r.db.GetContext(ctx, &res,
		"SELECT * FROM parse_results WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("resultRepo.GetByID: %w", err)
	}
	return &res, nil
}

func (r *resultRepo) List(ctx context.Context, filter port.ResultFilter) ([]domain.ParseResult, error) {
	query := "SELECT * FROM parse_results WHERE 1=1"
	args := []any{}

	if filter.DocType != "" {
		args = append(args, filter.DocType)
		query += fmt.Sprintf(" AND doc_type = $%d", len(args))
	}
	if filter.ReviewStatus != "" {
		args = append(args, filter.ReviewStatus)
		query += fmt.Sprintf(" AND review_status = $%d", len(args))
	}

	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	args = append(args, limit)
	query += fmt.Sprintf(" LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	var results []domain.ParseResult
	if err := r.db.SelectContext(ctx, &results, query, args...); err != nil {
		return nil, fmt.Errorf("resultRepo.List: %w", err)
	}
	return results, nil
}

func (r *resultRepo) UpdateReview(ctx context.Context, id uuid.UUID, status domain.ReviewStatus, notes string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE parse_results SET review_status = $1, reviewer_notes = $2, updated_at = $3
		 WHERE id = $4`,
		status, notes, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("resultRepo.UpdateReview: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("resultRepo.UpdateReview rows: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *resultRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM parse_results"); err != nil {
		return 0, fmt.Errorf("resultRepo.Count: %w", err)
	}
	return total, nil
}
