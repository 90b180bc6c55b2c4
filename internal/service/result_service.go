package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"payproof/internal/config"
	"payproof/internal/domain"
	"payproof/internal/paydoc"
	"payproof/internal/port"
)

// ParseUploadInput is the DTO for parse requests arriving over HTTP.
type ParseUploadInput struct {
	File    multipart.File
	Header  *multipart.FileHeader
	DocType string
}

// UpdateReviewInput is the DTO for review decisions.
type UpdateReviewInput struct {
	ResultID uuid.UUID
	Status   string
	Notes    string
}

// ResultService defines the parse-result management contract.
type ResultService interface {
	ParseUpload(ctx context.Context, input ParseUploadInput) (*domain.ParseResult, error)
	ParseFile(ctx context.Context, path string, docType paydoc.DocType) (*domain.ParseResult, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.ParseResult, error)
	List(ctx context.Context, filter port.ResultFilter) ([]domain.ParseResult, error)
	Count(ctx context.Context) (int64, error)
	UpdateReview(ctx context.Context, input UpdateReviewInput) (*domain.ParseResult, error)
	ArchiveURL(ctx context.Context, id uuid.UUID) (string, error)
}

type resultService struct {
	parser  port.DocumentParser
	repo    port.ResultRepository
	storage port.ObjectStorage
	email   port.EmailSender
	cfg     *config.Config
}

// NewResultService creates a new ResultService implementation. storage and
// email may be nil; archiving and alerting are then skipped.
func NewResultService(
	parser port.DocumentParser,
	repo port.ResultRepository,
	storage port.ObjectStorage,
	email port.EmailSender,
	cfg *config.Config,
) ResultService {
	return &resultService{
		parser:  parser,
		repo:    repo,
		storage: storage,
		email:   email,
		cfg:     cfg,
	}
}

func (s *resultService) ParseUpload(ctx context.Context, input ParseUploadInput) (*domain.ParseResult, error) {
	docType, err := parseDocType(input.DocType)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.Header.Filename), "."))
	if _, ok := domain.AllowedExtensions[ext]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}

	maxBytes := s.cfg.Parse.MaxFileSizeMB * 1024 * 1024
	if input.Header.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	// The extraction stages operate on file paths, so spool the upload to disk.
	tmp, err := os.CreateTemp("", "payproof-upload-*."+ext)
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, input.File); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("spooling upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}

	return s.parseAndPersist(ctx, tmp.Name(), input.Header.Filename, docType)
}

func (s *resultService) ParseFile(ctx context.Context, path string, docType paydoc.DocType) (*domain.ParseResult, error) {
	if docType != paydoc.DocTypePaystub && docType != paydoc.DocTypeW2 {
		return nil, domain.ErrUnknownDocType
	}
	return s.parseAndPersist(ctx, path, filepath.Base(path), docType)
}

func (s *resultService) parseAndPersist(ctx context.Context, path, fileName string, docType paydoc.DocType) (*domain.ParseResult, error) {
	doc := s.parser.Parse(ctx, path, docType)

	record, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling record: %w", err)
	}

	result := &domain.ParseResult{
		ID:               uuid.New(),
		FileName:         fileName,
		DocType:          string(docType),
		Record:           record,
		ConfidenceScore:  doc.ConfidenceScore,
		WarningCount:     len(doc.ValidationWarnings),
		VisionUsed:       doc.VisionUsed(),
		ValidationPassed: validationPassed(doc),
		ReviewStatus:     domain.ReviewPending,
	}

	s.archive(ctx, result)

	if err := s.repo.Create(ctx, result); err != nil {
		return nil, fmt.Errorf("persisting result: %w", err)
	}

	s.alertIfNeeded(ctx, result)
	return result, nil
}

// archive uploads the raw record JSON to object storage. Failures are logged
// but never block the parse.
func (s *resultService) archive(ctx context.Context, result *domain.ParseResult) {
	if s.storage == nil {
		return
	}

	key := fmt.Sprintf("results/%s/%s/%s.json",
		result.DocType, time.Now().UTC().Format("2006/01/02"), result.ID)

	_, err := s.storage.Upload(ctx, port.UploadInput{
		Bucket:      s.cfg.S3.Bucket,
		Key:         key,
		Body:        bytes.NewReader(result.Record),
		ContentType: "application/json",
		Size:        int64(len(result.Record)),
	})
	if err != nil {
		log.Printf("resultService.archive: failed to archive result %s: %v", result.ID, err)
		return
	}

	result.ArchiveBucket = s.cfg.S3.Bucket
	result.ArchiveKey = key
}

// alertIfNeeded emails the reviewer when a result falls below the configured
// confidence threshold or failed validation. Failures are logged only.
func (s *resultService) alertIfNeeded(ctx context.Context, result *domain.ParseResult) {
	if s.email == nil || s.cfg.Email.ReviewerAddress == "" {
		return
	}
	if result.ConfidenceScore >= s.cfg.Email.AlertThreshold && result.ValidationPassed {
		return
	}

	alert := port.ReviewAlert{
		ResultID:     result.ID.String(),
		FileName:     result.FileName,
		DocType:      result.DocType,
		Confidence:   result.ConfidenceScore,
		WarningCount: result.WarningCount,
	}
	if err := s.email.SendReviewAlert(ctx, s.cfg.Email.ReviewerAddress, alert); err != nil {
		log.Printf("resultService.alertIfNeeded: failed to send review alert for %s: %v", result.ID, err)
	}
}

func (s *resultService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ParseResult, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *resultService) List(ctx context.Context, filter port.ResultFilter) ([]domain.ParseResult, error) {
	if filter.DocType != "" {
		if _, err := parseDocType(filter.DocType); err != nil {
			return nil, err
		}
	}
	if filter.ReviewStatus != "" && !domain.ValidReviewStatus(filter.ReviewStatus) {
		return nil, domain.ErrInvalidReviewStatus
	}
	return s.repo.List(ctx, filter)
}

func (s *resultService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// ArchiveURL returns a time-limited download link for the archived raw
// record JSON.
func (s *resultService) ArchiveURL(ctx context.Context, id uuid.UUID) (string, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if s.storage == nil || result.ArchiveKey == "" {
		return "", domain.ErrNotArchived
	}

	url, err := s.storage.GetPresignedURL(ctx, result.ArchiveBucket, result.ArchiveKey, s.cfg.S3.PresignExpiry)
	if err != nil {
		return "", fmt.Errorf("presigning archive url: %w", err)
	}
	return url, nil
}

func (s *resultService) UpdateReview(ctx context.Context, input UpdateReviewInput) (*domain.ParseResult, error) {
	if !domain.ValidReviewStatus(input.Status) {
		return nil, domain.ErrInvalidReviewStatus
	}
	status := domain.ReviewStatus(input.Status)

	if err := s.repo.UpdateReview(ctx, input.ResultID, status, input.Notes); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, input.ResultID)
}

func parseDocType(s string) (paydoc.DocType, error) {
	switch paydoc.DocType(strings.ToLower(strings.TrimSpace(s))) {
	case paydoc.DocTypePaystub:
		return paydoc.DocTypePaystub, nil
	case paydoc.DocTypeW2:
		return paydoc.DocTypeW2, nil
	}
	return "", domain.ErrUnknownDocType
}

func validationPassed(doc *paydoc.Document) bool {
	v, ok := doc.ProcessingMetadata[paydoc.MetaValidationPassed].(bool)
	return ok && v
}
