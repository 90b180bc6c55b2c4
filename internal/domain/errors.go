package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUnknownDocType      = errors.New("unknown document type")
	ErrNotArchived         = errors.New("result has no archived copy")
	ErrInvalidReviewStatus = errors.New("invalid review status")
)
