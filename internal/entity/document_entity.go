package entity

import (
	"time"

	"github.com/google/uuid"
)

type ExtractionStatus string

const (
	ExtractionStatusPending    ExtractionStatus = "pending"
	ExtractionStatusProcessing ExtractionStatus = "processing"
	ExtractionStatusCompleted  ExtractionStatus = "completed"
	ExtractionStatusFailed     ExtractionStatus = "failed"
)

// IsTerminal reports whether extraction will make no further progress.
func (s ExtractionStatus) IsTerminal() bool {
	return s == ExtractionStatusCompleted || s == ExtractionStatusFailed
}

type Document struct {
	Id               uuid.UUID
	SessionId        uuid.UUID
	FileName         string
	FilePath         string
	ExtractedText    string
	ContentLength    int
	PageCount        *int
	ExtractionStatus ExtractionStatus
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}
