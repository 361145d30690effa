package dto

import (
	"time"

	"github.com/google/uuid"
)

type DocumentResponse struct {
	Id               uuid.UUID  `json:"id"`
	SessionId        uuid.UUID  `json:"session_id"`
	FileName         string     `json:"file_name"`
	ExtractionStatus string     `json:"extraction_status"`
	PageCount        *int       `json:"page_count,omitempty"`
	ContentLength    int        `json:"content_length"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at"`
}

type UploadDocumentResponse struct {
	Id               uuid.UUID `json:"id"`
	FileName         string    `json:"file_name"`
	ExtractionStatus string    `json:"extraction_status"`
}

// ListDocumentsResponse includes the per-status rollup clients show in
// the upload view.
type ListDocumentsResponse struct {
	Documents      []DocumentResponse `json:"documents"`
	PendingCount   int                `json:"pending_count"`
	FailedCount    int                `json:"failed_count"`
	CompletedCount int                `json:"completed_count"`
}

type SignedUrlResponse struct {
	Url       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
