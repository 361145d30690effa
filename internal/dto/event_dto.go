package dto

import (
	"time"

	"github.com/google/uuid"
)

// DocumentStatusEvent is published on the event bus and pushed to
// websocket subscribers whenever a document's extraction advances.
type DocumentStatusEvent struct {
	DocumentId       uuid.UUID `json:"document_id"`
	SessionId        uuid.UUID `json:"session_id"`
	FileName         string    `json:"file_name"`
	ExtractionStatus string    `json:"extraction_status"`
	PageCount        *int      `json:"page_count,omitempty"`
	Error            string    `json:"error,omitempty"`
	OccurredAt       time.Time `json:"occurred_at"`
}

// ExtractDocumentJob is the payload queued for the ingestion worker.
type ExtractDocumentJob struct {
	DocumentId uuid.UUID `json:"document_id"`
	SessionId  uuid.UUID `json:"session_id"`
}
