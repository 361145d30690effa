package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_EXTRACTED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent helps embed common logic if needed,
// strictly creating valid implementations is preferred though.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Document lifecycle event codes.
const (
	TypeDocumentUploaded   = "DOCUMENT_UPLOADED"
	TypeDocumentExtracted  = "DOCUMENT_EXTRACTED"
	TypeDocumentFailed     = "DOCUMENT_FAILED"
	TypeSessionPlanCreated = "SESSION_PLAN_CREATED"
)

// DocumentStatusChanged is emitted whenever a document's extraction
// status advances. Consumers fan it out to websocket subscribers.
type DocumentStatusChanged struct {
	DocumentId uuid.UUID
	SessionId  uuid.UUID
	FileName   string
	Status     string
	Error      string
	OccurredAt time.Time
}

func (e DocumentStatusChanged) EventType() string {
	switch e.Status {
	case "completed":
		return TypeDocumentExtracted
	case "failed":
		return TypeDocumentFailed
	default:
		return TypeDocumentUploaded
	}
}

func (e DocumentStatusChanged) Payload() map[string]interface{} {
	payload := map[string]interface{}{
		"document_id": e.DocumentId.String(),
		"session_id":  e.SessionId.String(),
		"file_name":   e.FileName,
		"status":      e.Status,
	}
	if e.Error != "" {
		payload["error"] = e.Error
	}
	return payload
}

func (e DocumentStatusChanged) Timestamp() time.Time {
	return e.OccurredAt
}
