package dto

import (
	"time"

	"github.com/google/uuid"
)

type GeneratePlanRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
}

type RevisePlanRequest struct {
	SessionId   uuid.UUID `json:"session_id" validate:"required"`
	Instruction string    `json:"instruction" validate:"required"`
}

type PlanTopicDTO struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// PlanResponse is one plan version. CanUndo tells clients whether an
// undo would leave a version to fall back to.
type PlanResponse struct {
	Id          uuid.UUID      `json:"id"`
	SessionId   uuid.UUID      `json:"session_id"`
	Version     int            `json:"version"`
	ContentMd   string         `json:"content_md"`
	Topics      []PlanTopicDTO `json:"topics"`
	Instruction *string        `json:"instruction,omitempty"`
	CanUndo     bool           `json:"can_undo"`
	CreatedAt   time.Time      `json:"created_at"`
}

type UpdateTopicStatusRequest struct {
	SessionId uuid.UUID `json:"session_id" validate:"required"`
	TopicId   string    `json:"topic_id" validate:"required"`
	Status    string    `json:"status" validate:"required,oneof=need_to_learn need_review know_well"`
}

type StartStudyingResponse struct {
	SessionId uuid.UUID       `json:"session_id"`
	Status    string          `json:"status"`
	Topics    []TopicResponse `json:"topics"`
}

// PlanParseError is returned when the AI reply cannot be parsed into a
// structured plan. The raw reply is kept for diagnostics.
type PlanParseError struct {
	Raw string `json:"-"`
}

func (e *PlanParseError) Error() string {
	return "AI response did not contain a valid study plan"
}
