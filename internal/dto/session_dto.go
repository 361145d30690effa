package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateSessionRequest struct {
	Id          uuid.UUID
	Title       string  `json:"title" validate:"required,max=255"`
	Description *string `json:"description"`
}

type DraftPlanTopicDTO struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
}

type DraftPlanDTO struct {
	Topics []DraftPlanTopicDTO `json:"topics"`
}

// SessionResponse carries both the raw status and the derived stage so
// clients never have to reimplement the stage mapping.
type SessionResponse struct {
	Id          uuid.UUID     `json:"id"`
	Title       string        `json:"title"`
	Description *string       `json:"description"`
	Status      string        `json:"status"`
	Stage       string        `json:"stage"`
	DraftPlan   *DraftPlanDTO `json:"draft_plan,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   *time.Time    `json:"updated_at"`
}
