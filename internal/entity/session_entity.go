package entity

import (
	"time"

	"github.com/google/uuid"
)

type SessionStatus string

const (
	SessionStatusPlanning  SessionStatus = "PLANNING"
	SessionStatusActive    SessionStatus = "ACTIVE"
	SessionStatusCompleted SessionStatus = "COMPLETED"
)

// SessionStage is the client-facing view of a session, derived from
// status + draft plan presence. It never moves backward.
type SessionStage string

const (
	SessionStageUploading SessionStage = "UPLOADING"
	SessionStagePlanning  SessionStage = "PLANNING"
	SessionStageStudying  SessionStage = "STUDYING"
)

// DraftPlanTopic is one topic inside the draft plan JSONB blob.
type DraftPlanTopic struct {
	Id          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	IsCompleted bool    `json:"is_completed"`
}

type DraftPlan struct {
	Topics []DraftPlanTopic `json:"topics"`
}

type Session struct {
	Id          uuid.UUID
	ProfileId   uuid.UUID
	Title       string
	Description *string
	Status      SessionStatus
	DraftPlan   *DraftPlan
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}

// Stage derives the view the client should render. The mapping is total:
// any (status, draft plan) combination lands on exactly one stage.
func (s *Session) Stage() SessionStage {
	if s.Status == SessionStatusPlanning {
		if s.DraftPlan == nil || len(s.DraftPlan.Topics) == 0 {
			return SessionStageUploading
		}
		return SessionStagePlanning
	}
	return SessionStageStudying
}
