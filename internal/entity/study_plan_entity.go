package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	TopicStatusNeedToLearn = "need_to_learn"
	TopicStatusNeedReview  = "need_review"
	TopicStatusKnowWell    = "know_well"
)

// PlanTopic is one topic inside a plan version's structured content.
type PlanTopic struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type PlanContent struct {
	Topics []PlanTopic `json:"topics"`
}

// StudyPlan is one immutable version of a session's plan. Versions are
// append-only and strictly increasing; revisions replace the whole plan.
type StudyPlan struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Version     int
	ContentMd   string
	Content     *PlanContent
	Instruction *string
	CreatedAt   time.Time
}
