package entity

import (
	"time"

	"github.com/google/uuid"
)

type ChatType string

const (
	ChatTypeTopicSpecific ChatType = "TOPIC_SPECIFIC"
	ChatTypeGeneralReview ChatType = "GENERAL_REVIEW"
)

type Chat struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	ChatType  ChatType
	TopicId   *uuid.UUID
	IsStarted bool
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
	IsDeleted bool
}
