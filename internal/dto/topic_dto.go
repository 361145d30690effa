package dto

import (
	"time"

	"github.com/google/uuid"
)

type TopicResponse struct {
	Id          uuid.UUID  `json:"id"`
	SessionId   uuid.UUID  `json:"session_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	OrderIndex  int        `json:"order_index"`
	IsCompleted bool       `json:"is_completed"`
	ChatId      *uuid.UUID `json:"chat_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type UpdateTopicRequest struct {
	Id          uuid.UUID
	IsCompleted bool `json:"is_completed"`
}
