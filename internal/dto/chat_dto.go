package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatResponse struct {
	Id        uuid.UUID  `json:"id"`
	SessionId uuid.UUID  `json:"session_id"`
	ChatType  string     `json:"chat_type"`
	TopicId   *uuid.UUID `json:"topic_id,omitempty"`
	IsStarted bool       `json:"is_started"`
	CreatedAt time.Time  `json:"created_at"`
}

type MessageResponse struct {
	Id        uuid.UUID `json:"id"`
	ChatId    uuid.UUID `json:"chat_id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SendMessageRequest struct {
	ChatId  uuid.UUID `json:"chat_id" validate:"required"`
	Content string    `json:"content" validate:"required"`
}

type SendMessageResponse struct {
	Sent  *MessageResponse `json:"sent"`
	Reply *MessageResponse `json:"reply"`
}

// UndoMessageResponse returns the text of the undone user message so
// clients can restore it into the input box.
type UndoMessageResponse struct {
	Content string `json:"content"`
}

type GenerateWelcomeResponse struct {
	// Message is nil when the chat already has messages and no welcome
	// was generated.
	Message *MessageResponse `json:"message,omitempty"`
	Skipped bool             `json:"skipped"`
}
