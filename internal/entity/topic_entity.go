package entity

import (
	"time"

	"github.com/google/uuid"
)

// Topic is a materialized study unit, created from the draft plan when
// the session moves into the studying phase.
type Topic struct {
	Id          uuid.UUID
	SessionId   uuid.UUID
	Title       string
	Description *string
	OrderIndex  int
	IsCompleted bool
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
