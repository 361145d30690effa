package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type StudySession struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProfileId   uuid.UUID      `gorm:"type:uuid;not null;index"` // User ownership for data isolation
	Title       string         `gorm:"type:varchar(255);not null"`
	Description *string        `gorm:"type:text"`
	Status      string         `gorm:"type:session_status;not null;default:'PLANNING'"`
	DraftPlan   datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
