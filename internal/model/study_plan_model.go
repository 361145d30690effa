package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type StudyPlan struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId   uuid.UUID      `gorm:"type:uuid;not null;index:idx_study_plans_session_version,unique"`
	Version     int            `gorm:"not null;index:idx_study_plans_session_version,unique"`
	ContentMd   string         `gorm:"type:text;not null"`
	ContentJson datatypes.JSON `gorm:"type:jsonb"`
	Instruction *string        `gorm:"type:text"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}
