package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	FileName         string         `gorm:"type:varchar(255);not null"`
	FilePath         string         `gorm:"type:text;not null"`
	ExtractedText    string         `gorm:"type:text"`
	ContentLength    int            `gorm:"default:0"`
	PageCount        *int           ``
	ExtractionStatus string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	CreatedAt        time.Time      `gorm:"autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"autoUpdateTime"`
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
