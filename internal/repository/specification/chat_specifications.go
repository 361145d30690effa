package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatID struct {
	ChatID uuid.UUID
}

func (s ByChatID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_id = ?", s.ChatID)
}

type ByChatType struct {
	ChatType string
}

func (s ByChatType) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_type = ?", s.ChatType)
}
