package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByExtractionStatus struct {
	Status string
}

func (s ByExtractionStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("extraction_status = ?", s.Status)
}

type ByDocumentID struct {
	DocumentID uuid.UUID
}

func (s ByDocumentID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("document_id = ?", s.DocumentID)
}
