package mapper

import (
	"encoding/json"
	"time"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.StudySession) *entity.Session {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	// A corrupted draft plan blob is treated as absent rather than
	// failing the whole read; the session itself is still usable.
	var draftPlan *entity.DraftPlan
	if len(s.DraftPlan) > 0 && string(s.DraftPlan) != "null" {
		var plan entity.DraftPlan
		if err := json.Unmarshal(s.DraftPlan, &plan); err == nil {
			draftPlan = &plan
		}
	}

	return &entity.Session{
		Id:          s.Id,
		ProfileId:   s.ProfileId,
		Title:       s.Title,
		Description: s.Description,
		Status:      entity.SessionStatus(s.Status),
		DraftPlan:   draftPlan,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   s.DeletedAt.Valid,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.StudySession {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	} else if s.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	var draftPlan datatypes.JSON
	if s.DraftPlan != nil {
		if raw, err := json.Marshal(s.DraftPlan); err == nil {
			draftPlan = raw
		}
	}

	return &model.StudySession{
		Id:          s.Id,
		ProfileId:   s.ProfileId,
		Title:       s.Title,
		Description: s.Description,
		Status:      string(s.Status),
		DraftPlan:   draftPlan,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.StudySession) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
