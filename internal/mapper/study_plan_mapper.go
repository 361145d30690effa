package mapper

import (
	"encoding/json"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/model"

	"gorm.io/datatypes"
)

type StudyPlanMapper struct{}

func NewStudyPlanMapper() *StudyPlanMapper {
	return &StudyPlanMapper{}
}

func (m *StudyPlanMapper) ToEntity(p *model.StudyPlan) *entity.StudyPlan {
	if p == nil {
		return nil
	}

	var content *entity.PlanContent
	if len(p.ContentJson) > 0 && string(p.ContentJson) != "null" {
		var c entity.PlanContent
		if err := json.Unmarshal(p.ContentJson, &c); err == nil {
			content = &c
		}
	}

	return &entity.StudyPlan{
		Id:          p.Id,
		SessionId:   p.SessionId,
		Version:     p.Version,
		ContentMd:   p.ContentMd,
		Content:     content,
		Instruction: p.Instruction,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *StudyPlanMapper) ToModel(p *entity.StudyPlan) *model.StudyPlan {
	if p == nil {
		return nil
	}

	var contentJson datatypes.JSON
	if p.Content != nil {
		if raw, err := json.Marshal(p.Content); err == nil {
			contentJson = raw
		}
	}

	return &model.StudyPlan{
		Id:          p.Id,
		SessionId:   p.SessionId,
		Version:     p.Version,
		ContentMd:   p.ContentMd,
		ContentJson: contentJson,
		Instruction: p.Instruction,
		CreatedAt:   p.CreatedAt,
	}
}

func (m *StudyPlanMapper) ToEntities(plans []*model.StudyPlan) []*entity.StudyPlan {
	entities := make([]*entity.StudyPlan, len(plans))
	for i, p := range plans {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
