package contract

import (
	"context"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"

	"github.com/google/uuid"
)

type StudyPlanRepository interface {
	Create(ctx context.Context, plan *entity.StudyPlan) error
	Update(ctx context.Context, plan *entity.StudyPlan) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyPlan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyPlan, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	FindLatest(ctx context.Context, sessionId uuid.UUID) (*entity.StudyPlan, error)
	MaxVersion(ctx context.Context, sessionId uuid.UUID) (int, error)
	DeleteVersion(ctx context.Context, sessionId uuid.UUID, version int) error // Hard delete
	DeleteBySessionIdUnscoped(ctx context.Context, sessionId uuid.UUID) error
}
