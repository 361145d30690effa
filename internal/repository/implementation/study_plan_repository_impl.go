package implementation

import (
	"context"
	"errors"

	"github.com/ArthurLoboLobo/projeto-estudos/internal/entity"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/mapper"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/model"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/contract"
	"github.com/ArthurLoboLobo/projeto-estudos/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudyPlanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.StudyPlanMapper
}

func NewStudyPlanRepository(db *gorm.DB) contract.StudyPlanRepository {
	return &StudyPlanRepositoryImpl{
		db:     db,
		mapper: mapper.NewStudyPlanMapper(),
	}
}

func (r *StudyPlanRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *StudyPlanRepositoryImpl) Create(ctx context.Context, plan *entity.StudyPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.ToEntity(m)
	return nil
}

func (r *StudyPlanRepositoryImpl) Update(ctx context.Context, plan *entity.StudyPlan) error {
	m := r.mapper.ToModel(plan)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.ToEntity(m)
	return nil
}

func (r *StudyPlanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.StudyPlan, error) {
	var m model.StudyPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StudyPlanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.StudyPlan, error) {
	var models []*model.StudyPlan
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *StudyPlanRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.StudyPlan{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *StudyPlanRepositoryImpl) FindLatest(ctx context.Context, sessionId uuid.UUID) (*entity.StudyPlan, error) {
	var m model.StudyPlan
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("version DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *StudyPlanRepositoryImpl) MaxVersion(ctx context.Context, sessionId uuid.UUID) (int, error) {
	var maxVersion *int
	err := r.db.WithContext(ctx).
		Model(&model.StudyPlan{}).
		Where("session_id = ?", sessionId).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 0, err
	}
	if maxVersion == nil {
		return 0, nil
	}
	return *maxVersion, nil
}

func (r *StudyPlanRepositoryImpl) DeleteVersion(ctx context.Context, sessionId uuid.UUID, version int) error {
	return r.db.WithContext(ctx).
		Where("session_id = ? AND version = ?", sessionId, version).
		Delete(&model.StudyPlan{}).Error
}

func (r *StudyPlanRepositoryImpl) DeleteBySessionIdUnscoped(ctx context.Context, sessionId uuid.UUID) error {
	return r.db.WithContext(ctx).Unscoped().Where("session_id = ?", sessionId).Delete(&model.StudyPlan{}).Error
}
