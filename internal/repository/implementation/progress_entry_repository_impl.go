package implementation

import (
	"context"

	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/mapper"
	"ai-health-assistant-be/internal/model"
	"ai-health-assistant-be/internal/repository/contract"
	"ai-health-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ProgressEntryRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProgressEntryMapper
}

func NewProgressEntryRepository(db *gorm.DB) contract.ProgressEntryRepository {
	return &ProgressEntryRepositoryImpl{
		db:     db,
		mapper: mapper.NewProgressEntryMapper(),
	}
}

func (r *ProgressEntryRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ProgressEntryRepositoryImpl) Create(ctx context.Context, entry *entity.ProgressEntry) error {
	m := r.mapper.ToModel(entry)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProgressEntryRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ProgressEntry, error) {
	var models []*model.ProgressEntry
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *ProgressEntryRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	err := query.Model(&model.ProgressEntry{}).Count(&count).Error
	return count, err
}
