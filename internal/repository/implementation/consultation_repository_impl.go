package implementation

import (
	"context"
	"errors"

	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/mapper"
	"ai-health-assistant-be/internal/model"
	"ai-health-assistant-be/internal/repository/contract"
	"ai-health-assistant-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ConsultationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConsultationMapper
}

func NewConsultationRepository(db *gorm.DB) contract.ConsultationRepository {
	return &ConsultationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConsultationMapper(),
	}
}

func (r *ConsultationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConsultationRepositoryImpl) Create(ctx context.Context, consultation *entity.Consultation) error {
	m := r.mapper.ToModel(consultation)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*consultation = *r.mapper.ToEntity(m)
	return nil
}

func (r *ConsultationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Consultation, error) {
	var m model.Consultation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *ConsultationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Consultation, error) {
	var models []*model.Consultation
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
