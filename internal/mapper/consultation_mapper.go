package mapper

import (
	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/model"
)

type ConsultationMapper struct{}

func NewConsultationMapper() *ConsultationMapper {
	return &ConsultationMapper{}
}

func (m *ConsultationMapper) ToEntity(c *model.Consultation) *entity.Consultation {
	if c == nil {
		return nil
	}
	return &entity.Consultation{
		Id:                 c.Id,
		UserId:             c.UserId,
		ProblemDescription: c.ProblemDescription,
		Analysis:           c.Analysis,
		Recommendations:    c.Recommendations,
		Exercises:          c.Exercises,
		Disclaimer:         c.Disclaimer,
		AiRecommendation:   c.AiRecommendation,
		CreatedAt:          c.CreatedAt,
	}
}

func (m *ConsultationMapper) ToModel(c *entity.Consultation) *model.Consultation {
	if c == nil {
		return nil
	}
	return &model.Consultation{
		Id:                 c.Id,
		UserId:             c.UserId,
		ProblemDescription: c.ProblemDescription,
		Analysis:           c.Analysis,
		Recommendations:    c.Recommendations,
		Exercises:          c.Exercises,
		Disclaimer:         c.Disclaimer,
		AiRecommendation:   c.AiRecommendation,
		CreatedAt:          c.CreatedAt,
	}
}

func (m *ConsultationMapper) ToEntities(items []*model.Consultation) []*entity.Consultation {
	entities := make([]*entity.Consultation, len(items))
	for i, c := range items {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
