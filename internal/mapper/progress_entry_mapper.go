package mapper

import (
	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/model"
)

type ProgressEntryMapper struct{}

func NewProgressEntryMapper() *ProgressEntryMapper {
	return &ProgressEntryMapper{}
}

func (m *ProgressEntryMapper) ToEntity(p *model.ProgressEntry) *entity.ProgressEntry {
	if p == nil {
		return nil
	}
	return &entity.ProgressEntry{
		Id:               p.Id,
		UserId:           p.UserId,
		ConsultationId:   p.ConsultationId,
		Date:             p.Date,
		Description:      p.Description,
		MoodRating:       p.MoodRating,
		SymptomsImproved: p.SymptomsImproved,
		AiFeedback:       p.AiFeedback,
	}
}

func (m *ProgressEntryMapper) ToModel(p *entity.ProgressEntry) *model.ProgressEntry {
	if p == nil {
		return nil
	}
	return &model.ProgressEntry{
		Id:               p.Id,
		UserId:           p.UserId,
		ConsultationId:   p.ConsultationId,
		Date:             p.Date,
		Description:      p.Description,
		MoodRating:       p.MoodRating,
		SymptomsImproved: p.SymptomsImproved,
		AiFeedback:       p.AiFeedback,
	}
}

func (m *ProgressEntryMapper) ToEntities(items []*model.ProgressEntry) []*entity.ProgressEntry {
	entities := make([]*entity.ProgressEntry, len(items))
	for i, p := range items {
		entities[i] = m.ToEntity(p)
	}
	return entities
}
