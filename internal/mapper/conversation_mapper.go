package mapper

import (
	"ai-health-assistant-be/internal/entity"
	"ai-health-assistant-be/internal/model"
)

type ConversationMapper struct{}

func NewConversationMapper() *ConversationMapper {
	return &ConversationMapper{}
}

func (m *ConversationMapper) ToEntity(r *model.ConversationRecord) *entity.ConversationRecord {
	if r == nil {
		return nil
	}
	return &entity.ConversationRecord{
		Id:            r.Id,
		UserId:        r.UserId,
		PatientId:     r.PatientId,
		Question:      r.Question,
		Answer:        r.Answer,
		FragmentCount: r.FragmentCount,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *ConversationMapper) ToModel(r *entity.ConversationRecord) *model.ConversationRecord {
	if r == nil {
		return nil
	}
	return &model.ConversationRecord{
		Id:            r.Id,
		UserId:        r.UserId,
		PatientId:     r.PatientId,
		Question:      r.Question,
		Answer:        r.Answer,
		FragmentCount: r.FragmentCount,
		CreatedAt:     r.CreatedAt,
	}
}

func (m *ConversationMapper) ToEntities(items []*model.ConversationRecord) []*entity.ConversationRecord {
	entities := make([]*entity.ConversationRecord, len(items))
	for i, r := range items {
		entities[i] = m.ToEntity(r)
	}
	return entities
}
