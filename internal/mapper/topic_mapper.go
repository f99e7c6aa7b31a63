package mapper

import (
	"time"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/model"

	"gorm.io/gorm"
)

type TopicMapper struct{}

func NewTopicMapper() *TopicMapper {
	return &TopicMapper{}
}

func (m *TopicMapper) TopicToEntity(t *model.Topic) *entity.Topic {
	if t == nil {
		return nil
	}

	var deletedAt *time.Time
	if t.DeletedAt.Valid {
		d := t.DeletedAt.Time
		deletedAt = &d
	}

	var updatedAt *time.Time
	if !t.UpdatedAt.IsZero() {
		u := t.UpdatedAt
		updatedAt = &u
	}

	return &entity.Topic{
		Id:        t.Id,
		UserId:    t.UserId,
		Caption:   t.Caption,
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *TopicMapper) TopicToModel(t *entity.Topic) *model.Topic {
	if t == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if t.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *t.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if t.UpdatedAt != nil {
		updatedAt = *t.UpdatedAt
	}

	return &model.Topic{
		Id:        t.Id,
		UserId:    t.UserId,
		Caption:   t.Caption,
		CreatedAt: t.CreatedAt,
		UpdatedAt: updatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *TopicMapper) MessageToEntity(msg *model.Message) *entity.Message {
	if msg == nil {
		return nil
	}
	return &entity.Message{
		Id:          msg.Id,
		TopicId:     msg.TopicId,
		UserId:      msg.UserId,
		MessageType: msg.MessageType,
		Content:     msg.Content,
		Seq:         msg.Seq,
		CreatedAt:   msg.CreatedAt,
	}
}

func (m *TopicMapper) MessageToModel(msg *entity.Message) *model.Message {
	if msg == nil {
		return nil
	}
	return &model.Message{
		Id:          msg.Id,
		TopicId:     msg.TopicId,
		UserId:      msg.UserId,
		MessageType: msg.MessageType,
		Content:     msg.Content,
		Seq:         msg.Seq,
		CreatedAt:   msg.CreatedAt,
	}
}
