package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

const defaultTopicCaption = "新的会话"

type ITopicService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTopicRequest) (*dto.CreateTopicResponse, error)
	GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllTopicsResponse, error)
	Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
	RequestCaption(ctx context.Context, userId uuid.UUID, id uuid.UUID) error
}

type topicService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
}

func NewTopicService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
) ITopicService {
	return &topicService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
	}
}

func (c *topicService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateTopicRequest) (*dto.CreateTopicResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	caption := req.Caption
	if caption == "" {
		caption = defaultTopicCaption
	}

	topic := entity.Topic{
		Id:        uuid.New(),
		UserId:    userId,
		Caption:   caption,
		CreatedAt: time.Now(),
	}

	if err := uow.TopicRepository().Create(ctx, &topic); err != nil {
		return nil, err
	}

	return &dto.CreateTopicResponse{
		Id:      topic.Id,
		Caption: topic.Caption,
	}, nil
}

func (c *topicService) GetAll(ctx context.Context, userId uuid.UUID) ([]*dto.GetAllTopicsResponse, error) {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	// Most recently active topic first.
	topics, err := uow.TopicRepository().FindAll(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "updated_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetAllTopicsResponse, 0, len(topics))
	for _, topic := range topics {
		result = append(result, &dto.GetAllTopicsResponse{
			Id:        topic.Id,
			Caption:   topic.Caption,
			CreatedAt: topic.CreatedAt,
			UpdatedAt: topic.UpdatedAt,
		})
	}
	return result, nil
}

func (c *topicService) Delete(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if topic == nil {
		return fmt.Errorf("topic not found")
	}

	now := time.Now()
	topic.DeletedAt = &now
	return uow.TopicRepository().Update(ctx, topic)
}

// RequestCaption queues asynchronous caption generation for a topic. The
// consumer worker picks the message up and summarizes the opening
// exchange.
func (c *topicService) RequestCaption(ctx context.Context, userId uuid.UUID, id uuid.UUID) error {
	uow := c.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return err
	}
	if topic == nil {
		return fmt.Errorf("topic not found")
	}

	payload := dto.PublishCaptionMessage{TopicId: id}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return c.publisherService.Publish(ctx, payloadJson)
}
