package service

import (
	"context"
	"fmt"
	"time"

	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/pkg/logger"
	"ai-advisor-be/internal/repository/memory"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/internal/repository/unitofwork"
	"ai-advisor-be/pkg/advisor"
	"ai-advisor-be/pkg/advisor/capability"
	"ai-advisor-be/pkg/events"
	"ai-advisor-be/pkg/llm"
	pktNats "ai-advisor-be/pkg/nats"

	"github.com/google/uuid"
)

type IChatService interface {
	StreamTurn(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, sink advisor.EventSink) (*advisor.TurnResult, error)
	AppendMessage(ctx context.Context, userId uuid.UUID, req *dto.AppendMessageRequest) (*dto.AppendMessageResponse, error)
	GetChatHistory(ctx context.Context, userId uuid.UUID, topicId uuid.UUID) ([]*dto.GetChatHistoryResponse, error)
}

type chatService struct {
	uowFactory     unitofwork.RepositoryFactory
	coordinator    *advisor.Coordinator
	eventPublisher *pktNats.Publisher
	logger         logger.ILogger
}

func NewChatService(
	uowFactory unitofwork.RepositoryFactory,
	profileCache *memory.ProfileCache,
	llmProvider llm.LLMProvider,
	eventPublisher *pktNats.Publisher,
	sysLogger logger.ILogger,
) IChatService {
	store := &historyStore{uowFactory: uowFactory}
	profiles := &profileStore{uowFactory: uowFactory, cache: profileCache}

	coordinator := advisor.NewCoordinator(
		advisor.NewAccessor(store),
		profiles,
		capability.NewRequirementExtractor(llmProvider),
		capability.NewIntentClassifier(llmProvider),
		capability.NewResponseGenerator(llmProvider),
		sysLogger,
	)

	return &chatService{
		uowFactory:     uowFactory,
		coordinator:    coordinator,
		eventPublisher: eventPublisher,
		logger:         sysLogger,
	}
}

func (cs *chatService) StreamTurn(ctx context.Context, userId uuid.UUID, req *dto.SendChatRequest, sink advisor.EventSink) (*advisor.TurnResult, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx,
		specification.ByID{ID: req.TopicId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, fmt.Errorf("topic not found")
	}

	result, err := cs.coordinator.StreamTurn(ctx, advisor.TurnRequest{
		TopicID:   req.TopicId,
		UserID:    userId,
		Utterance: req.Content,
	}, sink)
	if err != nil {
		return nil, err
	}

	// Notify listeners that the exchange landed. Auxiliary, so a publish
	// failure is logged but never fails the turn.
	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "TURN_COMMITTED",
			Data: map[string]interface{}{
				"topic_id": req.TopicId,
				"user_id":  userId,
				"intent":   string(result.Intent),
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			cs.logger.Warn("ChatService", "failed to publish TURN_COMMITTED event", map[string]interface{}{"error": err.Error()})
		}
	}

	return result, nil
}

// AppendMessage writes a raw turn directly, skipping the advisory
// pipeline. The topic's updated_at advances in the same transaction so
// listing order stays consistent with streamed turns.
func (cs *chatService) AppendMessage(ctx context.Context, userId uuid.UUID, req *dto.AppendMessageRequest) (*dto.AppendMessageResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx,
		specification.ByID{ID: req.TopicId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, fmt.Errorf("topic not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	msg := entity.Message{
		Id:          uuid.New(),
		TopicId:     req.TopicId,
		UserId:      userId,
		MessageType: req.MessageType,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &msg); err != nil {
		return nil, err
	}
	if err := uow.TopicRepository().Touch(ctx, req.TopicId); err != nil {
		return nil, err
	}
	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return &dto.AppendMessageResponse{Id: msg.Id}, nil
}

func (cs *chatService) GetChatHistory(ctx context.Context, userId uuid.UUID, topicId uuid.UUID) ([]*dto.GetChatHistoryResponse, error) {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx,
		specification.ByID{ID: topicId},
		specification.UserOwnedBy{UserID: userId},
	)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, fmt.Errorf("topic not found")
	}

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByTopicID{TopicID: topicId},
		specification.OrderBy{Field: "seq"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.GetChatHistoryResponse, 0, len(messages))
	for _, msg := range messages {
		result = append(result, &dto.GetChatHistoryResponse{
			Id:          msg.Id,
			MessageType: msg.MessageType,
			Content:     msg.Content,
			CreatedAt:   msg.CreatedAt,
		})
	}
	return result, nil
}

// historyStore adapts the unit-of-work repositories to the turn
// pipeline's history contract. AppendTurn writes the message and
// advances the topic's updated_at in one transaction.
type historyStore struct {
	uowFactory unitofwork.RepositoryFactory
}

func (s *historyStore) History(ctx context.Context, topicID uuid.UUID) ([]advisor.Turn, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	messages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByTopicID{TopicID: topicID},
		specification.OrderBy{Field: "seq"},
	)
	if err != nil {
		return nil, err
	}

	turns := make([]advisor.Turn, 0, len(messages))
	for _, msg := range messages {
		turns = append(turns, advisor.Turn{
			Role:    msg.MessageType,
			Content: msg.Content,
		})
	}
	return turns, nil
}

func (s *historyStore) AppendTurn(ctx context.Context, topicID, userID uuid.UUID, role, content string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	msg := entity.Message{
		Id:          uuid.New(),
		TopicId:     topicID,
		UserId:      userID,
		MessageType: role,
		Content:     content,
		CreatedAt:   time.Now(),
	}
	if err := uow.MessageRepository().Create(ctx, &msg); err != nil {
		return err
	}
	if err := uow.TopicRepository().Touch(ctx, topicID); err != nil {
		return err
	}

	return uow.Commit()
}

// profileStore serves profile snapshots, reading through the in-memory
// cache. Requirement writes invalidate the cached snapshot.
type profileStore struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *memory.ProfileCache
}

func (s *profileStore) GetUserInfo(ctx context.Context, userID uuid.UUID) (advisor.UserInfo, error) {
	profile, ok := s.cache.Get(userID)
	if !ok {
		uow := s.uowFactory.NewUnitOfWork(ctx)
		var err error
		profile, err = uow.ProfileRepository().FindByUserId(ctx, userID)
		if err != nil {
			return advisor.UserInfo{}, err
		}
		if profile == nil {
			return advisor.UserInfo{}, advisor.ErrProfileNotFound
		}
		s.cache.Save(profile)
	}

	return advisor.UserInfo{
		Province:    profile.Province,
		Score:       profile.Score,
		Subjects:    profile.SubjectChoice,
		Requirement: profile.Requirement,
	}, nil
}

func (s *profileStore) UpdateRequirement(ctx context.Context, userID uuid.UUID, requirement string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.ProfileRepository().UpdateRequirement(ctx, userID, requirement); err != nil {
		return err
	}
	s.cache.Invalidate(userID)
	return nil
}

var _ advisor.HistoryStore = (*historyStore)(nil)
var _ advisor.ProfileStore = (*profileStore)(nil)
