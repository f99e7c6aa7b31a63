package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"ai-advisor-be/internal/constant"
	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/repository/specification"
	"ai-advisor-be/internal/repository/unitofwork"
	"ai-advisor-be/pkg/events"
	"ai-advisor-be/pkg/llm"
	pktNats "ai-advisor-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const maxCaptionRunes = 10

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	uowFactory     unitofwork.RepositoryFactory
	llmProvider    llm.LLMProvider
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	llmProvider llm.LLMProvider,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		uowFactory:     uowFactory,
		llmProvider:    llmProvider,
		eventPublisher: eventPublisher,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishCaptionMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal caption message: %v", err)
		msg.Ack() // invalid payload, retrying will not help
		return
	}

	log.Printf("[INFO] Generating caption for topic: %s", payload.TopicId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	topic, err := uow.TopicRepository().FindOne(ctx, specification.ByID{ID: payload.TopicId})
	if err != nil {
		log.Printf("[ERROR] Failed to get topic %s: %v", payload.TopicId, err)
		msg.Nack()
		return
	}
	if topic == nil {
		log.Printf("[WARN] Topic not found, skipping caption: %s", payload.TopicId)
		msg.Ack()
		return
	}

	// Summarize the opening of the conversation.
	firstMessages, err := uow.MessageRepository().FindAll(ctx,
		specification.ByTopicID{TopicID: payload.TopicId},
		specification.OrderBy{Field: "seq"},
		specification.Pagination{Limit: 2, Offset: 0},
	)
	if err != nil {
		log.Printf("[ERROR] Failed to load messages for topic %s: %v", payload.TopicId, err)
		msg.Nack()
		return
	}
	if len(firstMessages) == 0 {
		log.Printf("[WARN] Topic %s has no messages yet, skipping caption", payload.TopicId)
		msg.Ack()
		return
	}

	seed := firstMessages[0].Content
	caption := cs.generateCaption(ctx, seed)

	topic.Caption = caption
	if err := uow.TopicRepository().Update(ctx, topic); err != nil {
		log.Printf("[ERROR] Failed to save caption for topic %s: %v", payload.TopicId, err)
		msg.Nack()
		return
	}

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "TOPIC_CAPTION_UPDATED",
			Data: map[string]interface{}{
				"topic_id": topic.Id,
				"user_id":  topic.UserId,
				"caption":  caption,
			},
			OccurredAt: time.Now(),
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			log.Printf("[WARN] Failed to publish TOPIC_CAPTION_UPDATED: %v", err)
		}
	}

	msg.Ack()
}

// generateCaption asks the model for a short caption. Model failure or
// an over-long answer falls back to truncating the seed text.
func (cs *consumerService) generateCaption(ctx context.Context, seed string) string {
	history := []llm.Message{
		{Role: constant.ChatRoleSystem, Content: constant.CaptionPromptV1},
		{Role: constant.ChatRoleUser, Content: fmt.Sprintf(constant.CaptionUserPromptV1, seed)},
	}

	caption, err := cs.llmProvider.Chat(ctx, history, llm.WithTemperature(0.3))
	if err != nil {
		log.Printf("[WARN] Caption generation failed, using fallback: %v", err)
		return fallbackCaption(seed)
	}

	caption = strings.TrimSpace(caption)
	if caption == "" || len([]rune(caption)) > maxCaptionRunes {
		return fallbackCaption(seed)
	}
	return caption
}

func fallbackCaption(seed string) string {
	runes := []rune(strings.TrimSpace(seed))
	if len(runes) <= 20 {
		return string(runes)
	}
	return string(runes[:20]) + "..."
}
