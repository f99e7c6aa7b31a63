package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-advisor-be/internal/dto"
	"ai-advisor-be/internal/pkg/logger"
	"ai-advisor-be/pkg/events"
	pktNats "ai-advisor-be/pkg/nats"

	"github.com/google/uuid"
)

// NoticeDelivery defines how realtime updates reach connected clients.
// Implemented by the websocket Hub.
type NoticeDelivery interface {
	Send(userID uuid.UUID, notice dto.TopicNotice)
	Broadcast(notice dto.TopicNotice)
}

// NotificationService bridges the NATS event bus to websocket clients.
// Notices are ephemeral: they are pushed to whoever is connected and
// never stored.
type NotificationService struct {
	subscriber *pktNats.Subscriber
	delivery   NoticeDelivery
	logger     logger.ILogger
}

func NewNotificationService(sub *pktNats.Subscriber, delivery NoticeDelivery, log logger.ILogger) *NotificationService {
	return &NotificationService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	err := s.subscriber.Subscribe("events.>", "advisor-notifier", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	// NATS subjects include the "events." prefix.
	typeCode := strings.TrimPrefix(event.EventType(), "events.")
	payload := event.Payload()

	notice := dto.TopicNotice{
		TypeCode:  typeCode,
		Message:   noticeMessage(typeCode, payload),
		Metadata:  payload,
		CreatedAt: time.Now(),
	}

	if topicIDStr, ok := payload["topic_id"].(string); ok {
		if tid, err := uuid.Parse(topicIDStr); err == nil {
			notice.TopicId = tid
		}
	}

	userIDStr, ok := payload["user_id"].(string)
	if !ok {
		s.logger.Warn("NotificationService", fmt.Sprintf("Event %s has no user_id, skipping", typeCode), nil)
		return nil
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		s.logger.Warn("NotificationService", "Invalid user_id in event payload", map[string]interface{}{"user_id": userIDStr})
		return nil
	}

	if s.delivery != nil {
		s.delivery.Send(userID, notice)
	}
	return nil
}

func noticeMessage(typeCode string, payload map[string]interface{}) string {
	switch typeCode {
	case "TURN_COMMITTED":
		return "会话已更新"
	case "TOPIC_CAPTION_UPDATED":
		if caption, ok := payload["caption"].(string); ok && caption != "" {
			return fmt.Sprintf("话题已重命名为「%s」", caption)
		}
		return "话题标题已更新"
	default:
		return typeCode
	}
}
