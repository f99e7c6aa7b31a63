package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	TopicId uuid.UUID `json:"topic_id" validate:"required"`
	Content string    `json:"content" validate:"required"`
}

// AppendMessageRequest inserts a raw turn without running the advisory
// pipeline, e.g. when importing a conversation.
type AppendMessageRequest struct {
	TopicId     uuid.UUID `json:"topic_id" validate:"required"`
	MessageType string    `json:"message_type" validate:"required,oneof=user ai"`
	Content     string    `json:"content" validate:"required"`
}

type AppendMessageResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetChatHistoryResponse struct {
	Id          uuid.UUID `json:"id"`
	MessageType string    `json:"message_type"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
}

// PublishCaptionMessage is the payload for asynchronous caption generation.
type PublishCaptionMessage struct {
	TopicId uuid.UUID `json:"topic_id"`
}
