package entity

import (
	"time"

	"github.com/google/uuid"
)

// Message is one committed turn of a topic. Seq is assigned by the
// database and totally orders turns within a topic.
type Message struct {
	Id          uuid.UUID
	TopicId     uuid.UUID
	UserId      uuid.UUID
	MessageType string // "user" | "ai"
	Content     string
	Seq         int64
	CreatedAt   time.Time
}
