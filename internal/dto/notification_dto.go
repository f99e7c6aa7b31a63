package dto

import (
	"time"

	"github.com/google/uuid"
)

// TopicNotice is a push-only realtime notification about topic
// activity. Notices are not persisted; a client that is offline simply
// misses them and resyncs from the topic list.
type TopicNotice struct {
	TypeCode  string                 `json:"type_code"`
	TopicId   uuid.UUID              `json:"topic_id"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}
