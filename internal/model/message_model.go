package model

import (
	"time"

	"github.com/google/uuid"
)

// Message rows are append-only; Seq is a database-assigned serial that
// totally orders turns (created_at alone is not collision-free).
type Message struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TopicId     uuid.UUID `gorm:"type:uuid;not null;index"`
	UserId      uuid.UUID `gorm:"type:uuid;not null"`
	MessageType string    `gorm:"type:varchar(20);not null"`
	Content     string    `gorm:"type:text;not null"`
	Seq         int64     `gorm:"autoIncrement;uniqueIndex"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

func (Message) TableName() string {
	return "messages"
}
