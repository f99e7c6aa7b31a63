package entity

import (
	"time"

	"github.com/google/uuid"
)

type Topic struct {
	Id        uuid.UUID
	UserId    uuid.UUID
	Caption   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
