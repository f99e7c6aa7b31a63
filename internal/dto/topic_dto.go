package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTopicRequest struct {
	Caption string `json:"caption"`
}

type CreateTopicResponse struct {
	Id      uuid.UUID `json:"id"`
	Caption string    `json:"caption"`
}

type GetAllTopicsResponse struct {
	Id        uuid.UUID  `json:"id"`
	Caption   string     `json:"caption"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type DeleteTopicRequest struct {
	Id uuid.UUID `json:"id" validate:"required"`
}
