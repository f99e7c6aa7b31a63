package contract

import (
	"context"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/specification"

	"github.com/google/uuid"
)

type TopicRepository interface {
	Create(ctx context.Context, topic *entity.Topic) error
	Update(ctx context.Context, topic *entity.Topic) error
	// Touch advances updated_at; called inside the transaction that
	// appends a message so the two always move together.
	Touch(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Topic, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Topic, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
