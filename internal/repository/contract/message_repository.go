package contract

import (
	"context"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/specification"
)

// MessageRepository is append-only from the core's point of view; no
// update or delete operations are exposed.
type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Message, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
