package contract

import (
	"context"

	"ai-advisor-be/internal/entity"
	"ai-advisor-be/internal/repository/specification"
)

type CollegeRepository interface {
	Create(ctx context.Context, college *entity.College) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.College, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
