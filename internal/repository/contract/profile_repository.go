package contract

import (
	"context"

	"ai-advisor-be/internal/entity"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	Update(ctx context.Context, profile *entity.Profile) error
	UpdateRequirement(ctx context.Context, userId uuid.UUID, requirement string) error
	FindByUserId(ctx context.Context, userId uuid.UUID) (*entity.Profile, error)
}
