package unitofwork

import (
	"context"

	"ai-advisor-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	TopicRepository() contract.TopicRepository
	MessageRepository() contract.MessageRepository
	ProfileRepository() contract.ProfileRepository
	CollegeRepository() contract.CollegeRepository
}
