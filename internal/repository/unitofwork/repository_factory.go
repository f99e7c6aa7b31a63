package unitofwork

import "context"

// RepositoryFactory hands out a fresh UnitOfWork per request or
// message, each holding the topic, message, profile and college
// repositories over one shared connection.
type RepositoryFactory interface {
	NewUnitOfWork(ctx context.Context) UnitOfWork
}
