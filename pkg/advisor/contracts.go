package advisor

import (
	"context"

	"github.com/google/uuid"
)

// HistoryStore is the durable append-only log of turns per topic. The
// storage layer guarantees that an append also advances the topic's
// updated_at inside the same transaction.
type HistoryStore interface {
	History(ctx context.Context, topicID uuid.UUID) ([]Turn, error)
	AppendTurn(ctx context.Context, topicID, userID uuid.UUID, role, content string) error
}

// ProfileStore supplies the read-only profile snapshot at turn start and
// accepts the merged requirement narrative after extraction.
type ProfileStore interface {
	// GetUserInfo returns ErrProfileNotFound when the user has no profile.
	GetUserInfo(ctx context.Context, userID uuid.UUID) (UserInfo, error)
	UpdateRequirement(ctx context.Context, userID uuid.UUID, requirement string) error
}

// RequirementExtractor merges the new utterance into the accumulated
// requirement narrative. Conflicting statements supersede older entries;
// nothing is deleted.
type RequirementExtractor interface {
	Extract(ctx context.Context, requirement string, history []Turn, utterance string) (string, error)
}

// IntentClassifier labels the conversation. The raw label is normalized
// by the coordinator; any output that does not unambiguously match the
// advisory token routes to chitchat.
type IntentClassifier interface {
	Classify(ctx context.Context, history []Turn) (string, error)
}

// ResponseGenerator produces an ordered, finite, non-restartable
// fragment sequence for the selected branch. emit is called once per
// fragment from the generating goroutine; an emit error aborts the
// sequence.
type ResponseGenerator interface {
	Generate(ctx context.Context, intent Intent, user UserInfo, history []Turn, emit func(Fragment) error) error
}

// Logger is the minimal logging surface the core needs. Satisfied by
// the application's zap-backed ILogger.
type Logger interface {
	Info(module, message string, details map[string]interface{})
	Warn(module, message string, details map[string]interface{})
	Error(module, message string, details map[string]interface{})
}
