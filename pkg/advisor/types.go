package advisor

import (
	"github.com/google/uuid"
)

// Intent is the branch selected for response generation.
type Intent string

const (
	IntentAdvisory Intent = "advisory"
	IntentChitchat Intent = "chitchat"
)

// FragmentKind tags a piece of generated output.
type FragmentKind string

const (
	FragmentAnswer    FragmentKind = "answer"
	FragmentReasoning FragmentKind = "reasoning"
)

// Fragment is one incremental unit of generated content.
type Fragment struct {
	Kind FragmentKind
	Text string
}

// Event kinds on the caller-facing stream. Matches the SSE wire format:
// one event per frame, {"content": ..., "type": ...}.
const (
	EventAnswer    = "answer"
	EventReasoning = "reasoning"
	EventError     = "error"
)

// OutputEvent is one framed message delivered to the caller.
type OutputEvent struct {
	Content string `json:"content"`
	Type    string `json:"type"`
}

// EventSink receives output events in order. A sink error means the
// caller is gone; the turn is then cancelled best-effort.
type EventSink func(event OutputEvent) error

// Turn roles as stored in history.
const (
	TurnRoleUser      = "user"
	TurnRoleAssistant = "ai"
)

// Turn is one committed message of a topic's history.
type Turn struct {
	Role    string
	Content string
}

// UserInfo is the read-only profile snapshot a turn runs against.
type UserInfo struct {
	Province    string
	Score       int
	Subjects    []string
	Requirement string
}

// TurnRequest identifies one inbound utterance.
type TurnRequest struct {
	TopicID   uuid.UUID
	UserID    uuid.UUID
	Utterance string
}

// TurnResult summarizes a committed turn.
type TurnResult struct {
	Intent    Intent
	Answer    string
	Fragments int
}
