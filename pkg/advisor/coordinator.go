package advisor

import (
	"context"
	"strings"
)

// TurnState enumerates the per-turn state machine. One conditional
// branch point exists (intent), the rest of the pipeline is a straight
// line; transitions are driven by runTurn.
type TurnState int

const (
	StateStart TurnState = iota
	StateRequirementUpdate
	StateIntentClassification
	StateGeneration
	StateCommit
	StateFailed
)

func (s TurnState) String() string {
	switch s {
	case StateStart:
		return "start"
	case StateRequirementUpdate:
		return "requirement_update"
	case StateIntentClassification:
		return "intent_classification"
	case StateGeneration:
		return "generation"
	case StateCommit:
		return "commit"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Coordinator sequences one turn through requirement extraction, intent
// classification and branch generation, streaming fragments to the
// caller and committing the exchange exactly once.
//
// Persistence-on-failure policy: the user turn is committed when the
// turn enters Generation. A generation failure therefore leaves an
// unanswered user turn in history, which the next turn's extraction
// runs against.
type Coordinator struct {
	sessions   *Accessor
	profiles   ProfileStore
	extractor  RequirementExtractor
	classifier IntentClassifier
	generator  ResponseGenerator
	logger     Logger
}

func NewCoordinator(
	sessions *Accessor,
	profiles ProfileStore,
	extractor RequirementExtractor,
	classifier IntentClassifier,
	generator ResponseGenerator,
	logger Logger,
) *Coordinator {
	return &Coordinator{
		sessions:   sessions,
		profiles:   profiles,
		extractor:  extractor,
		classifier: classifier,
		generator:  generator,
		logger:     logger,
	}
}

// StreamTurn runs the full state machine for one utterance.
//
// Pre-stream rejections (empty utterance, missing profile, extraction
// failure) return an error without emitting any event. Once streaming
// has begun, failures surface as a single terminal error event plus the
// returned error; already-delivered fragments are never retracted.
func (c *Coordinator) StreamTurn(ctx context.Context, req TurnRequest, sink EventSink) (*TurnResult, error) {
	if strings.TrimSpace(req.Utterance) == "" {
		return nil, ErrEmptyUtterance
	}

	handle, err := c.sessions.Acquire(ctx, req.TopicID, req.UserID)
	if err != nil {
		return nil, err
	}
	defer handle.Release()

	userInfo, err := c.profiles.GetUserInfo(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	history, err := handle.History(ctx)
	if err != nil {
		return nil, &PersistenceError{Err: err}
	}

	return c.runTurn(ctx, req, handle, userInfo, history, sink)
}

// runTurn is the explicit transition function. Each iteration executes
// the current state and selects the next; Commit and Failed are
// terminal.
func (c *Coordinator) runTurn(
	ctx context.Context,
	req TurnRequest,
	handle *Handle,
	userInfo UserInfo,
	history []Turn,
	sink EventSink,
) (*TurnResult, error) {
	mux := NewMultiplexer(sink)
	state := StateStart
	intent := IntentChitchat
	var genErr error

	// History as seen by classification and generation: prior turns plus
	// the new utterance.
	turnHistory := append(append([]Turn(nil), history...), Turn{Role: TurnRoleUser, Content: req.Utterance})

	for {
		switch state {
		case StateStart:
			state = StateRequirementUpdate

		case StateRequirementUpdate:
			merged, err := c.extractor.Extract(ctx, userInfo.Requirement, history, req.Utterance)
			if err != nil {
				c.logger.Error("Coordinator", "requirement extraction failed", map[string]interface{}{
					"topic_id": req.TopicID, "error": err.Error(),
				})
				return nil, err
			}
			userInfo.Requirement = merged
			if err := c.profiles.UpdateRequirement(ctx, req.UserID, merged); err != nil {
				return nil, &PersistenceError{Err: err}
			}
			state = StateIntentClassification

		case StateIntentClassification:
			intent = c.classifyIntent(ctx, turnHistory)
			c.logger.Info("Coordinator", "intent resolved", map[string]interface{}{
				"topic_id": req.TopicID, "intent": string(intent),
			})
			state = StateGeneration

		case StateGeneration:
			// The user turn is committed before generation starts (see
			// policy above). From here on, failures stream as events.
			if err := handle.Append(ctx, TurnRoleUser, req.Utterance); err != nil {
				return nil, &PersistenceError{Err: err}
			}
			genErr = c.generator.Generate(ctx, intent, userInfo, turnHistory, mux.Relay)
			if genErr != nil {
				state = StateFailed
			} else {
				state = StateCommit
			}

		case StateCommit:
			// Zero fragments is still a success: an empty assistant turn
			// is committed.
			if err := handle.Append(ctx, TurnRoleAssistant, mux.Answer()); err != nil {
				perr := &PersistenceError{Err: err}
				mux.EmitError(perr)
				return nil, perr
			}
			return &TurnResult{
				Intent:    intent,
				Answer:    mux.Answer(),
				Fragments: mux.Fragments(),
			}, nil

		case StateFailed:
			gerr := &GenerationError{Err: genErr}
			c.logger.Warn("Coordinator", "generation failed", map[string]interface{}{
				"topic_id": req.TopicID, "error": genErr.Error(),
			})
			mux.EmitError(gerr)
			return nil, gerr
		}
	}
}

// classifyIntent normalizes the provider label. Ambiguous or failed
// classification never blocks a turn: anything that does not contain
// the advisory token routes to chitchat.
func (c *Coordinator) classifyIntent(ctx context.Context, history []Turn) Intent {
	label, err := c.classifier.Classify(ctx, history)
	if err != nil {
		c.logger.Warn("Coordinator", "classification failed, defaulting to chitchat", map[string]interface{}{
			"error": err.Error(),
		})
		return IntentChitchat
	}
	if strings.Contains(strings.ToLower(label), string(IntentAdvisory)) {
		return IntentAdvisory
	}
	return IntentChitchat
}
