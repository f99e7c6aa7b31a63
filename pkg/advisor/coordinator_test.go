package advisor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Deterministic in-memory stores and providers.

type memHistory struct {
	mu    sync.Mutex
	turns map[uuid.UUID][]Turn
}

func newMemHistory() *memHistory {
	return &memHistory{turns: make(map[uuid.UUID][]Turn)}
}

func (m *memHistory) History(ctx context.Context, topicID uuid.UUID) ([]Turn, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Turn(nil), m.turns[topicID]...), nil
}

func (m *memHistory) AppendTurn(ctx context.Context, topicID, userID uuid.UUID, role, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.turns[topicID] = append(m.turns[topicID], Turn{Role: role, Content: content})
	return nil
}

func (m *memHistory) count(topicID uuid.UUID) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.turns[topicID])
}

func (m *memHistory) last(topicID uuid.UUID) Turn {
	m.mu.Lock()
	defer m.mu.Unlock()
	turns := m.turns[topicID]
	return turns[len(turns)-1]
}

type memProfiles struct {
	mu   sync.Mutex
	info map[uuid.UUID]UserInfo
}

func newMemProfiles() *memProfiles {
	return &memProfiles{info: make(map[uuid.UUID]UserInfo)}
}

func (m *memProfiles) GetUserInfo(ctx context.Context, userID uuid.UUID) (UserInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	info, ok := m.info[userID]
	if !ok {
		return UserInfo{}, ErrProfileNotFound
	}
	return info, nil
}

func (m *memProfiles) UpdateRequirement(ctx context.Context, userID uuid.UUID, requirement string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	info := m.info[userID]
	info.Requirement = requirement
	m.info[userID] = info
	return nil
}

func (m *memProfiles) requirement(userID uuid.UUID) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info[userID].Requirement
}

type stubExtractor struct {
	merged string
	err    error
}

func (s *stubExtractor) Extract(ctx context.Context, requirement string, history []Turn, utterance string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.merged, nil
}

type stubClassifier struct {
	label string
	err   error
}

func (s *stubClassifier) Classify(ctx context.Context, history []Turn) (string, error) {
	return s.label, s.err
}

// stubGenerator emits its fragments, optionally failing after a prefix.
// gate, when set, blocks generation until released; used to hold a
// topic lock across goroutines.
type stubGenerator struct {
	fragments []Fragment
	failAfter int // -1 = never fail
	gate      chan struct{}

	mu      sync.Mutex
	intents []Intent
}

func (s *stubGenerator) Generate(ctx context.Context, intent Intent, user UserInfo, history []Turn, emit func(Fragment) error) error {
	s.mu.Lock()
	s.intents = append(s.intents, intent)
	s.mu.Unlock()

	if s.gate != nil {
		<-s.gate
	}
	for i, f := range s.fragments {
		if s.failAfter >= 0 && i == s.failAfter {
			return errors.New("provider connection reset")
		}
		if err := emit(f); err != nil {
			return err
		}
	}
	if s.failAfter >= 0 && s.failAfter >= len(s.fragments) {
		return errors.New("provider connection reset")
	}
	return nil
}

// failingHistory delegates to memHistory but fails appends for one
// role, simulating a store outage at a chosen commit point.
type failingHistory struct {
	*memHistory
	failRole string
}

func (f *failingHistory) AppendTurn(ctx context.Context, topicID, userID uuid.UUID, role, content string) error {
	if role == f.failRole {
		return errors.New("connection refused")
	}
	return f.memHistory.AppendTurn(ctx, topicID, userID, role, content)
}

type nopLogger struct{}

func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{}) {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {
}

type fixture struct {
	history    *memHistory
	profiles   *memProfiles
	extractor  *stubExtractor
	classifier *stubClassifier
	generator  *stubGenerator
	coord      *Coordinator
	userID     uuid.UUID
	topicID    uuid.UUID
}

func newFixture() *fixture {
	f := &fixture{
		history:    newMemHistory(),
		profiles:   newMemProfiles(),
		extractor:  &stubExtractor{merged: "- 想学计算机"},
		classifier: &stubClassifier{label: "advisory"},
		generator:  &stubGenerator{failAfter: -1},
		userID:     uuid.New(),
		topicID:    uuid.New(),
	}
	f.profiles.info[f.userID] = UserInfo{
		Province: "北京",
		Score:    650,
		Subjects: []string{"物理", "化学", "生物"},
	}
	f.coord = NewCoordinator(
		NewAccessor(f.history),
		f.profiles,
		f.extractor,
		f.classifier,
		f.generator,
		nopLogger{},
	)
	return f
}

func (f *fixture) request(utterance string) TurnRequest {
	return TurnRequest{TopicID: f.topicID, UserID: f.userID, Utterance: utterance}
}

func collectSink(events *[]OutputEvent) EventSink {
	return func(event OutputEvent) error {
		*events = append(*events, event)
		return nil
	}
}

func TestStreamTurnCommitsBothTurns(t *testing.T) {
	f := newFixture()
	f.generator.fragments = []Fragment{
		{Kind: FragmentReasoning, Text: "用户想学计算机，"},
		{Kind: FragmentReasoning, Text: "分数650可以冲刺顶尖院校。"},
		{Kind: FragmentAnswer, Text: "推荐清华大学计算机系"},
		{Kind: FragmentAnswer, Text: "和北京大学信息科学技术学院。"},
	}

	var events []OutputEvent
	result, err := f.coord.StreamTurn(context.Background(), f.request("我想学计算机，最好在北京"), collectSink(&events))
	require.NoError(t, err)

	assert.Equal(t, IntentAdvisory, result.Intent)
	assert.Equal(t, "推荐清华大学计算机系和北京大学信息科学技术学院。", result.Answer)
	assert.Equal(t, 4, result.Fragments)

	// Exactly one user and one assistant record, in order.
	require.Equal(t, 2, f.history.count(f.topicID))
	turns, _ := f.history.History(context.Background(), f.topicID)
	assert.Equal(t, Turn{Role: TurnRoleUser, Content: "我想学计算机，最好在北京"}, turns[0])
	assert.Equal(t, TurnRoleAssistant, turns[1].Role)
	assert.Equal(t, result.Answer, turns[1].Content)

	// Events arrive in fragment order, reasoning tagged separately.
	require.Len(t, events, 4)
	assert.Equal(t, EventReasoning, events[0].Type)
	assert.Equal(t, EventReasoning, events[1].Type)
	assert.Equal(t, EventAnswer, events[2].Type)
	assert.Equal(t, EventAnswer, events[3].Type)

	// The merged requirement was persisted before generation.
	assert.Equal(t, "- 想学计算机", f.profiles.requirement(f.userID))
}

func TestStreamTurnRejectsEmptyUtterance(t *testing.T) {
	f := newFixture()

	for _, utterance := range []string{"", "   ", "\n\t"} {
		var events []OutputEvent
		_, err := f.coord.StreamTurn(context.Background(), f.request(utterance), collectSink(&events))
		assert.ErrorIs(t, err, ErrEmptyUtterance)
		assert.Empty(t, events, "no events before streaming starts")
		assert.Zero(t, f.history.count(f.topicID))
	}
}

func TestStreamTurnRejectsMissingProfile(t *testing.T) {
	f := newFixture()
	req := f.request("你好")
	req.UserID = uuid.New() // no profile stored

	var events []OutputEvent
	_, err := f.coord.StreamTurn(context.Background(), req, collectSink(&events))
	assert.ErrorIs(t, err, ErrProfileNotFound)
	assert.Empty(t, events)
	assert.Zero(t, f.history.count(f.topicID))
}

func TestIntentNormalization(t *testing.T) {
	tests := []struct {
		name  string
		label string
		err   error
		want  Intent
	}{
		{"exact advisory", "advisory", nil, IntentAdvisory},
		{"uppercase", "ADVISORY", nil, IntentAdvisory},
		{"verbose label", "The intent is advisory.", nil, IntentAdvisory},
		{"chitchat", "chitchat", nil, IntentChitchat},
		{"empty label", "", nil, IntentChitchat},
		{"garbage", "我不知道", nil, IntentChitchat},
		{"classifier error", "", errors.New("timeout"), IntentChitchat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			f.classifier.label = tt.label
			f.classifier.err = tt.err
			f.generator.fragments = []Fragment{{Kind: FragmentAnswer, Text: "ok"}}

			var events []OutputEvent
			result, err := f.coord.StreamTurn(context.Background(), f.request("hi"), collectSink(&events))
			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Intent)
		})
	}
}

func TestGenerationFailureKeepsUserTurn(t *testing.T) {
	f := newFixture()
	f.generator.fragments = []Fragment{
		{Kind: FragmentAnswer, Text: "推荐"},
		{Kind: FragmentAnswer, Text: "清华大学"},
	}
	f.generator.failAfter = 2 // fail after both fragments delivered

	var events []OutputEvent
	_, err := f.coord.StreamTurn(context.Background(), f.request("推荐大学"), collectSink(&events))

	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)

	// Delivered fragments stand, followed by the single terminal error.
	require.Len(t, events, 3)
	assert.Equal(t, EventAnswer, events[0].Type)
	assert.Equal(t, EventAnswer, events[1].Type)
	assert.Equal(t, EventError, events[2].Type)

	// User turn committed, no assistant turn.
	require.Equal(t, 1, f.history.count(f.topicID))
	assert.Equal(t, TurnRoleUser, f.history.last(f.topicID).Role)
}

func TestAssistantCommitFailureEmitsErrorEvent(t *testing.T) {
	f := newFixture()
	f.generator.fragments = []Fragment{{Kind: FragmentAnswer, Text: "推荐清华大学"}}

	// The store accepts the user turn but fails the assistant commit:
	// the caller has already received the full answer when the turn fails.
	store := &failingHistory{memHistory: f.history, failRole: TurnRoleAssistant}
	f.coord = NewCoordinator(
		NewAccessor(store),
		f.profiles,
		f.extractor,
		f.classifier,
		f.generator,
		nopLogger{},
	)

	var events []OutputEvent
	_, err := f.coord.StreamTurn(context.Background(), f.request("推荐大学"), collectSink(&events))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)

	// The delivered answer stands, followed by a single terminal error.
	require.Len(t, events, 2)
	assert.Equal(t, EventAnswer, events[0].Type)
	assert.Equal(t, EventError, events[1].Type)

	// Only the user turn is committed; history shows an unanswered turn.
	require.Equal(t, 1, f.history.count(f.topicID))
	assert.Equal(t, TurnRoleUser, f.history.last(f.topicID).Role)
}

func TestUserCommitFailureAbortsBeforeStreaming(t *testing.T) {
	f := newFixture()
	f.generator.fragments = []Fragment{{Kind: FragmentAnswer, Text: "x"}}

	store := &failingHistory{memHistory: f.history, failRole: TurnRoleUser}
	f.coord = NewCoordinator(
		NewAccessor(store),
		f.profiles,
		f.extractor,
		f.classifier,
		f.generator,
		nopLogger{},
	)

	var events []OutputEvent
	_, err := f.coord.StreamTurn(context.Background(), f.request("推荐大学"), collectSink(&events))

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)

	// The user turn is committed before generation starts, so nothing
	// streamed and nothing is recorded.
	assert.Empty(t, events)
	assert.Zero(t, f.history.count(f.topicID))
}

func TestEmptyGenerationCommitsEmptyAssistantTurn(t *testing.T) {
	f := newFixture()
	f.generator.fragments = nil

	var events []OutputEvent
	result, err := f.coord.StreamTurn(context.Background(), f.request("你好"), collectSink(&events))
	require.NoError(t, err)

	assert.Empty(t, events)
	assert.Equal(t, "", result.Answer)
	assert.Zero(t, result.Fragments)

	require.Equal(t, 2, f.history.count(f.topicID))
	last := f.history.last(f.topicID)
	assert.Equal(t, TurnRoleAssistant, last.Role)
	assert.Equal(t, "", last.Content)
}

func TestExtractionFailureAbortsBeforeStreaming(t *testing.T) {
	f := newFixture()
	f.extractor.err = errors.New("model unavailable")

	var events []OutputEvent
	_, err := f.coord.StreamTurn(context.Background(), f.request("我想去上海"), collectSink(&events))
	require.Error(t, err)
	assert.Empty(t, events)
	assert.Zero(t, f.history.count(f.topicID))
}

func TestConcurrentTurnsOnSameTopicSerialize(t *testing.T) {
	f := newFixture()
	f.generator.fragments = []Fragment{{Kind: FragmentAnswer, Text: "答复"}}
	gate := make(chan struct{})
	f.generator.gate = gate

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var events []OutputEvent
			_, errs[i] = f.coord.StreamTurn(context.Background(), f.request("并发提问"), collectSink(&events))
		}(i)
	}

	// Both turns target one topic: only one can be generating at a time,
	// so two gate releases let both finish.
	gate <- struct{}{}
	gate <- struct{}{}
	wg.Wait()

	require.NoError(t, errs[0])
	require.NoError(t, errs[1])

	// Two complete exchanges with no interleaving: user/ai alternate.
	turns, _ := f.history.History(context.Background(), f.topicID)
	require.Len(t, turns, 4)
	assert.Equal(t, TurnRoleUser, turns[0].Role)
	assert.Equal(t, TurnRoleAssistant, turns[1].Role)
	assert.Equal(t, TurnRoleUser, turns[2].Role)
	assert.Equal(t, TurnRoleAssistant, turns[3].Role)
}

func TestStreamTurnAcquireHonorsContext(t *testing.T) {
	f := newFixture()
	f.generator.fragments = []Fragment{{Kind: FragmentAnswer, Text: "x"}}
	gate := make(chan struct{})
	f.generator.gate = gate

	started := make(chan struct{})
	go func() {
		close(started)
		var events []OutputEvent
		f.coord.StreamTurn(context.Background(), f.request("第一轮"), collectSink(&events))
	}()
	<-started
	time.Sleep(20 * time.Millisecond) // let the first turn take the lock

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	var events []OutputEvent
	_, err := f.coord.StreamTurn(ctx, f.request("第二轮"), collectSink(&events))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, events)

	gate <- struct{}{} // release the first turn
}
