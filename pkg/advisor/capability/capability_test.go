package capability

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-advisor-be/pkg/advisor"
	"ai-advisor-be/pkg/llm"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider scripts responses and records the requests it saw.
type fakeProvider struct {
	chatResponse     string
	generateResponse string
	chunks           []llm.StreamChunk
	err              error

	lastHistory []llm.Message
	lastPrompt  string
}

func (f *fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.lastHistory = history
	return f.chatResponse, f.err
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	f.lastPrompt = prompt
	return f.generateResponse, f.err
}

func (f *fakeProvider) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, options ...llm.Option) error {
	f.lastHistory = history
	if f.err != nil {
		return f.err
	}
	for _, chunk := range f.chunks {
		if err := handler(chunk); err != nil {
			return err
		}
	}
	return nil
}

func TestExtractorMergesNarrative(t *testing.T) {
	provider := &fakeProvider{generateResponse: "- 想去北京\n- 想学计算机"}
	extractor := NewRequirementExtractor(provider)

	merged, err := extractor.Extract(context.Background(),
		"- 想去北京",
		[]advisor.Turn{{Role: advisor.TurnRoleUser, Content: "我想去北京"}},
		"我想学计算机",
	)
	require.NoError(t, err)
	assert.Equal(t, "- 想去北京\n- 想学计算机", merged)

	// Prompt carries the previous narrative, history and utterance.
	assert.Contains(t, provider.lastPrompt, "- 想去北京")
	assert.Contains(t, provider.lastPrompt, "user: 我想去北京")
	assert.Contains(t, provider.lastPrompt, "我想学计算机")
}

func TestExtractorKeepsNarrativeOnEmptyResult(t *testing.T) {
	provider := &fakeProvider{generateResponse: "   \n"}
	extractor := NewRequirementExtractor(provider)

	merged, err := extractor.Extract(context.Background(), "- 想去北京", nil, "嗯")
	require.NoError(t, err)
	assert.Equal(t, "- 想去北京", merged)
}

func TestExtractorPropagatesProviderError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("connection refused")}
	extractor := NewRequirementExtractor(provider)

	_, err := extractor.Extract(context.Background(), "", nil, "你好")
	assert.Error(t, err)
}

func TestClassifierReturnsRawLabel(t *testing.T) {
	provider := &fakeProvider{chatResponse: "advisory"}
	classifier := NewIntentClassifier(provider)

	label, err := classifier.Classify(context.Background(), []advisor.Turn{
		{Role: advisor.TurnRoleUser, Content: "推荐几所大学"},
	})
	require.NoError(t, err)
	assert.Equal(t, "advisory", label)

	// System prompt first, then the conversation.
	require.NotEmpty(t, provider.lastHistory)
	assert.Equal(t, "system", provider.lastHistory[0].Role)
	assert.Equal(t, "推荐几所大学", provider.lastHistory[1].Content)
}

func TestGeneratorAdvisoryBranchGroundsProfile(t *testing.T) {
	provider := &fakeProvider{chunks: []llm.StreamChunk{
		{Reasoning: "分数匹配中"},
		{Content: "推荐清华大学"},
	}}
	generator := NewResponseGenerator(provider)

	user := advisor.UserInfo{
		Province:    "北京",
		Score:       650,
		Subjects:    []string{"物理", "化学"},
		Requirement: "- 想学计算机",
	}

	var fragments []advisor.Fragment
	err := generator.Generate(context.Background(), advisor.IntentAdvisory, user, nil, func(f advisor.Fragment) error {
		fragments = append(fragments, f)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, fragments, 2)
	assert.Equal(t, advisor.FragmentReasoning, fragments[0].Kind)
	assert.Equal(t, advisor.FragmentAnswer, fragments[1].Kind)

	// The final user message carries the profile snapshot.
	last := provider.lastHistory[len(provider.lastHistory)-1]
	assert.Contains(t, last.Content, "北京")
	assert.Contains(t, last.Content, "650")
	assert.Contains(t, last.Content, "物理、化学")
	assert.Contains(t, last.Content, "- 想学计算机")
}

func TestGeneratorChitchatBranchSkipsProfile(t *testing.T) {
	provider := &fakeProvider{chunks: []llm.StreamChunk{{Content: "你好呀"}}}
	generator := NewResponseGenerator(provider)

	user := advisor.UserInfo{Province: "北京", Score: 650}
	err := generator.Generate(context.Background(), advisor.IntentChitchat, user,
		[]advisor.Turn{{Role: advisor.TurnRoleUser, Content: "你好"}},
		func(f advisor.Fragment) error { return nil },
	)
	require.NoError(t, err)

	for _, msg := range provider.lastHistory {
		if msg.Role != "system" {
			assert.NotContains(t, msg.Content, "650")
		}
	}
}

func TestGeneratorEmitErrorAbortsStream(t *testing.T) {
	provider := &fakeProvider{chunks: []llm.StreamChunk{
		{Content: "a"},
		{Content: "b"},
	}}
	generator := NewResponseGenerator(provider)

	emitErr := errors.New("sink closed")
	count := 0
	err := generator.Generate(context.Background(), advisor.IntentChitchat, advisor.UserInfo{}, nil, func(f advisor.Fragment) error {
		count++
		return emitErr
	})
	assert.ErrorIs(t, err, emitErr)
	assert.Equal(t, 1, count)
}

func TestHistoryMessagesRoleMapping(t *testing.T) {
	messages := historyMessages("prompt", []advisor.Turn{
		{Role: advisor.TurnRoleUser, Content: "问"},
		{Role: advisor.TurnRoleAssistant, Content: "答"},
	})

	require.Len(t, messages, 3)
	assert.Equal(t, "system", messages[0].Role)
	assert.Equal(t, "user", messages[1].Role)
	assert.Equal(t, "assistant", messages[2].Role)
}

func TestRenderHistory(t *testing.T) {
	out := renderHistory([]advisor.Turn{
		{Role: advisor.TurnRoleUser, Content: "你好"},
		{Role: advisor.TurnRoleAssistant, Content: "你好呀"},
	})
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "user: 你好", lines[0])
	assert.Equal(t, "ai: 你好呀", lines[1])
}
