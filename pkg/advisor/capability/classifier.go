package capability

import (
	"context"
	"fmt"

	"ai-advisor-be/internal/constant"
	"ai-advisor-be/pkg/advisor"
	"ai-advisor-be/pkg/llm"
)

// IntentClassifier labels the conversation with a single completion.
// The raw label is returned as-is; normalization (advisory substring
// match, chitchat default) belongs to the coordinator.
type IntentClassifier struct {
	provider llm.LLMProvider
}

var _ advisor.IntentClassifier = &IntentClassifier{}

func NewIntentClassifier(provider llm.LLMProvider) *IntentClassifier {
	return &IntentClassifier{provider: provider}
}

func (c *IntentClassifier) Classify(ctx context.Context, history []advisor.Turn) (string, error) {
	messages := historyMessages(constant.IntentSwitcherPromptV1, history)

	label, err := c.provider.Chat(ctx, messages, llm.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("intent classification: %w", err)
	}
	return label, nil
}
