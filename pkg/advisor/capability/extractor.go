package capability

import (
	"context"
	"fmt"
	"strings"

	"ai-advisor-be/internal/constant"
	"ai-advisor-be/pkg/advisor"
	"ai-advisor-be/pkg/llm"
)

// RequirementExtractor merges each new utterance into the running
// requirement list with a single non-streaming completion.
type RequirementExtractor struct {
	provider llm.LLMProvider
}

var _ advisor.RequirementExtractor = &RequirementExtractor{}

func NewRequirementExtractor(provider llm.LLMProvider) *RequirementExtractor {
	return &RequirementExtractor{provider: provider}
}

func (e *RequirementExtractor) Extract(ctx context.Context, requirement string, history []advisor.Turn, utterance string) (string, error) {
	prompt := fmt.Sprintf(constant.RequirementAnalysisPromptV1,
		requirement,
		renderHistory(history),
		utterance,
	)

	merged, err := e.provider.Generate(ctx, prompt, llm.WithTemperature(0.3))
	if err != nil {
		return "", fmt.Errorf("requirement extraction: %w", err)
	}
	merged = strings.TrimSpace(merged)
	if merged == "" {
		// An empty merge result would erase the accumulated profile;
		// keep the previous narrative instead.
		return requirement, nil
	}
	return merged, nil
}
