package capability

import (
	"context"
	"fmt"
	"strings"

	"ai-advisor-be/internal/constant"
	"ai-advisor-be/pkg/advisor"
	"ai-advisor-be/pkg/llm"
)

// ResponseGenerator streams the branch-specific completion. The
// advisory branch grounds the prompt in the user's profile and the
// accumulated requirement narrative; the chitchat branch only sees the
// conversation.
type ResponseGenerator struct {
	provider llm.LLMProvider
}

var _ advisor.ResponseGenerator = &ResponseGenerator{}

func NewResponseGenerator(provider llm.LLMProvider) *ResponseGenerator {
	return &ResponseGenerator{provider: provider}
}

func (g *ResponseGenerator) Generate(ctx context.Context, intent advisor.Intent, user advisor.UserInfo, history []advisor.Turn, emit func(advisor.Fragment) error) error {
	var messages []llm.Message
	if intent == advisor.IntentAdvisory {
		messages = g.advisoryMessages(user, history)
	} else {
		messages = historyMessages(constant.ChitchatPromptV1, history)
	}

	return g.provider.ChatStream(ctx, messages, func(chunk llm.StreamChunk) error {
		if chunk.Reasoning != "" {
			if err := emit(advisor.Fragment{Kind: advisor.FragmentReasoning, Text: chunk.Reasoning}); err != nil {
				return err
			}
		}
		if chunk.Content != "" {
			if err := emit(advisor.Fragment{Kind: advisor.FragmentAnswer, Text: chunk.Content}); err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *ResponseGenerator) advisoryMessages(user advisor.UserInfo, history []advisor.Turn) []llm.Message {
	messages := historyMessages(constant.RecommenderPromptV1, history)
	messages = append(messages, llm.Message{
		Role: constant.ChatRoleUser,
		Content: fmt.Sprintf(constant.RecommenderUserPromptV1,
			user.Province, user.Score, strings.Join(user.Subjects, "、"), user.Requirement),
	})
	return messages
}
