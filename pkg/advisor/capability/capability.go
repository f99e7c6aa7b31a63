// Package capability provides the LLM-backed implementations of the
// advisor's pluggable providers. Deterministic stubs live in the tests
// of the packages that consume these interfaces.
package capability

import (
	"strings"

	"ai-advisor-be/internal/constant"
	"ai-advisor-be/pkg/advisor"
	"ai-advisor-be/pkg/llm"
)

// historyMessages maps committed turns to provider-agnostic chat
// messages, prefixed with the given system prompt.
func historyMessages(systemPrompt string, history []advisor.Turn) []llm.Message {
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{Role: constant.ChatRoleSystem, Content: systemPrompt})
	for _, turn := range history {
		role := constant.ChatRoleUser
		if turn.Role == advisor.TurnRoleAssistant {
			role = constant.ChatRoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	return messages
}

// renderHistory flattens turns into the plain-text block used inside
// the requirement analysis prompt.
func renderHistory(history []advisor.Turn) string {
	var b strings.Builder
	for _, turn := range history {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	return b.String()
}
