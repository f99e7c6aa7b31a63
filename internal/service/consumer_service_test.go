package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-advisor-be/pkg/llm"

	"github.com/stretchr/testify/assert"
)

type captionProvider struct {
	response string
	err      error
}

func (p *captionProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *captionProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.response, p.err
}

func (p *captionProvider) ChatStream(ctx context.Context, history []llm.Message, handler llm.StreamHandler, options ...llm.Option) error {
	return p.err
}

func TestFallbackCaption(t *testing.T) {
	tests := []struct {
		name     string
		seed     string
		expected string
	}{
		{"short seed kept verbatim", "我想学计算机", "我想学计算机"},
		{"exactly twenty runes kept", strings.Repeat("学", 20), strings.Repeat("学", 20)},
		{"long seed truncated", strings.Repeat("学", 25), strings.Repeat("学", 20) + "..."},
		{"surrounding whitespace trimmed", "  你好  ", "你好"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fallbackCaption(tt.seed))
		})
	}
}

func TestGenerateCaption(t *testing.T) {
	seed := "我想去北京学计算机，分数大概650左右，有什么推荐吗"

	tests := []struct {
		name     string
		provider *captionProvider
		expected string
	}{
		{"model caption within limit", &captionProvider{response: "北京择校咨询"}, "北京择校咨询"},
		{"model caption trimmed", &captionProvider{response: "  北京择校咨询\n"}, "北京择校咨询"},
		{"over-long caption falls back", &captionProvider{response: strings.Repeat("长", 11)}, fallbackCaption(seed)},
		{"empty caption falls back", &captionProvider{response: "   "}, fallbackCaption(seed)},
		{"model failure falls back", &captionProvider{err: errors.New("timeout")}, fallbackCaption(seed)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := &consumerService{llmProvider: tt.provider}
			assert.Equal(t, tt.expected, cs.generateCaption(context.Background(), seed))
		})
	}
}
