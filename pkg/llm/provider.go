package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// StreamChunk is one incremental piece of model output. Reasoning-capable
// models (DeepSeek-R1 style) interleave reasoning deltas with answer
// deltas; a chunk carries at most one of the two.
type StreamChunk struct {
	Content   string
	Reasoning string
}

// StreamHandler receives chunks in arrival order. Returning an error
// aborts the stream.
type StreamHandler func(chunk StreamChunk) error

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (string, error)

	// Generate sends a single prompt to the model (convenience method)
	Generate(ctx context.Context, prompt string, options ...Option) (string, error)

	// ChatStream sends a chat history and delivers output incrementally.
	// The handler is invoked once per chunk, in order, from the calling
	// goroutine. The call returns once the stream is exhausted or fails.
	ChatStream(ctx context.Context, history []Message, handler StreamHandler, options ...Option) error
}
