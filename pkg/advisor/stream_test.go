package advisor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMultiplexerRelayOrderAndAccumulation(t *testing.T) {
	var events []OutputEvent
	m := NewMultiplexer(func(event OutputEvent) error {
		events = append(events, event)
		return nil
	})

	require.NoError(t, m.Relay(Fragment{Kind: FragmentReasoning, Text: "思考中"}))
	require.NoError(t, m.Relay(Fragment{Kind: FragmentAnswer, Text: "推荐"}))
	require.NoError(t, m.Relay(Fragment{Kind: FragmentAnswer, Text: "清华"}))

	require.Len(t, events, 3)
	assert.Equal(t, OutputEvent{Content: "思考中", Type: EventReasoning}, events[0])
	assert.Equal(t, OutputEvent{Content: "推荐", Type: EventAnswer}, events[1])
	assert.Equal(t, OutputEvent{Content: "清华", Type: EventAnswer}, events[2])

	// Reasoning is never part of the committed answer.
	assert.Equal(t, "推荐清华", m.Answer())
	assert.Equal(t, 3, m.Fragments())
}

func TestMultiplexerSinkErrorStopsRelay(t *testing.T) {
	sinkErr := errors.New("client gone")
	m := NewMultiplexer(func(event OutputEvent) error {
		return sinkErr
	})

	err := m.Relay(Fragment{Kind: FragmentAnswer, Text: "x"})
	assert.ErrorIs(t, err, sinkErr)
}

func TestMultiplexerEmitErrorBestEffort(t *testing.T) {
	calls := 0
	m := NewMultiplexer(func(event OutputEvent) error {
		calls++
		return errors.New("client gone")
	})

	// Must not panic or retry.
	m.EmitError(errors.New("generation failed"))
	assert.Equal(t, 1, calls)
}
