package advisor

import (
	"strings"
)

// Multiplexer relays fragments from the active generation to the
// caller's sink in arrival order. It holds no queue: each fragment is
// delivered before the next one is accepted, which bounds memory and
// keeps partial output responsive. Answer fragments are accumulated for
// persistence on commit.
type Multiplexer struct {
	sink      EventSink
	answer    strings.Builder
	fragments int
}

func NewMultiplexer(sink EventSink) *Multiplexer {
	return &Multiplexer{sink: sink}
}

// Relay forwards one fragment as a discrete event. A sink error stops
// the stream; no partial recovery is attempted.
func (m *Multiplexer) Relay(f Fragment) error {
	kind := EventAnswer
	if f.Kind == FragmentReasoning {
		kind = EventReasoning
	} else {
		m.answer.WriteString(f.Text)
	}
	m.fragments++
	return m.sink(OutputEvent{Content: f.Text, Type: kind})
}

// EmitError appends the single terminal error event. Best-effort: if
// the caller is already gone the delivery failure is ignored.
func (m *Multiplexer) EmitError(err error) {
	_ = m.sink(OutputEvent{Content: err.Error(), Type: EventError})
}

// Answer returns the concatenation of all answer-kind fragments
// relayed so far, in order.
func (m *Multiplexer) Answer() string {
	return m.answer.String()
}

// Fragments returns the number of fragments relayed.
func (m *Multiplexer) Fragments() int {
	return m.fragments
}
