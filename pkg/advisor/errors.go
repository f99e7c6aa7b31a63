package advisor

import (
	"errors"
	"fmt"
)

// Terminal rejections raised before any streaming begins.
var (
	ErrEmptyUtterance  = errors.New("utterance is empty")
	ErrProfileNotFound = errors.New("user profile not found")
)

// GenerationError wraps a provider failure or cancellation mid-stream.
// Fragments already delivered to the caller stand; no assistant turn is
// committed.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed: %v", e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

// PersistenceError wraps a history append failure. When it occurs after
// a successful generation the caller already holds the full answer but
// the exchange is not durably recorded; it is surfaced as a distinct
// terminal event so the caller can decide how to react. No automatic
// retry happens here.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("history persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
