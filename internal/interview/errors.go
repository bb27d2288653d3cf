package interview

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransition is returned when an event is not allowed in the
	// session's current phase. The session is left untouched.
	ErrInvalidTransition = errors.New("invalid transition")

	// ErrEmptyAnswer is returned when a blank answer is submitted.
	ErrEmptyAnswer = errors.New("answer is empty")

	// ErrEmptyQuestion is returned when a blank question is presented.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrBusy is returned when a question is requested while another request
	// for the same session is still running.
	ErrBusy = errors.New("a request is already in progress")

	// ErrSessionReset is returned by a call whose session was reset while
	// the collaborator was working. Its result is discarded.
	ErrSessionReset = errors.New("session was reset")
)

// GenerationError reports that no usable question could be obtained. The
// round is not advanced; the caller may retry.
type GenerationError struct {
	Skill string
	Level int
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generate question (%s, level %d): %v", e.Skill, e.Level, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// AssessmentError reports that the answer could not be judged. The answer
// is not recorded; the caller may submit it again.
type AssessmentError struct {
	Question string
	Err      error
}

func (e *AssessmentError) Error() string {
	return fmt.Sprintf("assess answer: %v", e.Err)
}

func (e *AssessmentError) Unwrap() error { return e.Err }

func transitionError(ev Event, phase Phase) error {
	return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, ev.eventName(), phase)
}
