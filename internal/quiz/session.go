package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionSubmitted marks an attempt to answer or re-score a session
	// that has already reached its terminal state.
	ErrSessionSubmitted = errors.New("session already submitted")
)

// NewSession wraps a sampled question set into a fresh session. A session
// with zero questions is valid; it scores to 0% and is reported by the
// caller as "no questions available".
func NewSession(questions []SampledQuestion) *Session {
	return &Session{
		Questions:  questions,
		Selections: make([]*int, len(questions)),
		State:      StateNotStarted,
	}
}

// Answer records the selected presentation-order position for question i.
// Questions may be answered in any order and re-answered until submission.
func (s *Session) Answer(i, selected int) error {
	if s.State == StateSubmitted {
		return ErrSessionSubmitted
	}
	if i < 0 || i >= len(s.Questions) {
		return fmt.Errorf("question index %d out of range", i)
	}
	if selected < 0 || selected >= len(s.Questions[i].Options) {
		return fmt.Errorf("option position %d out of range for question %d", selected, i)
	}
	sel := selected
	s.Selections[i] = &sel
	s.State = StateInProgress
	return nil
}

// Submit moves the session to its terminal state. Unanswered questions are
// allowed; they score as incorrect.
func (s *Session) Submit() error {
	if s.State == StateSubmitted {
		return ErrSessionSubmitted
	}
	s.State = StateSubmitted
	return nil
}

// SelectedText returns the option text at question i's recorded selection,
// or "" if the question is unanswered.
func (s *Session) SelectedText(i int) string {
	sel := s.Selections[i]
	if sel == nil {
		return ""
	}
	opts := s.Questions[i].Options
	if *sel < 0 || *sel >= len(opts) {
		return ""
	}
	return opts[*sel]
}
