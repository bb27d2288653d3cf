// Package interview runs an adaptive interview: it asks a question for the
// candidate's skill and level, judges the answer, moves the level one step up
// or down and stops after MaxQuestions rounds.
package interview

import (
	"slices"
	"strings"
)

// Phase is where a session stands in the round cycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingQuestion
	PhaseAwaitingAnswer
	PhaseEvaluating
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingQuestion:
		return "awaiting question"
	case PhaseAwaitingAnswer:
		return "awaiting answer"
	case PhaseEvaluating:
		return "evaluating"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Session holds the progress of one interview. It is not safe for
// concurrent use; Controller serializes access to it.
type Session struct {
	skill       string
	description LevelDescription
	level       int
	count       int
	question    string
	answers     []string
	pending     string
	phase       Phase
}

// NewSession returns a session in its pre-interview defaults.
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Start begins an interview on skill at level, clamped into range. Progress
// from any earlier interview is discarded.
func (s *Session) Start(skill string, level int) {
	level = ClampLevel(level)
	s.skill = skill
	s.level = level
	s.description = Describe(level)
	s.count = 0
	s.question = ""
	s.pending = ""
	s.answers = nil
	s.phase = PhaseAwaitingQuestion
}

// Reset restores the defaults: no skill, level 5, no rounds played.
func (s *Session) Reset() {
	s.skill = ""
	s.description = ""
	s.level = DefaultLevel
	s.count = 0
	s.question = ""
	s.pending = ""
	s.answers = nil
	s.phase = PhaseIdle
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Apply runs one state machine transition. An event that is not allowed in
// the current phase returns an error wrapping ErrInvalidTransition and
// leaves the session unchanged.
func (s *Session) Apply(ev Event) error {
	switch ev := ev.(type) {
	case ResetRequested:
		s.Reset()
		return nil

	case SkillAndLevelSubmitted:
		if s.phase != PhaseIdle {
			return transitionError(ev, s.phase)
		}
		s.Start(ev.Skill, ev.Level)
		return nil

	case QuestionPresented:
		if s.phase != PhaseAwaitingQuestion {
			return transitionError(ev, s.phase)
		}
		q := strings.TrimSpace(ev.Question)
		if q == "" {
			return ErrEmptyQuestion
		}
		s.question = q
		s.phase = PhaseAwaitingAnswer
		return nil

	case AnswerSubmitted:
		if s.phase != PhaseAwaitingAnswer {
			return transitionError(ev, s.phase)
		}
		if strings.TrimSpace(ev.Answer) == "" {
			return ErrEmptyAnswer
		}
		s.pending = ev.Answer
		s.phase = PhaseEvaluating
		return nil

	case AssessmentFailed:
		if s.phase != PhaseEvaluating {
			return transitionError(ev, s.phase)
		}
		s.pending = ""
		s.phase = PhaseAwaitingAnswer
		return nil

	case AnswerAssessed:
		if s.phase != PhaseEvaluating {
			return transitionError(ev, s.phase)
		}
		s.level = AdjustLevel(s.level, ev.Correct)
		s.answers = append(s.answers, s.pending)
		s.pending = ""
		s.count++
		s.question = ""
		if s.count >= MaxQuestions {
			s.phase = PhaseCompleted
		} else {
			s.phase = PhaseAwaitingQuestion
		}
		return nil

	default:
		return transitionError(ev, s.phase)
	}
}

// Snapshot is a read-only copy of a session for rendering.
type Snapshot struct {
	SessionID       string
	Phase           Phase
	Skill           string
	Description     LevelDescription
	Level           int
	QuestionCount   int
	CurrentQuestion string
	Answers         []string
}

// Snapshot copies the session state. The returned Answers slice is not
// shared with the session.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:           s.phase,
		Skill:           s.skill,
		Description:     s.description,
		Level:           s.level,
		QuestionCount:   s.count,
		CurrentQuestion: s.question,
		Answers:         slices.Clone(s.answers),
	}
}

// Round is the 1-based number of the round in progress.
func (s Snapshot) Round() int {
	return s.QuestionCount + 1
}

// Completed reports whether every round has been played.
func (s Snapshot) Completed() bool {
	return s.Phase == PhaseCompleted
}
