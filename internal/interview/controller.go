package interview

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/interviewbot/internal/history"
	"github.com/abhisek/interviewbot/internal/llm"
)

// Options tunes the collaborator calls an interview makes.
type Options struct {
	MaxTokens   int
	Temperature float64
	HistorySize int
	AssessMode  AssessMode
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{
		MaxTokens:   512,
		Temperature: 0.7,
		HistorySize: history.DefaultSize,
		AssessMode:  AssessSubstring,
	}
}

// RoundResult describes a round that was just closed.
type RoundResult struct {
	Round       int
	Question    string
	Answer      string
	Correct     bool
	Reason      string
	LevelBefore int
	LevelAfter  int
	Completed   bool
}

// Controller drives one interview at a time. All session mutations go
// through it. Collaborator calls run without holding the lock so that Reset
// can cancel them; a call that loses a race with Reset returns
// ErrSessionReset and changes nothing.
type Controller struct {
	gen      QuestionGenerator
	assessor AnswerAssessor
	logger   *slog.Logger
	histSize int

	mu        sync.Mutex
	session   *Session
	window    *history.Window
	sessionID string
	epoch     uint64
	inflight  bool
	cancel    context.CancelFunc
}

// NewController wires a controller from its collaborators. logger may be nil.
func NewController(gen QuestionGenerator, assessor AnswerAssessor, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	size := opts.HistorySize
	if size <= 0 {
		size = history.DefaultSize
	}
	return &Controller{
		gen:      gen,
		assessor: assessor,
		logger:   logger,
		histSize: size,
		session:  NewSession(),
		window:   history.New(size),
	}
}

// New builds a controller whose generator and assessor share provider.
func New(provider llm.Provider, opts Options, logger *slog.Logger) *Controller {
	return NewController(NewLLMGenerator(provider, opts), NewLLMAssessor(provider, opts), opts, logger)
}

// Snapshot returns a copy of the current session state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := c.session.Snapshot()
	snap.SessionID = c.sessionID
	return snap
}

// remembered returns the exchanges the collaborator currently remembers.
func (c *Controller) remembered() []history.Exchange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window.Exchanges()
}

// SubmitSkillAndLevel starts a new interview. The level is clamped to
// [MinLevel, MaxLevel]. It fails unless the session is idle.
func (c *Controller) SubmitSkillAndLevel(skill string, level int) (Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.session.Apply(SkillAndLevelSubmitted{Skill: skill, Level: level}); err != nil {
		return c.snapshotLocked(), err
	}
	c.sessionID = uuid.NewString()
	c.window = history.New(c.histSize)

	snap := c.snapshotLocked()
	c.logger.Info("interview started",
		"session_id", c.sessionID,
		"skill", snap.Skill,
		"level", snap.Level,
		"description", snap.Description,
	)
	return snap, nil
}

// NextQuestion asks the generator for the current round's question. On
// failure the session stays in PhaseAwaitingQuestion and the error, a
// *GenerationError, can be retried.
func (c *Controller) NextQuestion(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.session.Phase() != PhaseAwaitingQuestion {
		err := transitionError(QuestionPresented{}, c.session.Phase())
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err
	}
	if c.inflight {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, ErrBusy
	}
	snap := c.session.Snapshot()
	in := GenerateInput{Skill: snap.Skill, Description: snap.Description, Level: snap.Level}
	ctx, epoch, window := c.beginCallLocked(ctx)
	c.mu.Unlock()

	question, err := c.gen.Generate(ctx, in, window)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.endCallLocked(epoch) {
		return c.snapshotLocked(), ErrSessionReset
	}
	if err != nil {
		c.logger.Warn("question generation failed",
			"session_id", c.sessionID,
			"round", snap.Round(),
			"unreachable", llm.IsUnreachable(err),
			"error", err,
		)
		return c.snapshotLocked(), err
	}
	if err := c.session.Apply(QuestionPresented{Question: question}); err != nil {
		return c.snapshotLocked(), &GenerationError{Skill: in.Skill, Level: in.Level, Err: err}
	}

	c.logger.Debug("question presented", "session_id", c.sessionID, "round", snap.Round())
	return c.snapshotLocked(), nil
}

// SubmitAnswer judges answer against the current question and closes the
// round. A blank answer returns ErrEmptyAnswer. When assessment fails the
// answer is not recorded and the same question stays open.
func (c *Controller) SubmitAnswer(ctx context.Context, answer string) (RoundResult, error) {
	c.mu.Lock()
	before := c.session.Snapshot()
	if err := c.session.Apply(AnswerSubmitted{Answer: answer}); err != nil {
		c.mu.Unlock()
		return RoundResult{}, err
	}
	ctx, epoch, window := c.beginCallLocked(ctx)
	c.mu.Unlock()

	verdict, err := c.assessor.Assess(ctx, before.CurrentQuestion, answer, window)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.endCallLocked(epoch) {
		return RoundResult{}, ErrSessionReset
	}
	if err != nil {
		_ = c.session.Apply(AssessmentFailed{})
		c.logger.Warn("answer assessment failed",
			"session_id", c.sessionID,
			"round", before.Round(),
			"unreachable", llm.IsUnreachable(err),
			"error", err,
		)
		return RoundResult{}, err
	}
	_ = c.session.Apply(AnswerAssessed{Correct: verdict.Correct})

	after := c.session.Snapshot()
	result := RoundResult{
		Round:       before.Round(),
		Question:    before.CurrentQuestion,
		Answer:      answer,
		Correct:     verdict.Correct,
		Reason:      verdict.Reason,
		LevelBefore: before.Level,
		LevelAfter:  after.Level,
		Completed:   after.Completed(),
	}

	c.logger.Info("round completed",
		"session_id", c.sessionID,
		"round", result.Round,
		"correct", result.Correct,
		"level", result.LevelAfter,
	)
	if result.Completed {
		c.logger.Info("interview completed", "session_id", c.sessionID, "final_level", result.LevelAfter)
	}
	return result, nil
}

// Reset abandons the interview, cancelling any call in flight, and returns
// the session to its defaults.
func (c *Controller) Reset() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.epoch++
	c.inflight = false
	_ = c.session.Apply(ResetRequested{})
	if c.sessionID != "" {
		c.logger.Info("interview reset", "session_id", c.sessionID)
	}
	c.sessionID = ""
	c.window = history.New(c.histSize)
	return c.snapshotLocked()
}

// beginCallLocked marks a collaborator call as running and returns the
// context, epoch and window it must use.
func (c *Controller) beginCallLocked(ctx context.Context) (context.Context, uint64, *history.Window) {
	ctx, cancel := context.WithCancel(llm.WithSession(ctx, c.sessionID))
	c.cancel = cancel
	c.inflight = true
	return ctx, c.epoch, c.window
}

// endCallLocked clears the in-flight marker and reports whether the call
// still belongs to the current session.
func (c *Controller) endCallLocked(epoch uint64) bool {
	if epoch != c.epoch {
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.inflight = false
	return true
}

// IsRetryable reports whether err leaves the session in a state where the
// same action can be tried again. A request the provider refused outright is
// not, since repeating it gets the same refusal.
func IsRetryable(err error) bool {
	var rejected *llm.ErrRequestRejected
	if errors.As(err, &rejected) {
		return false
	}
	var genErr *GenerationError
	var assessErr *AssessmentError
	return errors.As(err, &genErr) || errors.As(err, &assessErr)
}
