// Package interview implements the screen that runs the question and answer
// rounds of a started interview.
package interview

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	iv "github.com/abhisek/interviewbot/internal/interview"
	"github.com/abhisek/interviewbot/internal/router"
	"github.com/abhisek/interviewbot/internal/screen"
	"github.com/abhisek/interviewbot/internal/ui/components"
	"github.com/abhisek/interviewbot/internal/ui/layout"
)

// pendingAction is the controller call a failed attempt can repeat.
type pendingAction int

const (
	actionNone pendingAction = iota
	actionQuestion
	actionAnswer
)

const spinnerInterval = 120 * time.Millisecond

// InterviewScreen shows the current question, takes the answer and reports
// the verdict. Controller calls run as commands; while one is in flight the
// screen is busy and ignores answers.
type InterviewScreen struct {
	ctx   context.Context
	ctrl  *iv.Controller
	snap  iv.Snapshot
	input components.TextInput

	busy         bool
	spinnerFrame int
	last         *iv.RoundResult
	errMsg       string
	retry        pendingAction
	confirmQuit  bool
}

var _ screen.Screen = (*InterviewScreen)(nil)
var _ screen.KeyHintProvider = (*InterviewScreen)(nil)

// New creates the interview screen for the interview ctrl has started. ctx
// bounds every controller call; nil means context.Background.
func New(ctx context.Context, ctrl *iv.Controller) *InterviewScreen {
	if ctx == nil {
		ctx = context.Background()
	}
	return &InterviewScreen{
		ctx:   ctx,
		ctrl:  ctrl,
		snap:  ctrl.Snapshot(),
		input: components.NewTextInput("Type your answer...", 500),
	}
}

func (s *InterviewScreen) Init() tea.Cmd {
	return tea.Batch(s.input.Init(), s.requestQuestion())
}

func (s *InterviewScreen) Title() string {
	return "Interview"
}

func (s *InterviewScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon"},
			{Key: "N", Description: "Keep going"},
		}
	case s.snap.Completed():
		return []layout.KeyHint{
			{Key: "Enter", Description: "Start Again"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case s.busy:
		return []layout.KeyHint{{Key: "Esc", Description: "Reset"}}
	case s.retry != actionNone:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Try again"},
			{Key: "Esc", Description: "Reset"},
		}
	case s.snap.Phase != iv.PhaseAwaitingAnswer:
		return []layout.KeyHint{{Key: "Esc", Description: "Reset"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Reset"},
	}
}

func (s *InterviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case questionReadyMsg:
		return s.handleQuestionReady(msg)

	case answerAssessedMsg:
		return s.handleAnswerAssessed(msg)

	case spinnerTickMsg:
		if !s.busy {
			return s, nil
		}
		s.spinnerFrame++
		return s, spinnerTick()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.acceptingAnswer() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) handleQuestionReady(msg questionReadyMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, iv.ErrSessionReset) {
		return s, nil
	}
	s.busy = false
	s.snap = msg.Snapshot
	if msg.Err != nil {
		s.errMsg = "Could not generate a question: " + msg.Err.Error()
		s.retry = retryOn(msg.Err, actionQuestion)
		return s, nil
	}
	s.errMsg = ""
	s.retry = actionNone
	s.input.Clear()
	return s, s.input.Focus()
}

func (s *InterviewScreen) handleAnswerAssessed(msg answerAssessedMsg) (screen.Screen, tea.Cmd) {
	if errors.Is(msg.Err, iv.ErrSessionReset) {
		return s, nil
	}
	s.busy = false
	s.snap = s.ctrl.Snapshot()
	if msg.Err != nil {
		s.errMsg = "Could not assess your answer: " + msg.Err.Error()
		s.retry = retryOn(msg.Err, actionAnswer)
		return s, nil
	}

	result := msg.Result
	s.last = &result
	s.errMsg = ""
	s.retry = actionNone
	s.input.Clear()
	if result.Completed {
		s.input.Blur()
		return s, nil
	}
	return s, s.requestQuestion()
}

// retryOn returns action when err leaves the session able to repeat it.
func retryOn(err error, action pendingAction) pendingAction {
	if iv.IsRetryable(err) {
		return action
	}
	return actionNone
}

func (s *InterviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.confirmQuit {
		switch key {
		case "y", "Y":
			return s, s.abandon()
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}

	if key == "esc" {
		if s.snap.Completed() {
			return s, s.abandon()
		}
		s.confirmQuit = true
		return s, nil
	}

	if s.snap.Completed() {
		if key == "enter" {
			return s, s.abandon()
		}
		return s, nil
	}

	if s.busy {
		return s, nil
	}

	if key == "enter" {
		if s.retry == actionQuestion {
			return s, s.requestQuestion()
		}
		if s.acceptingAnswer() {
			return s, s.submitAnswer()
		}
		return s, nil
	}

	if s.acceptingAnswer() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *InterviewScreen) acceptingAnswer() bool {
	return !s.busy && !s.confirmQuit && s.snap.Phase == iv.PhaseAwaitingAnswer
}

// requestQuestion asks the controller for the next question.
func (s *InterviewScreen) requestQuestion() tea.Cmd {
	s.busy = true
	s.errMsg = ""
	return tea.Batch(s.fetchQuestion(), spinnerTick())
}

func (s *InterviewScreen) fetchQuestion() tea.Cmd {
	ctx, ctrl := s.ctx, s.ctrl
	return func() tea.Msg {
		snap, err := ctrl.NextQuestion(ctx)
		return questionReadyMsg{Snapshot: snap, Err: err}
	}
}

// submitAnswer sends the typed answer for assessment.
func (s *InterviewScreen) submitAnswer() tea.Cmd {
	answer := s.input.Value()
	if answer == "" {
		s.errMsg = "Please type an answer first."
		return nil
	}
	s.busy = true
	s.errMsg = ""
	return tea.Batch(s.assess(answer), spinnerTick())
}

func (s *InterviewScreen) assess(answer string) tea.Cmd {
	ctx, ctrl := s.ctx, s.ctrl
	return func() tea.Msg {
		result, err := ctrl.SubmitAnswer(ctx, answer)
		return answerAssessedMsg{Result: result, Err: err}
	}
}

// abandon resets the session and returns to the setup screen.
func (s *InterviewScreen) abandon() tea.Cmd {
	s.ctrl.Reset()
	s.confirmQuit = false
	s.busy = false
	return func() tea.Msg {
		return router.PopToRootMsg{}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(spinnerInterval, func(t time.Time) tea.Msg {
		return spinnerTickMsg(t)
	})
}
