package interview

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interviewbot/internal/history"
	"github.com/abhisek/interviewbot/internal/llm"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestController(mock *llm.MockProvider) *Controller {
	return New(mock, DefaultOptions(), quietLogger())
}

func TestController_EndToEndCorrectAnswer(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText("Which clause filters grouped rows?\nA) WHERE B) HAVING"),
		llm.MockText("Yes, that's correct."),
	)
	c := newTestController(mock)
	ctx := context.Background()

	snap, err := c.SubmitSkillAndLevel("SQL", 5)
	require.NoError(t, err)
	assert.Equal(t, Intermediate, snap.Description)
	assert.NotEmpty(t, snap.SessionID)

	snap, err = c.NextQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, PhaseAwaitingAnswer, snap.Phase)
	assert.Equal(t, 1, snap.Round())
	assert.Contains(t, snap.CurrentQuestion, "HAVING")

	res, err := c.SubmitAnswer(ctx, "B")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 5, res.LevelBefore)
	assert.Equal(t, 6, res.LevelAfter)
	assert.False(t, res.Completed)

	snap = c.Snapshot()
	assert.Equal(t, 6, snap.Level)
	assert.Equal(t, 1, snap.QuestionCount)
	assert.Empty(t, snap.CurrentQuestion)
	assert.Equal(t, []string{"B"}, snap.Answers)
	assert.Equal(t, PhaseAwaitingQuestion, snap.Phase)

	require.Equal(t, 2, mock.CallCount())
	gen := mock.Calls[0]
	assert.Equal(t, SystemPrompt, gen.System)
	require.Len(t, gen.Messages, 1)
	assert.Equal(t, "Generate an interview question on SQL - Intermediate : 5/10 level", gen.Messages[0].Content)

	assess := mock.Calls[1]
	require.Len(t, assess.Messages, 3)
	assert.Equal(t, llm.RoleAssistant, assess.Messages[1].Role)
	assert.Equal(t,
		"Question: Which clause filters grouped rows?\nA) WHERE B) HAVING\nAnswer: B\nWas the answer correct? Respond with 'yes' or 'no'.",
		assess.Messages[2].Content)
}

func TestController_FullInterview(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := range MaxQuestions {
		mock.AddResponse(llm.MockText(fmt.Sprintf("Question %d?", i+1)))
		if i < 3 {
			mock.AddResponse(llm.MockText("no"))
		} else {
			mock.AddResponse(llm.MockText("yes"))
		}
	}
	c := newTestController(mock)
	ctx := context.Background()

	_, err := c.SubmitSkillAndLevel("Go", 2)
	require.NoError(t, err)

	var last RoundResult
	for i := range MaxQuestions {
		_, err := c.NextQuestion(ctx)
		require.NoError(t, err, "round %d", i+1)
		last, err = c.SubmitAnswer(ctx, "answer")
		require.NoError(t, err, "round %d", i+1)
		assert.Equal(t, i+1, last.Round)
	}

	assert.True(t, last.Completed)
	snap := c.Snapshot()
	assert.True(t, snap.Completed())
	assert.Equal(t, MaxQuestions, snap.QuestionCount)
	// 2 → 1 (clamped twice) → +7
	assert.Equal(t, 8, snap.Level)
	// Description is fixed when the interview starts.
	assert.Equal(t, Beginner, snap.Description)

	_, err = c.NextQuestion(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, 2*MaxQuestions, mock.CallCount())

	snap = c.Reset()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Equal(t, DefaultLevel, snap.Level)
	assert.Empty(t, snap.SessionID)
}

func TestController_HistoryWindowIsBounded(t *testing.T) {
	mock := llm.NewMockProvider()
	for i := range 4 {
		mock.AddResponse(llm.MockText(fmt.Sprintf("Q%d", i)))
		mock.AddResponse(llm.MockText("yes"))
	}
	c := newTestController(mock)
	ctx := context.Background()

	_, err := c.SubmitSkillAndLevel("Go", 5)
	require.NoError(t, err)
	for range 4 {
		_, err := c.NextQuestion(ctx)
		require.NoError(t, err)
		_, err = c.SubmitAnswer(ctx, "a")
		require.NoError(t, err)
	}

	assert.Len(t, c.remembered(), history.DefaultSize)
	last, ok := mock.LastCall()
	require.True(t, ok)
	// Five remembered exchanges plus the new directive.
	assert.Len(t, last.Messages, 2*history.DefaultSize+1)

	c.Reset()
	assert.Empty(t, c.remembered())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"generation failure", &GenerationError{Err: &llm.ErrProviderUnavailable{}}, true},
		{"assessment failure", &AssessmentError{Err: &llm.ErrRateLimit{}}, true},
		{"rejected generation", &GenerationError{Err: &llm.ErrRequestRejected{StatusCode: 401}}, false},
		{"rejected assessment", &AssessmentError{Err: &llm.ErrRequestRejected{StatusCode: 400}}, false},
		{"empty answer", ErrEmptyAnswer, false},
		{"busy", ErrBusy, false},
		{"invalid transition", fmt.Errorf("%w: x", ErrInvalidTransition), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

func TestController_GenerationErrorIsRetryable(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("connection refused")}},
		llm.MockText("   "),
		llm.MockText("What is a closure?"),
	)
	c := newTestController(mock)
	ctx := context.Background()
	_, err := c.SubmitSkillAndLevel("Go", 5)
	require.NoError(t, err)

	snap, err := c.NextQuestion(ctx)
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.True(t, llm.IsUnreachable(err))
	assert.True(t, IsRetryable(err))
	assert.Equal(t, PhaseAwaitingQuestion, snap.Phase)
	assert.Zero(t, snap.QuestionCount)

	_, err = c.NextQuestion(ctx)
	require.ErrorAs(t, err, &genErr)
	var inv *llm.ErrInvalidResponse
	assert.ErrorAs(t, err, &inv)

	snap, err = c.NextQuestion(ctx)
	require.NoError(t, err)
	assert.Equal(t, "What is a closure?", snap.CurrentQuestion)
	assert.Len(t, c.remembered(), 1)
}

func TestController_AssessmentErrorKeepsQuestion(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText("What is a closure?"),
		llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("429")}},
		llm.MockText("no"),
	)
	c := newTestController(mock)
	ctx := context.Background()
	_, err := c.SubmitSkillAndLevel("Go", 5)
	require.NoError(t, err)
	_, err = c.NextQuestion(ctx)
	require.NoError(t, err)

	_, err = c.SubmitAnswer(ctx, "a function value")
	var assessErr *AssessmentError
	require.ErrorAs(t, err, &assessErr)
	assert.Equal(t, "What is a closure?", assessErr.Question)

	snap := c.Snapshot()
	assert.Equal(t, PhaseAwaitingAnswer, snap.Phase)
	assert.Equal(t, "What is a closure?", snap.CurrentQuestion)
	assert.Empty(t, snap.Answers)
	assert.Equal(t, 5, snap.Level)

	res, err := c.SubmitAnswer(ctx, "a function value")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 4, res.LevelAfter)
}

func TestController_RejectsMisuse(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockText("Q?"))
	c := newTestController(mock)
	ctx := context.Background()

	_, err := c.NextQuestion(ctx)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	_, err = c.SubmitAnswer(ctx, "a")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = c.SubmitSkillAndLevel("Go", 5)
	require.NoError(t, err)
	_, err = c.SubmitSkillAndLevel("Go", 5)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = c.NextQuestion(ctx)
	require.NoError(t, err)
	_, err = c.SubmitAnswer(ctx, "  ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)
	assert.Equal(t, 1, mock.CallCount())
}

func TestController_TagsCallsWithSession(t *testing.T) {
	var seen []string
	c := NewController(
		generatorFunc(func(ctx context.Context, in GenerateInput, w *history.Window) (string, error) {
			seen = append(seen, llm.SessionFrom(ctx))
			return "Q?", nil
		}),
		assessorFunc(func(ctx context.Context, q, a string, w *history.Window) (Verdict, error) {
			seen = append(seen, llm.SessionFrom(ctx))
			return Verdict{Correct: true}, nil
		}),
		DefaultOptions(), quietLogger(),
	)
	ctx := context.Background()

	snap, err := c.SubmitSkillAndLevel("Go", 5)
	require.NoError(t, err)
	_, err = c.NextQuestion(ctx)
	require.NoError(t, err)
	_, err = c.SubmitAnswer(ctx, "a")
	require.NoError(t, err)

	assert.Equal(t, []string{snap.SessionID, snap.SessionID}, seen)

	c.Reset()
	next, err := c.SubmitSkillAndLevel("Go", 5)
	require.NoError(t, err)
	assert.NotEqual(t, snap.SessionID, next.SessionID)
}

func TestController_ResetDuringCallDiscardsResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})

	c := NewController(
		generatorFunc(func(ctx context.Context, in GenerateInput, w *history.Window) (string, error) {
			close(started)
			<-release
			w.Append(history.Exchange{Human: "late", AI: "late"})
			return "late question", nil
		}),
		assessorFunc(func(ctx context.Context, q, a string, w *history.Window) (Verdict, error) {
			return Verdict{}, nil
		}),
		DefaultOptions(), quietLogger(),
	)
	_, err := c.SubmitSkillAndLevel("Go", 5)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := c.NextQuestion(context.Background())
		done <- err
	}()

	<-started
	_, err = c.NextQuestion(context.Background())
	assert.ErrorIs(t, err, ErrBusy)

	c.Reset()
	close(release)

	assert.ErrorIs(t, <-done, ErrSessionReset)
	snap := c.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.CurrentQuestion)
	assert.Empty(t, c.remembered())
}

func TestController_VerdictMode(t *testing.T) {
	mock := llm.NewMockProvider(
		llm.MockText("Is a nil map writable?"),
		llm.MockText(`{"correct": false, "reason": "writing to a nil map panics"}`),
	)
	opts := DefaultOptions()
	opts.AssessMode = AssessVerdict
	c := New(mock, opts, quietLogger())
	ctx := context.Background()

	_, err := c.SubmitSkillAndLevel("Go", 5)
	require.NoError(t, err)
	_, err = c.NextQuestion(ctx)
	require.NoError(t, err)

	res, err := c.SubmitAnswer(ctx, "yes")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, "writing to a nil map panics", res.Reason)

	last, _ := mock.LastCall()
	require.NotNil(t, last.Schema)
	assert.Equal(t, "answer-verdict", last.Schema.Name)
	assert.True(t, strings.Contains(last.Messages[len(last.Messages)-1].Content, "JSON"))
}

type generatorFunc func(ctx context.Context, in GenerateInput, w *history.Window) (string, error)

func (f generatorFunc) Generate(ctx context.Context, in GenerateInput, w *history.Window) (string, error) {
	return f(ctx, in, w)
}

type assessorFunc func(ctx context.Context, q, a string, w *history.Window) (Verdict, error)

func (f assessorFunc) Assess(ctx context.Context, q, a string, w *history.Window) (Verdict, error) {
	return f(ctx, q, a, w)
}
