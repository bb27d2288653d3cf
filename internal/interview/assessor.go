package interview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/interviewbot/internal/history"
	"github.com/abhisek/interviewbot/internal/llm"
)

// AssessMode selects how the model's judgment is read.
type AssessMode string

const (
	// AssessSubstring treats any reply containing "yes", in any case, as
	// correct. "Yesterday" counts too.
	AssessSubstring AssessMode = "substring"

	// AssessVerdict asks for a JSON verdict validated against a schema.
	AssessVerdict AssessMode = "verdict"
)

// Verdict is the assessor's judgment of one answer.
type Verdict struct {
	Correct bool
	Reply   string
	Reason  string
}

// AnswerAssessor judges whether an answer to a question is correct.
type AnswerAssessor interface {
	Assess(ctx context.Context, question, answer string, window *history.Window) (Verdict, error)
}

// IsAffirmative reports whether reply contains "yes", ignoring case.
func IsAffirmative(reply string) bool {
	return strings.Contains(strings.ToLower(reply), "yes")
}

// LLMAssessor judges answers with a language model, sharing the
// conversation window with question generation.
type LLMAssessor struct {
	provider    llm.Provider
	mode        AssessMode
	maxTokens   int
	temperature float64
}

// NewLLMAssessor creates an assessor backed by provider.
func NewLLMAssessor(provider llm.Provider, opts Options) *LLMAssessor {
	mode := opts.AssessMode
	if mode == "" {
		mode = AssessSubstring
	}
	return &LLMAssessor{
		provider:    provider,
		mode:        mode,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
}

func (a *LLMAssessor) Assess(ctx context.Context, question, answer string, window *history.Window) (Verdict, error) {
	directive := AssessmentDirective(question, answer)
	var schema *llm.Schema
	if a.mode == AssessVerdict {
		directive = verdictDirective(question, answer)
		schema = verdictSchema
	}

	resp, err := a.provider.Generate(llm.WithPurpose(ctx, PurposeAssessment), llm.Request{
		System:      SystemPrompt,
		Messages:    append(window.Messages(), llm.Message{Role: llm.RoleUser, Content: directive}),
		Schema:      schema,
		MaxTokens:   a.maxTokens,
		Temperature: a.temperature,
	})
	if err != nil {
		return Verdict{}, &AssessmentError{Question: question, Err: err}
	}

	reply := resp.Text()
	if reply == "" {
		return Verdict{}, &AssessmentError{
			Question: question,
			Err:      &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty verdict")},
		}
	}

	v := Verdict{Reply: reply, Correct: IsAffirmative(reply)}
	if a.mode == AssessVerdict {
		var parsed struct {
			Correct bool   `json:"correct"`
			Reason  string `json:"reason"`
		}
		if err := json.Unmarshal(resp.Content, &parsed); err != nil {
			return Verdict{}, &AssessmentError{
				Question: question,
				Err:      &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("decode verdict: %w", err)},
			}
		}
		v.Correct = parsed.Correct
		v.Reason = parsed.Reason
	}

	window.Append(history.Exchange{Human: directive, AI: reply})
	return v, nil
}
