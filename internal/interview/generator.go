package interview

import (
	"context"
	"errors"

	"github.com/abhisek/interviewbot/internal/history"
	"github.com/abhisek/interviewbot/internal/llm"
)

// GenerateInput is what a question is generated from.
type GenerateInput struct {
	Skill       string
	Description LevelDescription
	Level       int
}

// QuestionGenerator produces the next interview question.
type QuestionGenerator interface {
	Generate(ctx context.Context, in GenerateInput, window *history.Window) (string, error)
}

// LLMGenerator generates questions with a language model. The window's
// exchanges precede the directive, and a successful exchange is appended
// to the window.
type LLMGenerator struct {
	provider    llm.Provider
	maxTokens   int
	temperature float64
}

// NewLLMGenerator creates a generator backed by provider.
func NewLLMGenerator(provider llm.Provider, opts Options) *LLMGenerator {
	return &LLMGenerator{
		provider:    provider,
		maxTokens:   opts.MaxTokens,
		temperature: opts.Temperature,
	}
}

func (g *LLMGenerator) Generate(ctx context.Context, in GenerateInput, window *history.Window) (string, error) {
	directive := QuestionDirective(in)

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, PurposeQuestionGen), llm.Request{
		System:      SystemPrompt,
		Messages:    append(window.Messages(), llm.Message{Role: llm.RoleUser, Content: directive}),
		MaxTokens:   g.maxTokens,
		Temperature: g.temperature,
	})
	if err != nil {
		return "", &GenerationError{Skill: in.Skill, Level: in.Level, Err: err}
	}

	question := resp.Text()
	if question == "" {
		return "", &GenerationError{
			Skill: in.Skill,
			Level: in.Level,
			Err:   &llm.ErrInvalidResponse{Content: resp.Content, Err: errors.New("empty question")},
		}
	}

	window.Append(history.Exchange{Human: directive, AI: question})
	return question, nil
}
