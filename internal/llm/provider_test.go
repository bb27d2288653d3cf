package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`What is a goroutine?`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockText("yes"),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text() != "What is a goroutine?" {
		t.Fatalf("expected question text, got %q", resp1.Text())
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text() != "yes" {
		t.Fatalf("expected yes, got %q", resp2.Text())
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
	if !IsUnreachable(err) {
		t.Fatal("expected IsUnreachable for an empty queue")
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(MockText("ok"))

	req := Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	}
	_, _ = mock.Generate(context.Background(), req)

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	last, ok := mock.LastCall()
	if !ok || last.System != "sys" {
		t.Fatalf("expected last call with system 'sys', got %+v", last)
	}
}

func TestMockProvider_ReturnsConfiguredError(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrRateLimit{RetryAfter: 0}},
	)

	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got: %T", err)
	}
}

func TestOfflineProvider(t *testing.T) {
	p := NewOfflineProvider()
	ctx := context.Background()

	q, err := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "Generate an interview question on Go"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(q.Text(), "Sample question 1") {
		t.Fatalf("unexpected question %q", q.Text())
	}

	v, err := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "Question: x\nAnswer: y"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Text() != "yes" {
		t.Fatalf("expected yes, got %q", v.Text())
	}

	q2, _ := p.Generate(ctx, Request{Messages: []Message{{Role: RoleUser, Content: "again"}}})
	if !strings.HasPrefix(q2.Text(), "Sample question 2") {
		t.Fatalf("expected numbering to advance, got %q", q2.Text())
	}
}

func TestResponseText(t *testing.T) {
	var nilResp *Response
	if nilResp.Text() != "" {
		t.Fatal("nil response should have empty text")
	}
	r := &Response{Content: json.RawMessage("  Yes, that's right.\n")}
	if r.Text() != "Yes, that's right." {
		t.Fatalf("unexpected text %q", r.Text())
	}
}

func TestContextValues(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if s := SessionFrom(ctx); s != "" {
		t.Fatalf("expected empty session, got %q", s)
	}

	ctx = WithPurpose(ctx, "question-gen")
	ctx = WithSession(ctx, "sess-1")
	if p := PurposeFrom(ctx); p != "question-gen" {
		t.Fatalf("expected 'question-gen', got %q", p)
	}
	if s := SessionFrom(ctx); s != "sess-1" {
		t.Fatalf("expected 'sess-1', got %q", s)
	}
}

func TestConfig_Validate(t *testing.T) {
	withProvider := func(name string, mutate func(*Config)) Config {
		cfg := DefaultConfig()
		cfg.Provider = name
		if mutate != nil {
			mutate(&cfg)
		}
		return cfg
	}

	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"groq without key", withProvider(ProviderGroq, nil), true},
		{"groq with key", withProvider(ProviderGroq, func(c *Config) { c.Groq.APIKey = "gsk" }), false},
		{"anthropic without key", withProvider(ProviderAnthropic, nil), true},
		{"anthropic with key", withProvider(ProviderAnthropic, func(c *Config) { c.Anthropic.APIKey = "sk" }), false},
		{"openai with key", withProvider(ProviderOpenAI, func(c *Config) { c.OpenAI.APIKey = "sk" }), false},
		{"gemini without key", withProvider(ProviderGemini, nil), true},
		{"openrouter with key", withProvider(ProviderOpenRouter, func(c *Config) { c.OpenRouter.APIKey = "sk" }), false},
		{"mock needs no key", withProvider(ProviderMock, nil), false},
		{"unknown provider", withProvider("unknown", nil), true},
		{"zero attempts", withProvider(ProviderMock, func(c *Config) { c.Retry.MaxAttempts = 0 }), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewProvider_Mock(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock model, got %q", p.ModelID())
	}
	resp, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "q"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Text() == "" {
		t.Fatal("expected offline question text")
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	if _, err := NewProvider(context.Background(), DefaultConfig(), nil, nil); err == nil {
		t.Fatal("expected error without GROQ_API_KEY")
	}
}
