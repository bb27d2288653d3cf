package llm

import (
	"fmt"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration. Fields are populated by
// cleanenv from the environment or a YAML config file.
type Config struct {
	// Provider selects which collaborator to use.
	Provider string `yaml:"provider" env:"INTERVIEWBOT_LLM_PROVIDER" env-default:"groq" env-description:"LLM provider (groq, openai, anthropic, gemini, openrouter, mock)"`

	Groq       GroqConfig       `yaml:"groq"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds a single collaborator call including retries. Zero
	// leaves calls unbounded; a reset still cancels them.
	Timeout time.Duration `yaml:"timeout" env:"INTERVIEWBOT_LLM_TIMEOUT" env-default:"0s" env-description:"Timeout for one LLM call including retries (0 disables)"`
}

// GroqConfig holds Groq-specific configuration. Groq serves an
// OpenAI-compatible API.
type GroqConfig struct {
	APIKey  string `yaml:"api_key" env:"GROQ_API_KEY" env-description:"Groq API key"`
	Model   string `yaml:"model" env:"INTERVIEWBOT_GROQ_MODEL" env-default:"llama-3.1-8b-instant"`
	BaseURL string `yaml:"base_url" env:"INTERVIEWBOT_GROQ_BASE_URL"`
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" env:"OPENAI_API_KEY" env-description:"OpenAI API key"`
	Model   string `yaml:"model" env:"INTERVIEWBOT_OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL string `yaml:"base_url" env:"INTERVIEWBOT_OPENAI_BASE_URL"`
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"ANTHROPIC_API_KEY" env-description:"Anthropic API key"`
	Model  string `yaml:"model" env:"INTERVIEWBOT_ANTHROPIC_MODEL" env-default:"claude-haiku"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"GEMINI_API_KEY" env-description:"Gemini API key"`
	Model  string `yaml:"model" env:"INTERVIEWBOT_GEMINI_MODEL" env-default:"gemini-flash"`
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key" env:"OPENROUTER_API_KEY" env-description:"OpenRouter API key"`
	Model   string `yaml:"model" env:"INTERVIEWBOT_OPENROUTER_MODEL" env-default:"meta-llama/llama-3.1-8b-instruct"`
	BaseURL string `yaml:"base_url" env:"INTERVIEWBOT_OPENROUTER_BASE_URL"`
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"INTERVIEWBOT_LLM_RETRY_ATTEMPTS" env-default:"3"`
	InitialWait time.Duration `yaml:"initial_wait" env:"INTERVIEWBOT_LLM_RETRY_INITIAL_WAIT" env-default:"1s"`
	MaxWait     time.Duration `yaml:"max_wait" env:"INTERVIEWBOT_LLM_RETRY_MAX_WAIT" env-default:"10s"`
	Multiplier  float64       `yaml:"multiplier" env:"INTERVIEWBOT_LLM_RETRY_MULTIPLIER" env-default:"2.0"`
}

// DefaultConfig returns a Config with the same defaults the env tags carry.
// Used by tests and by callers that build a config by hand.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGroq,
		Groq: GroqConfig{
			Model: "llama-3.1-8b-instant",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "meta-llama/llama-3.1-8b-instruct",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
	}
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGroq:
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is required for the groq provider")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY is required for the openai provider")
		}
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY is required for the gemini provider")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}
