package llm

import "fmt"

const defaultGroqBaseURL = "https://api.groq.com/openai/v1"

// groqModels maps friendly names to Groq model IDs. The first entry
// replaces the llama3-8b-8192 model Groq retired.
var groqModels = map[string]string{
	"llama3-8b":  "llama-3.1-8b-instant",
	"llama3-70b": "llama-3.3-70b-versatile",
}

// NewGroqProvider creates a provider targeting Groq's OpenAI-compatible API.
func NewGroqProvider(cfg GroqConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("groq API key is required")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	return newOpenAICompatible(cfg.APIKey, baseURL, resolveModel(cfg.Model, groqModels)), nil
}
