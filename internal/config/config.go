// Package config loads interviewbot settings from the environment, an
// optional .env file and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"github.com/abhisek/interviewbot/internal/interview"
	"github.com/abhisek/interviewbot/internal/llm"
	"github.com/abhisek/interviewbot/internal/logging"
	"github.com/abhisek/interviewbot/internal/store"
)

// ConfigError reports a configuration problem found at startup. It is fatal.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Config is the full process configuration.
type Config struct {
	LLM       llm.Config      `yaml:"llm"`
	Log       logging.Config  `yaml:"log"`
	Interview InterviewConfig `yaml:"interview"`

	// DBPath is the request audit log database. Empty means the XDG default.
	DBPath string `yaml:"db" env:"INTERVIEWBOT_DB" env-description:"Path of the SQLite request log"`

	// LogFile receives log output while the TUI owns the terminal. Empty
	// means interviewbot.log next to the database.
	LogFile string `yaml:"log_file" env:"INTERVIEWBOT_LOG_FILE" env-description:"Log file used by the interactive session"`
}

// InterviewConfig tunes the collaborator calls of an interview.
type InterviewConfig struct {
	MaxTokens   int     `yaml:"max_tokens" env:"INTERVIEWBOT_MAX_TOKENS" env-default:"512" env-description:"Max tokens per model reply"`
	Temperature float64 `yaml:"temperature" env:"INTERVIEWBOT_TEMPERATURE" env-default:"0.7" env-description:"Sampling temperature"`
	HistorySize int     `yaml:"history_size" env:"INTERVIEWBOT_HISTORY_SIZE" env-default:"5" env-description:"Exchanges remembered between calls"`
	AssessMode  string  `yaml:"assess_mode" env:"INTERVIEWBOT_ASSESS_MODE" env-default:"substring" env-description:"How answers are judged (substring or verdict)"`
}

// Options converts the settings into interview options.
func (c InterviewConfig) Options() interview.Options {
	return interview.Options{
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		HistorySize: c.HistorySize,
		AssessMode:  interview.AssessMode(c.AssessMode),
	}
}

// Load reads configuration with Read and validates it.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read reads configuration without validating it. Variables from a .env
// file in the working directory are added to the environment first without
// overriding anything already set. When path is non-empty the YAML file is
// read and environment variables override its values.
func Read(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, &ConfigError{Field: ".env", Err: err}
	}

	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return nil, &ConfigError{Field: "read", Err: err}
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail on first use.
func (c *Config) Validate() error {
	if err := c.LLM.Validate(); err != nil {
		return &ConfigError{Field: "llm", Err: err}
	}
	switch interview.AssessMode(c.Interview.AssessMode) {
	case interview.AssessSubstring, interview.AssessVerdict:
	default:
		return &ConfigError{
			Field: "interview.assess_mode",
			Err:   fmt.Errorf("unknown mode %q (want substring or verdict)", c.Interview.AssessMode),
		}
	}
	if c.Interview.HistorySize < 1 {
		return &ConfigError{
			Field: "interview.history_size",
			Err:   fmt.Errorf("must be at least 1, got %d", c.Interview.HistorySize),
		}
	}
	return nil
}

// ResolveDBPath returns DBPath, or the default location when it is unset.
// The parent directory is created either way.
func (c *Config) ResolveDBPath() (string, error) {
	if c.DBPath == "" {
		return store.DefaultDBPath()
	}
	return c.DBPath, store.EnsureDir(c.DBPath)
}

// ResolveLogFile returns LogFile, or interviewbot.log beside dbPath.
func (c *Config) ResolveLogFile(dbPath string) string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(filepath.Dir(dbPath), "interviewbot.log")
}

// Usage describes every environment variable the configuration reads.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
