package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewbot/internal/app"
	"github.com/abhisek/interviewbot/internal/config"
	"github.com/abhisek/interviewbot/internal/interview"
	"github.com/abhisek/interviewbot/internal/llm"
	"github.com/abhisek/interviewbot/internal/logging"
	"github.com/abhisek/interviewbot/internal/store"
)

// runApp loads the configuration, opens the request log, builds the
// provider chain and launches the TUI. Logs go to a file so they do not
// draw over the screen.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd, true)
	if err != nil {
		return err
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return &config.ConfigError{Field: "db", Err: err}
	}

	logFile, err := logging.OpenFile(cfg.ResolveLogFile(dbPath))
	if err != nil {
		return &config.ConfigError{Field: "log_file", Err: err}
	}
	defer logFile.Close()
	logger := logging.New(cfg.Log, logFile)

	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.EventRepo(), logger)
	if err != nil {
		return &config.ConfigError{Field: "llm", Err: err}
	}

	logger.Info("starting interview session",
		"provider", cfg.LLM.Provider,
		"model", provider.ModelID(),
		"db", dbPath,
	)

	ctrl := interview.New(provider, cfg.Interview.Options(), logger)
	return app.Run(ctx, ctrl)
}
