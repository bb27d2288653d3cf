package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/interviewbot/internal/config"
	"github.com/abhisek/interviewbot/internal/logging"
	"github.com/abhisek/interviewbot/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "interviewbot",
	Short: "Adaptive technical interview in the terminal",
	Long: "interviewbot asks ten questions on a skill of your choice, judges each answer\n" +
		"with a language model and makes the next question harder or easier.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the command line with ctx as the base context.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (environment variables override it)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides INTERVIEWBOT_DB env var)")

	if usage := config.Usage(); usage != "" {
		rootCmd.Long += "\n\n" + usage
	}

	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration named by --config and applies --db.
// validate is false for commands that never call a model.
func loadConfig(cmd *cobra.Command, validate bool) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	load := config.Read
	if validate {
		load = config.Load
	}
	cfg, err := load(path)
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

// openStore opens the request log for the inspection subcommands. Their
// logs go to stderr.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd, false)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cfg.Log, os.Stderr)

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		return nil, &config.ConfigError{Field: "db", Err: err}
	}
	logger.Debug("opening request log", slog.String("path", dbPath))

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	return st, nil
}
