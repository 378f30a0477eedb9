// ABOUTME: Root Cobra command for gains CLI.
// ABOUTME: Wires config, logging, storage and the extraction pipeline via PersistentPre/PostRunE.
package main

import (
	"fmt"
	"log/slog"

	"github.com/harperreed/gains/internal/config"
	"github.com/harperreed/gains/internal/extractor"
	"github.com/harperreed/gains/internal/inference"
	"github.com/harperreed/gains/internal/logging"
	"github.com/harperreed/gains/internal/storage"
	"github.com/harperreed/gains/internal/workoutlog"
	"github.com/spf13/cobra"
)

var version = "dev"

var (
	cfg      *config.Config
	repo     *storage.DB
	logs     *workoutlog.Service
	logger   *slog.Logger
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:     "gains",
	Short:   "Free-text workout log with structured extraction",
	Version: version,
	Long: `Gains turns free-text workout notes into structured training data.

Write your session the way you would in a notebook. A hosted language model
extracts exercises (sets, reps, weight), daily metrics such as sleep or pain,
and notes. The raw text is always kept, so extraction can be re-run later.

QUICK START:

  $ gains log add --session "Pull day" "Pull ups 3x8, slept badly, traps sore"
  $ gains log list                     # Recent sessions
  $ gains log show abc123              # One session with extracted data
  $ gains exercises show "pull ups"    # Every set you logged for an exercise
  $ gains metrics --name sleep         # Sleep over time

EXTRACTION:

  Set HF_TOKEN to a Hugging Face API token. The model and endpoint can be
  changed with GAINS_MODEL_ID and GAINS_INFERENCE_URL or in the config file.

  $ gains parse "Bench 5x5 80kg"       # Dry run, prints the extracted JSON

MCP INTEGRATION:

  Run 'gains mcp' to start the Model Context Protocol server:

  {
    "mcpServers": {
      "gains": { "command": "gains", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Logs are stored in SQLite at ~/.local/share/gains/gains.db.
  Override with GAINS_DATA_DIR or data_dir in ~/.config/gains/config.json.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't touch data
		if skipSetup(cmd) {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger, closeLog = logging.New(logging.Options{
			Level:  cfg.GetLogLevel(),
			Format: cfg.LogFormat,
			File:   cfg.GetLogFile(),
			Quiet:  cmd.Name() == "mcp",
		})
		slog.SetDefault(logger)

		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}

		client := inference.NewClient(cfg.InferenceOptions())
		logger.Debug("inference client ready", "url", client.URL())
		logs = workoutlog.NewService(repo, extractor.New(client, logger), logger)
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			if err := repo.Close(); err != nil {
				return err
			}
		}
		if closeLog != nil {
			return closeLog()
		}
		return nil
	},
}

func skipSetup(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "help", "version", "install-skill", "completion":
		return true
	}
	return cmd.Parent() != nil && cmd.Parent().Name() == "completion"
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
