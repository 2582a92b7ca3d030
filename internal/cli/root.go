// Package cli implements the corosched command line.
package cli

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"corosched/internal/config"
	"corosched/internal/logging"
)

var (
	flagConfig    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagSeed      uint64

	cfg    config.Config
	runID  string
	logger *slog.Logger
)

// NewRootCmd creates the root cobra command for corosched.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "corosched",
		Short: "Cooperative script task scheduler",
		Long:  "corosched runs JavaScript tasks on a cooperative scheduler with FIFO or lottery queueing.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load(flagConfig)

			flags := cmd.Flags()
			if flags.Changed("log-level") {
				cfg.LogLevel = flagLogLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = flagLogFormat
			}
			if flags.Changed("seed") {
				cfg.Seed = flagSeed
			}
			if flagDebug {
				cfg.LogLevel = "debug"
			}

			runID = uuid.NewString()
			logger = logging.NewLoggerWithWriter(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat, cmd.ErrOrStderr()).
				With("run_id", runID)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Lottery seed, 0 for random draws")

	root.AddCommand(
		newRunCmd(),
		newLoopCmd(),
		newTasksCmd(),
	)

	return root
}
