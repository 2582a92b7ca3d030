package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"corosched/internal/script"
)

func newRunCmd() *cobra.Command {
	var events string

	cmd := &cobra.Command{
		Use:   "run <script>",
		Short: "Execute a script with the scheduler module available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			evlog, err := openEventLog(events)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, evlog.Close()) }()

			host, err := newHost(cmd, evlog)
			if err != nil {
				return err
			}
			logger.Debug("running script", "path", args[0])
			return host.ExecFile(args[0])
		},
	}

	cmd.Flags().StringVar(&events, "events", "", "Write scheduler events to this CSV file")
	return cmd
}

func newHost(cmd *cobra.Command, evlog *eventLog) (*script.Host, error) {
	return script.New(
		script.WithOutput(cmd.OutOrStdout()),
		script.WithLogger(logger),
		script.WithSeed(cfg.Seed),
		script.WithSchedulerOptions(evlog.options()...),
	)
}
