package cli

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"corosched/internal/gameloop"
)

func newLoopCmd() *cobra.Command {
	var frameMS int

	cmd := &cobra.Command{
		Use:   "loop <script>",
		Short: "Run a script's set_up/update game loop until it calls stop()",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("frame-ms") {
				cfg.FrameMS = max(frameMS, 0)
			}

			host, err := newHost(cmd, &eventLog{})
			if err != nil {
				return err
			}
			if err := host.ExecFile(args[0]); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmdContext(cmd), os.Interrupt)
			defer stop()

			l := gameloop.New(host, time.Duration(cfg.FrameMS)*time.Millisecond, logger)
			err = l.Run(ctx)
			logger.Info("game loop finished", "frames", l.Frames())
			return err
		},
	}

	cmd.Flags().IntVar(&frameMS, "frame-ms", 0, "Minimum milliseconds per frame, 0 for unthrottled")
	return cmd
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
