package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"corosched/internal/sched"
)

func newTasksCmd() *cobra.Command {
	var (
		policy string
		steps  int64
		events string
	)

	cmd := &cobra.Command{
		Use:   "tasks <script[:priority]>...",
		Short: "Schedule each script as one task and drive them",
		Long: "Each script becomes one task whose body may `yield` at top level.\n" +
			"Without --steps the scheduler runs until every task has finished.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if cmd.Flags().Changed("policy") {
				cfg.Policy = policy
			}
			p, err := sched.ParsePolicy(cfg.Policy)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("steps") && steps <= 0 {
				return fmt.Errorf("%w: --steps must be positive, got %d", sched.ErrInvalidArgument, steps)
			}

			evlog, err := openEventLog(events)
			if err != nil {
				return err
			}
			defer func() { err = errors.Join(err, evlog.Close()) }()

			host, err := newHost(cmd, evlog)
			if err != nil {
				return err
			}
			opts := append([]sched.Option{sched.WithLogger(logger)}, evlog.options()...)
			d, err := sched.NewDriver(p, cfg.Seed, opts...)
			if err != nil {
				return err
			}

			for _, arg := range args {
				path, priority := splitPriority(arg)
				th, err := host.LoadFile(path)
				if err != nil {
					return err
				}
				if _, err := d.AddTask(th, priority); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}

			if steps > 0 {
				if err := d.Steps(steps); err != nil {
					return err
				}
			} else {
				d.Run()
			}

			logger.Info("tasks done", "policy", string(p), "lifetime", d.Lifetime(), "remaining", d.Len())
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "fifo", "Queueing policy (fifo, lottery)")
	cmd.Flags().Int64Var(&steps, "steps", 0, "Run this many steps instead of running to completion")
	cmd.Flags().StringVar(&events, "events", "", "Write scheduler events to this CSV file")
	return cmd
}

// splitPriority parses "path:priority". Without a numeric suffix the
// priority defaults to 1 and the whole argument is the path.
func splitPriority(arg string) (string, int64) {
	i := strings.LastIndex(arg, ":")
	if i < 0 {
		return arg, 1
	}
	p, err := strconv.ParseInt(arg[i+1:], 10, 64)
	if err != nil {
		return arg, 1
	}
	return arg[:i], p
}
