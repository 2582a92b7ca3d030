package cli

import (
	"fmt"
	"os"

	"corosched/internal/sched"
)

// eventLog optionally records scheduler events to a CSV file.
type eventLog struct {
	f   *os.File
	rec *sched.CSVRecorder
}

func openEventLog(path string) (*eventLog, error) {
	if path == "" {
		return &eventLog{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("open event log: %w", err)
	}
	return &eventLog{f: f, rec: sched.NewCSVRecorder(f)}, nil
}

// options returns the scheduler options wiring the log in, if any.
func (e *eventLog) options() []sched.Option {
	if e.rec == nil {
		return nil
	}
	return []sched.Option{sched.WithObserver(e.rec.Observe)}
}

func (e *eventLog) Close() error {
	if e.f == nil {
		return nil
	}
	flushErr := e.rec.Flush()
	closeErr := e.f.Close()
	if flushErr != nil {
		return fmt.Errorf("write event log: %w", flushErr)
	}
	return closeErr
}
