package sched

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

// CSVRecorder writes status events as CSV rows.
type CSVRecorder struct {
	w   *csv.Writer
	err error
}

// NewCSVRecorder writes the header row and returns a recorder writing to w.
func NewCSVRecorder(w io.Writer) *CSVRecorder {
	r := &CSVRecorder{w: csv.NewWriter(w)}
	r.write([]string{"timestamp", "lifetime", "event", "task_id", "priority", "error"})
	return r
}

// Observe records ev. Pass it to WithObserver.
func (r *CSVRecorder) Observe(ev StatusEvent) {
	msg := ""
	if ev.Err != nil {
		msg = ev.Err.Error()
	}
	r.write([]string{
		ev.Time.Format(time.RFC3339Nano),
		strconv.FormatUint(ev.Lifetime, 10),
		ev.Kind.String(),
		strconv.FormatUint(uint64(ev.TaskID), 10),
		strconv.FormatInt(ev.Priority, 10),
		msg,
	})
}

// Flush writes buffered rows and returns the first write error seen.
func (r *CSVRecorder) Flush() error {
	r.w.Flush()
	if r.err != nil {
		return r.err
	}
	return r.w.Error()
}

func (r *CSVRecorder) write(rec []string) {
	if r.err != nil {
		return
	}
	r.err = r.w.Write(rec)
}
