package job

import (
	"time"
)

// Sleep returns a coroutine that keeps yielding until d has elapsed since
// its first slice, then finishes.
func Sleep(d time.Duration) *Coroutine {
	return sleepWith(d, time.Now)
}

func sleepWith(d time.Duration, now func() time.Time) *Coroutine {
	return New(func(yield func()) error {
		deadline := now().Add(d)
		for now().Before(deadline) {
			yield()
		}
		return nil
	})
}
