// Package gameloop drives a script's set_up/update functions frame by frame
// until the script calls stop().
package gameloop

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/dop251/goja"

	"corosched/internal/script"
)

// Loop runs the frame loop of one script host.
type Loop struct {
	host    *script.Host
	clock   *FrameClock
	frame   time.Duration
	logger  *slog.Logger
	stopped atomic.Bool
}

// New creates a loop over host. A positive frame paces updates to at most
// one per frame; zero runs them back to back.
func New(host *script.Host, frame time.Duration, logger *slog.Logger) *Loop {
	return &Loop{
		host:   host,
		clock:  NewFrameClock(),
		frame:  frame,
		logger: logger.With("component", "gameloop"),
	}
}

// Stop asks the loop to exit after the current frame. Safe from any goroutine.
func (l *Loop) Stop() { l.stopped.Store(true) }

// Frames returns how many update calls have been made.
func (l *Loop) Frames() int64 { return l.clock.Count() }

// Run calls set_up once, then update(delta_seconds) every frame until the
// script calls stop() or ctx is done. The global stop is removed on return.
func (l *Loop) Run(ctx context.Context) error {
	setUp, err := l.host.Function("set_up")
	if err != nil {
		return fmt.Errorf("game loop: %w", err)
	}
	update, err := l.host.Function("update")
	if err != nil {
		return fmt.Errorf("game loop: %w", err)
	}

	vm := l.host.Runtime()
	if err := vm.Set("stop", func(goja.FunctionCall) goja.Value {
		l.Stop()
		return goja.Undefined()
	}); err != nil {
		return fmt.Errorf("inject stop: %w", err)
	}
	defer vm.GlobalObject().Delete("stop")

	// a script stuck inside update can only be stopped by interrupting the vm
	interrupted := make(chan struct{})
	release := context.AfterFunc(ctx, func() {
		vm.Interrupt(ctx.Err())
		close(interrupted)
	})
	defer func() {
		if !release() {
			// the interrupt already started; let it land before clearing it
			<-interrupted
		}
		vm.ClearInterrupt()
	}()

	if _, err := setUp(goja.Undefined()); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("set_up game loop: %w", err)
	}

	if l.frame > 0 {
		l.clock.Start(l.frame)
		defer l.clock.Stop()
	}
	l.logger.Debug("game loop started", "frame", l.frame)

	for !l.stopped.Load() {
		if l.frame > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-l.clock.Ch:
			}
		} else if err := ctx.Err(); err != nil {
			return err
		}

		delta := l.clock.Turn()
		if _, err := update(goja.Undefined(), vm.ToValue(delta)); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("game loop update: %w", err)
		}
	}

	l.logger.Debug("game loop stopped", "frames", l.clock.Count())
	return nil
}
