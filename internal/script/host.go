// Package script embeds a JavaScript runtime (goja) as the host environment
// for the scheduler: it loads scripts, turns functions into resumable
// threads and exposes the scheduler to scripts as the global `scheduler`.
package script

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dop251/goja"

	"corosched/internal/logging"
	"corosched/internal/sched"
)

// LoadError reports a script that could not be read or compiled.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load script %s: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Host owns one goja runtime. It is not safe for concurrent use.
type Host struct {
	vm        *goja.Runtime
	out       io.Writer
	logger    *slog.Logger
	seed      uint64
	lotteries uint64 // lottery schedulers created so far, offsets the seed
	schedOpts []sched.Option
}

// Option configures a Host.
type Option func(*Host)

// WithOutput sets where print writes. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(h *Host) { h.out = w }
}

func WithLogger(l *slog.Logger) Option {
	return func(h *Host) { h.logger = l }
}

// WithSeed makes lottery draws repeatable. 0 keeps them random.
func WithSeed(seed uint64) Option {
	return func(h *Host) { h.seed = seed }
}

// WithSchedulerOptions applies opts to every scheduler the host creates.
func WithSchedulerOptions(opts ...sched.Option) Option {
	return func(h *Host) { h.schedOpts = append(h.schedOpts, opts...) }
}

// New creates a host with the `scheduler` module and `print` installed.
func New(opts ...Option) (*Host, error) {
	h := &Host{
		vm:     goja.New(),
		out:    os.Stdout,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.logger = h.logger.With("component", "script")

	if err := h.vm.Set("print", h.print); err != nil {
		return nil, fmt.Errorf("install print: %w", err)
	}
	if err := h.vm.Set("scheduler", h.schedulerModule()); err != nil {
		return nil, fmt.Errorf("install scheduler: %w", err)
	}
	return h, nil
}

// Runtime exposes the underlying runtime to other host components.
func (h *Host) Runtime() *goja.Runtime { return h.vm }

// Exec compiles and runs src. Compile failures are *LoadError.
func (h *Host) Exec(name, src string) error {
	prog, err := goja.Compile(name, src, false)
	if err != nil {
		return &LoadError{Name: name, Err: err}
	}
	if _, err := h.vm.RunProgram(prog); err != nil {
		return fmt.Errorf("run script %s: %w", name, err)
	}
	return nil
}

// ExecFile reads and runs the script at path.
func (h *Host) ExecFile(path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Name: path, Err: err}
	}
	return h.Exec(path, string(src))
}

// Load turns a whole script into a thread. The script body runs as a
// generator, so top-level `yield` suspends it.
func (h *Host) Load(name, src string) (*Thread, error) {
	// keep the body on the first line so error positions match the file
	wrapped := "(function* () {" + src + "\n})"
	prog, err := goja.Compile(name, wrapped, false)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	v, err := h.vm.RunProgram(prog)
	if err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, &LoadError{Name: name, Err: fmt.Errorf("script did not evaluate to a function")}
	}
	return NewThread(h.vm, fn), nil
}

// LoadFile reads the script at path and turns it into a thread.
func (h *Host) LoadFile(path string) (*Thread, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Name: path, Err: err}
	}
	return h.Load(path, string(src))
}

// Function looks up a global function by name.
func (h *Host) Function(name string) (goja.Callable, error) {
	v := h.vm.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil, fmt.Errorf("function %s is not defined", name)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, fmt.Errorf("%s is not a function", name)
	}
	return fn, nil
}

func (h *Host) print(call goja.FunctionCall) goja.Value {
	parts := make([]string, len(call.Arguments))
	for i, arg := range call.Arguments {
		parts[i] = arg.String()
	}
	fmt.Fprintln(h.out, strings.Join(parts, " "))
	return goja.Undefined()
}
