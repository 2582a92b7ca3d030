package sched

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Policy names a queueing policy.
type Policy string

const (
	PolicyFIFO    Policy = "fifo"
	PolicyLottery Policy = "lottery"
)

// ParsePolicy accepts "fifo" or "lottery", case-insensitively.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyFIFO, PolicyLottery:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown policy %q", ErrInvalidArgument, s)
	}
}

// Driver is the policy-independent surface of a Scheduler, used by hosts
// that pick the policy at runtime.
type Driver interface {
	AddTask(h Handle, priority int64) (TaskID, error)
	HasTasks() bool
	Len() int
	Lifetime() uint64
	Step()
	Steps(count int64) error
	Run()
}

var (
	_ Driver = (*Scheduler[*FIFO])(nil)
	_ Driver = (*Scheduler[*Lottery])(nil)
)

// NewDriver builds a scheduler for the given policy. A zero seed gives the
// lottery a randomly seeded generator; any other seed makes draws repeatable.
func NewDriver(p Policy, seed uint64, opts ...Option) (Driver, error) {
	switch p {
	case PolicyFIFO:
		return New(NewFIFO(), opts...), nil
	case PolicyLottery:
		return New(NewLottery(SeededRand(seed)), opts...), nil
	default:
		return nil, fmt.Errorf("%w: unknown policy %q", ErrInvalidArgument, string(p))
	}
}

// SeededRand returns a generator seeded with seed, or nil for seed 0.
func SeededRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return nil
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
