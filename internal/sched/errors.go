package sched

import "errors"

// ErrInvalidArgument is returned for a non-positive priority or step count.
// Nothing is mutated when it is returned.
var ErrInvalidArgument = errors.New("invalid argument")
