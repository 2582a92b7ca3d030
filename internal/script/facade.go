package script

import (
	"fmt"
	"math"

	"github.com/dop251/goja"

	"corosched/internal/sched"
)

// schedulerModule builds the `scheduler` global with one factory per policy.
func (h *Host) schedulerModule() *goja.Object {
	mod := h.vm.NewObject()
	mod.Set("fifo", func(goja.FunctionCall) goja.Value {
		return h.newScheduler(sched.PolicyFIFO)
	})
	mod.Set("lottery", func(goja.FunctionCall) goja.Value {
		return h.newScheduler(sched.PolicyLottery)
	})
	return mod
}

func (h *Host) newScheduler(p sched.Policy) *goja.Object {
	var seed uint64
	if p == sched.PolicyLottery {
		if h.seed != 0 {
			seed = h.seed + h.lotteries
		}
		h.lotteries++
	}

	opts := append([]sched.Option{sched.WithLogger(h.logger)}, h.schedOpts...)
	d, err := sched.NewDriver(p, seed, opts...)
	if err != nil {
		panic(h.vm.NewGoError(err))
	}
	h.logger.Debug("scheduler created", "policy", string(p))
	return h.wrapDriver(d)
}

// wrapDriver exposes d to scripts as
//
//	spawn_task(fn, priority = 1), step(count = 1), run(), has_tasks(), lifetime()
//
// Invalid priorities and step counts are thrown as errors.
func (h *Host) wrapDriver(d sched.Driver) *goja.Object {
	obj := h.vm.NewObject()

	obj.Set("spawn_task", func(call goja.FunctionCall) goja.Value {
		fn, ok := goja.AssertFunction(call.Argument(0))
		if !ok {
			panic(h.vm.NewTypeError("spawn_task expects a function"))
		}
		priority := h.optionalInt(call.Argument(1), 1, "priority")
		id, err := d.AddTask(NewThread(h.vm, fn), priority)
		if err != nil {
			panic(h.vm.NewGoError(err))
		}
		return h.vm.ToValue(uint64(id))
	})

	obj.Set("step", func(call goja.FunctionCall) goja.Value {
		if err := d.Steps(h.optionalInt(call.Argument(0), 1, "step count")); err != nil {
			panic(h.vm.NewGoError(err))
		}
		return goja.Undefined()
	})

	obj.Set("run", func(goja.FunctionCall) goja.Value {
		d.Run()
		return goja.Undefined()
	})

	obj.Set("has_tasks", func(goja.FunctionCall) goja.Value {
		return h.vm.ToValue(d.HasTasks())
	})

	obj.Set("lifetime", func(goja.FunctionCall) goja.Value {
		return h.vm.ToValue(d.Lifetime())
	})

	return obj
}

// optionalInt returns def for a missing argument and throws a TypeError for
// anything that is not an integral number.
func (h *Host) optionalInt(v goja.Value, def int64, what string) int64 {
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return def
	}
	f := v.ToFloat()
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		panic(h.vm.NewTypeError(fmt.Sprintf("%s must be an integer, got %s", what, v.String())))
	}
	return v.ToInteger()
}
