// internal/sched/lottery.go

package sched

import (
	"math"
	"math/rand/v2"

	"github.com/emirpasic/gods/lists/arraylist"
)

// Lottery picks the next task at random, weighted by priority: every unit
// of priority is one ticket. The first task in storage order holds one
// extra ticket and the last one ticket fewer, see indexOfTicket.
type Lottery struct {
	tasks *arraylist.List
	rng   *rand.Rand // private to this list
}

// NewLottery returns an empty lottery task list drawing from r.
// A nil r gets a freshly seeded generator of its own.
func NewLottery(r *rand.Rand) *Lottery {
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Lottery{
		tasks: arraylist.New(),
		rng:   r,
	}
}

// Peek draws a ticket and removes the task holding it.
func (l *Lottery) Peek() (*Task, bool) {
	if l.tasks.Empty() {
		return nil, false
	}
	idx := l.choose()
	v, _ := l.tasks.Get(idx)
	l.tasks.Remove(idx)
	return v.(*Task), true
}

// Add appends t. Storage order is only the scan order of the draw.
func (l *Lottery) Add(t *Task) { l.tasks.Add(t) }

func (l *Lottery) IsEmpty() bool { return l.tasks.Empty() }
func (l *Lottery) Len() int { return l.tasks.Size() }

func (l *Lottery) choose() int {
	ticket := l.rng.Uint64N(l.totalTickets())
	return l.indexOfTicket(ticket)
}

// totalTickets is at least the number of tasks since every priority is >= 1.
// It saturates at MaxUint64 instead of wrapping.
func (l *Lottery) totalTickets() uint64 {
	var total uint64
	l.tasks.Each(func(_ int, v interface{}) {
		total = addTickets(total, v.(*Task).Priority())
	})
	return total
}

// indexOfTicket scans in storage order and returns the first task whose
// running ticket sum is greater than or equal to the drawn ticket. With
// tickets drawn from [0, total), the first task owns [0, sum] and every
// later task i owns (sum before i, sum including i].
func (l *Lottery) indexOfTicket(ticket uint64) int {
	var sum uint64
	it := l.tasks.Iterator()
	for it.Next() {
		sum = addTickets(sum, it.Value().(*Task).Priority())
		if sum >= ticket {
			return it.Index()
		}
	}
	// unreachable for a ticket drawn from [0, totalTickets)
	return 0
}

func addTickets(sum uint64, priority int64) uint64 {
	p := uint64(priority)
	if sum > math.MaxUint64-p {
		return math.MaxUint64
	}
	return sum + p
}
