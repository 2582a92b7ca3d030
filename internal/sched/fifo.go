package sched

import "github.com/emirpasic/gods/queues/linkedlistqueue"

// FIFO serves tasks in insertion order. Re-enqueued tasks go behind every
// task already waiting, which gives round-robin service.
type FIFO struct {
	queue *linkedlistqueue.Queue
}

// NewFIFO returns an empty FIFO task list.
func NewFIFO() *FIFO {
	return &FIFO{queue: linkedlistqueue.New()}
}

// Peek removes the task that has been resident the longest.
func (f *FIFO) Peek() (*Task, bool) {
	v, ok := f.queue.Dequeue()
	if !ok {
		return nil, false
	}
	return v.(*Task), true
}

// Add appends t to the tail.
func (f *FIFO) Add(t *Task) { f.queue.Enqueue(t) }

func (f *FIFO) IsEmpty() bool { return f.queue.Empty() }
func (f *FIFO) Len() int { return f.queue.Size() }
