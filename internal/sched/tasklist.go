package sched

// TaskList is a queueing policy: a container deciding which resident task
// runs next. Implementations own their tasks exclusively.
type TaskList interface {
	// Peek removes and returns the next task chosen by the policy.
	// It returns false when the list is empty.
	Peek() (*Task, bool)
	// Add inserts a task. It never fails.
	Add(t *Task)
	IsEmpty() bool
	Len() int
}
