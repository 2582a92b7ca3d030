package sched

import "testing"

func TestFIFO_PeekInInsertionOrder(t *testing.T) {
	f := NewFIFO()
	if !f.IsEmpty() {
		t.Fatal("new FIFO is not empty")
	}
	if _, ok := f.Peek(); ok {
		t.Fatal("Peek() on empty FIFO returned a task")
	}

	for i := TaskID(1); i <= 4; i++ {
		f.Add(NewTask(i, 1, &fakeHandle{}))
	}
	if f.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", f.Len())
	}

	// re-adding moves a task behind everything already waiting
	first, _ := f.Peek()
	f.Add(first)

	want := []TaskID{2, 3, 4, 1}
	for _, id := range want {
		got, ok := f.Peek()
		if !ok {
			t.Fatalf("Peek() empty, want task %d", id)
		}
		if got.ID() != id {
			t.Errorf("Peek() = task %d, want %d", got.ID(), id)
		}
	}
	if !f.IsEmpty() {
		t.Error("FIFO not empty after draining")
	}
}
