package sched

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestLottery_Empty(t *testing.T) {
	l := NewLottery(nil)
	if !l.IsEmpty() {
		t.Fatal("new lottery is not empty")
	}
	if _, ok := l.Peek(); ok {
		t.Fatal("Peek() on empty lottery returned a task")
	}
}

func TestLottery_SingleTaskAlwaysWins(t *testing.T) {
	l := NewLottery(rand.New(rand.NewPCG(1, 2)))
	task := NewTask(1, 50, &fakeHandle{})

	for i := 0; i < 200; i++ {
		l.Add(task)
		got, ok := l.Peek()
		if !ok || got != task {
			t.Fatalf("draw %d: Peek() = %v, %v; want the only task", i, got, ok)
		}
		if !l.IsEmpty() {
			t.Fatalf("draw %d: task still resident after Peek", i)
		}
	}
}

func TestLottery_IndexOfTicket(t *testing.T) {
	l := NewLottery(nil)
	l.Add(NewTask(1, 1, &fakeHandle{}))
	l.Add(NewTask(2, 3, &fakeHandle{}))
	l.Add(NewTask(3, 2, &fakeHandle{}))

	if got := l.totalTickets(); got != 6 {
		t.Fatalf("totalTickets() = %d, want 6", got)
	}

	// running sums are 1, 4, 6; the first sum >= ticket wins
	tests := []struct {
		ticket uint64
		want   int
	}{
		{0, 0},
		{1, 0},
		{2, 1},
		{3, 1},
		{4, 1},
		{5, 2},
		{99, 0}, // out of range falls back to the first position
	}

	for _, tt := range tests {
		if got := l.indexOfTicket(tt.ticket); got != tt.want {
			t.Errorf("indexOfTicket(%d) = %d, want %d", tt.ticket, got, tt.want)
		}
	}

	l2 := NewLottery(nil)
	l2.Add(NewTask(1, 2, &fakeHandle{}))
	l2.Add(NewTask(2, 1, &fakeHandle{}))
	if got := l2.indexOfTicket(2); got != 0 {
		t.Errorf("[2,1] indexOfTicket(2) = %d, want 0", got)
	}
}

// drawHigh builds a fresh two-task lottery in the given storage order and
// counts how often the priority-3 task wins.
func drawHigh(t *testing.T, r *rand.Rand, highFirst bool, trials int) int {
	t.Helper()
	var wins int
	for i := 0; i < trials; i++ {
		l := NewLottery(r)
		low := NewTask(1, 1, &fakeHandle{})
		high := NewTask(2, 3, &fakeHandle{})
		if highFirst {
			l.Add(high)
			l.Add(low)
		} else {
			l.Add(low)
			l.Add(high)
		}
		got, ok := l.Peek()
		if !ok {
			t.Fatal("Peek() returned nothing with two resident tasks")
		}
		if got == high {
			wins++
		}
	}
	return wins
}

func TestLottery_SelectionFrequencies(t *testing.T) {
	const trials = 20000
	r := rand.New(rand.NewPCG(42, 1042))

	// [1, 3]: tickets 0 and 1 go to the first task, 2 and 3 to the second
	wins := drawHigh(t, r, false, trials)
	exp := trials * 0.5
	dh := float64(wins) - exp
	dl := float64(trials-wins) - exp
	chi2 := dh*dh/exp + dl*dl/exp
	if chi2 > 10.83 { // p = 0.001, one degree of freedom
		t.Errorf("low-first: priority-3 task won %d/%d draws (chi2 = %.2f), want about 50%%", wins, trials, chi2)
	}

	// [3, 1]: the first running sum already covers every ticket in [0, 4)
	if wins := drawHigh(t, r, true, 2000); wins != 2000 {
		t.Errorf("high-first: priority-3 task won %d/2000 draws, want all", wins)
	}
}

func TestLottery_HugePrioritiesDoNotOverflow(t *testing.T) {
	s := New(NewLottery(rand.New(rand.NewPCG(3, 4))))
	handles := make([]*fakeHandle, 4)
	for i := range handles {
		handles[i] = &fakeHandle{}
		if _, err := s.AddTask(handles[i], 1<<62); err != nil {
			t.Fatalf("AddTask: %v", err)
		}
	}

	s.Step()
	if s.Lifetime() != 1 || s.Len() != 3 {
		t.Errorf("Lifetime/Len = %d/%d, want 1/3", s.Lifetime(), s.Len())
	}
	s.Run()
	if s.HasTasks() {
		t.Error("HasTasks() = true after Run")
	}

	l := NewLottery(nil)
	l.Add(NewTask(1, math.MaxInt64, &fakeHandle{}))
	l.Add(NewTask(2, math.MaxInt64, &fakeHandle{}))
	l.Add(NewTask(3, 5, &fakeHandle{}))
	if got := l.totalTickets(); got != math.MaxUint64 {
		t.Errorf("totalTickets() = %d, want saturation at MaxUint64", got)
	}
	if got := l.indexOfTicket(math.MaxUint64 - 1); got != 1 {
		t.Errorf("indexOfTicket(MaxUint64-1) = %d, want 1", got)
	}
}
