package core

import "testing"

func TestRNGIsDeterministicPerSeed(t *testing.T) {
	a := NewRNG(99)
	b := NewRNG(99)
	for i := 0; i < 100; i++ {
		if a.IntN(1000) != b.IntN(1000) {
			t.Fatalf("same-seed sequences diverged at draw %d", i)
		}
	}

	a.Reseed(99)
	c := NewRNG(99)
	for i := 0; i < 100; i++ {
		if a.IntN(1000) != c.IntN(1000) {
			t.Fatalf("reseed did not restart the sequence at draw %d", i)
		}
	}
}

func TestRNGIntNGuardsNonPositive(t *testing.T) {
	r := NewRNG(1)
	if got := r.IntN(0); got != 0 {
		t.Fatalf("IntN(0) = %d", got)
	}
	if got := r.IntN(-3); got != 0 {
		t.Fatalf("IntN(-3) = %d", got)
	}
}

func TestPingPongStageAndSwap(t *testing.T) {
	p := NewPingPong(3)
	front := p.Front()
	front[0], front[1], front[2] = 1, 2, 3

	p.StageBack()
	back := p.Back()
	for i, want := range []float64{1, 2, 3} {
		if back[i] != want {
			t.Fatalf("back[%d] = %v, want %v", i, back[i], want)
		}
	}

	back[1] = 20
	p.Swap()
	if got := p.Front()[1]; got != 20 {
		t.Fatalf("front[1] after swap = %v, want 20", got)
	}
	if got := p.Back()[1]; got != 2 {
		t.Fatalf("back[1] after swap = %v, want 2", got)
	}
}

func TestFixedStepCapsCatchUp(t *testing.T) {
	fs := NewFixedStep(60)
	fs.SetMaxCatchUp(4)

	// Simulate a long stall by inflating the accumulator directly.
	fs.accumulator = fs.step * 100
	if due := fs.StepsDue(); due != 4 {
		t.Fatalf("StepsDue after stall = %d, want cap of 4", due)
	}
	// Backlog is dropped, so the next poll owes at most the elapsed time.
	if due := fs.StepsDue(); due > 1 {
		t.Fatalf("StepsDue after drained stall = %d", due)
	}
}

func TestRegisterIgnoresEmptyEntries(t *testing.T) {
	before := len(Sims())
	Register("", func(map[string]string) Sim { return nil })
	Register("nil-factory", nil)
	if len(Sims()) != before {
		t.Fatal("registry accepted an unusable entry")
	}
}
