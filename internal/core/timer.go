package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	maxCatchUp  int
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{maxCatchUp: 8}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// SetMaxCatchUp bounds how many ticks StepsDue may request at once.
func (f *FixedStep) SetMaxCatchUp(n int) {
	if n <= 0 {
		n = 1
	}
	f.maxCatchUp = n
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	return f.StepsDue() > 0
}

// StepsDue reports how many ticks the simulation should advance to catch up
// with real time, capped so a stall never causes an unbounded burst of work.
func (f *FixedStep) StepsDue() int {
	now := time.Now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta

	due := 0
	for f.accumulator >= f.step && due < f.maxCatchUp {
		f.accumulator -= f.step
		due++
	}
	if due == f.maxCatchUp {
		// Drop the backlog instead of spiraling.
		f.accumulator = 0
	}
	return due
}
