package core

// PingPong keeps two equally sized float64 buffers and swaps ownership
// between them, so a pass can read the front while writing the back without
// allocating per tick.
type PingPong struct {
	front []float64
	back  []float64
}

// NewPingPong allocates both buffers with the given length.
func NewPingPong(n int) *PingPong {
	if n < 0 {
		n = 0
	}
	return &PingPong{front: make([]float64, n), back: make([]float64, n)}
}

// Front returns the buffer holding the current values.
func (p *PingPong) Front() []float64 { return p.front }

// Back returns the scratch buffer for the next values.
func (p *PingPong) Back() []float64 { return p.back }

// StageBack copies the front buffer into the back buffer so a pass can apply
// deltas on top of the current state.
func (p *PingPong) StageBack() {
	copy(p.back, p.front)
}

// Swap exchanges the two buffers.
func (p *PingPong) Swap() {
	p.front, p.back = p.back, p.front
}
