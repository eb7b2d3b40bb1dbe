package tetris

// Match pairs two boards for competitive play: multi-line clears on one
// board queue garbage on the other. The match owns the routing; the boards
// never reference each other.
type Match struct {
	boards [2]*Board
}

// NewMatch wires two boards together. Each board's garbage output feeds the
// other board's pending queue.
func NewMatch(one, two *Board) *Match {
	m := &Match{boards: [2]*Board{one, two}}
	one.OnGarbage(two.QueueGarbage)
	two.OnGarbage(one.QueueGarbage)
	return m
}

// Board returns the board at index 0 or 1.
func (m *Match) Board(i int) *Board {
	return m.boards[i]
}

// Start resets both boards, spawning their first pieces.
func (m *Match) Start() {
	for _, b := range m.boards {
		b.Reset()
	}
}

// TogglePause flips the pause state of both boards together.
func (m *Match) TogglePause() {
	for _, b := range m.boards {
		b.TogglePause()
	}
}

// Over reports whether either board has topped out.
func (m *Match) Over() bool {
	return m.boards[0].GameOver() || m.boards[1].GameOver()
}

// Winner returns the surviving board once its opponent has topped out, or
// nil while the match is running or when both boards are over.
func (m *Match) Winner() *Board {
	one, two := m.boards[0], m.boards[1]
	switch {
	case one.GameOver() && !two.GameOver():
		return two
	case two.GameOver() && !one.GameOver():
		return one
	}
	return nil
}
