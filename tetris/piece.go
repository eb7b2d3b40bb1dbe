// Package tetris implements the falling-block puzzle core: pieces, boards,
// scoring, and the garbage exchange between two competing boards.
package tetris

import "math/rand"

// Kind identifies one of the seven tetromino shapes.
type Kind int

const (
	KindI Kind = iota
	KindZ
	KindS
	KindT
	KindJ
	KindL
	KindO
)

func (k Kind) String() string {
	switch k {
	case KindI:
		return "I"
	case KindZ:
		return "Z"
	case KindS:
		return "S"
	case KindT:
		return "T"
	case KindJ:
		return "J"
	case KindL:
		return "L"
	case KindO:
		return "O"
	}
	return "?"
}

// shapes lists the rotation states of each kind. A state names the four
// occupied cells of a 4x4 local grid as row-major indices 0-15.
var shapes = [...][][4]int{
	KindI: {{4, 5, 6, 7}, {1, 5, 9, 13}},
	KindZ: {{4, 5, 9, 10}, {2, 6, 5, 9}},
	KindS: {{6, 7, 9, 10}, {1, 5, 6, 10}},
	KindT: {{1, 2, 5, 9}, {0, 4, 5, 6}, {1, 5, 9, 8}, {4, 5, 6, 10}},
	KindJ: {{1, 2, 6, 10}, {5, 6, 7, 9}, {2, 6, 10, 11}, {3, 5, 6, 7}},
	KindL: {{1, 4, 5, 6}, {1, 4, 5, 9}, {4, 5, 6, 9}, {1, 5, 6, 9}},
	KindO: {{1, 2, 5, 6}},
}

const (
	// NumKinds is the number of tetromino shapes.
	NumKinds = len(shapes)

	// NumColors is the size of the block color palette. Piece colors are
	// palette indices 1..NumColors, drawn independently of the kind.
	NumColors = 7

	// SpawnX is the column where a fresh piece's 4x4 grid is anchored.
	SpawnX = 3
)

// Rotations returns the number of distinct rotation states of the kind.
func (k Kind) Rotations() int {
	return len(shapes[k])
}

// Cell is an absolute board coordinate. X grows rightward, Y grows downward;
// Y may be negative for cells above the visible board.
type Cell struct {
	X int
	Y int
}

// Piece is one tetromino: immutable shape, mutable position and rotation.
type Piece struct {
	Kind     Kind
	Color    int // palette index 1..NumColors
	Rotation int
	X        int
	Y        int
}

// NewPiece creates a piece of random kind and color at the spawn position.
func NewPiece(rng *rand.Rand) *Piece {
	return &Piece{
		Kind:  Kind(rng.Intn(NumKinds)),
		Color: 1 + rng.Intn(NumColors),
		X:     SpawnX,
	}
}

// RotateClockwise advances to the next rotation state.
func (p *Piece) RotateClockwise() {
	p.Rotation = (p.Rotation + 1) % p.Kind.Rotations()
}

// RotateCounterclockwise retreats to the previous rotation state.
func (p *Piece) RotateCounterclockwise() {
	n := p.Kind.Rotations()
	p.Rotation = (p.Rotation + n - 1) % n
}

// Translate moves the piece by the given offset. No bounds checking.
func (p *Piece) Translate(dx, dy int) {
	p.X += dx
	p.Y += dy
}

// Clone returns an independent copy so trial moves never touch the original.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}

// Cells returns the board coordinates of the four occupied cells in the
// active rotation state, in shape-table order.
func (p *Piece) Cells() []Cell {
	state := shapes[p.Kind][p.Rotation]
	cells := make([]Cell, len(state))
	for i, idx := range state {
		cells[i] = Cell{X: p.X + idx%4, Y: p.Y + idx/4}
	}
	return cells
}
