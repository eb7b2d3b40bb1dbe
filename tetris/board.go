package tetris

import "math/rand"

const (
	// DefaultWidth and DefaultHeight are the standard playfield dimensions.
	DefaultWidth  = 10
	DefaultHeight = 20

	// GarbageColor is the grid value of garbage blocks sent by the opponent.
	GarbageColor = 8
)

// Stats is a read-only snapshot of a board's counters.
type Stats struct {
	Score        int
	Level        int
	LinesCleared int
	LinesSent    int
}

// Board owns one player's grid and full game state. Grid values are 0 for
// empty, 1..NumColors for locked blocks, GarbageColor for garbage rows.
// Row 0 is the top of the playfield.
//
// A Board is not safe for concurrent use; the shell drives every board from
// a single update tick.
type Board struct {
	width    int
	height   int
	playerID int

	grid    [][]int
	current *Piece
	next    *Piece
	held    *Piece
	canHold bool

	score        int
	linesCleared int
	level        int
	linesSent    int

	gameOver bool
	paused   bool

	pendingGarbage []int
	onGarbage      func(holes []int)

	rng *rand.Rand
}

// NewBoard creates an empty board. playerID is an opaque label for the
// shell; it plays no part in game logic. The board holds no piece until
// Reset (or Spawn) is called.
func NewBoard(width, height, playerID int, rng *rand.Rand) *Board {
	b := &Board{
		width:    width,
		height:   height,
		playerID: playerID,
		canHold:  true,
		level:    1,
		rng:      rng,
	}
	b.grid = emptyGrid(width, height)
	return b
}

func emptyGrid(width, height int) [][]int {
	grid := make([][]int, height)
	for y := range grid {
		grid[y] = make([]int, width)
	}
	return grid
}

// Width returns the playfield width in cells.
func (b *Board) Width() int { return b.width }

// Height returns the playfield height in cells.
func (b *Board) Height() int { return b.height }

// PlayerID returns the label given at construction.
func (b *Board) PlayerID() int { return b.playerID }

// Grid returns a copy of the playfield contents.
func (b *Board) Grid() [][]int {
	grid := make([][]int, b.height)
	for y, row := range b.grid {
		grid[y] = make([]int, b.width)
		copy(grid[y], row)
	}
	return grid
}

// CurrentPiece returns the active piece, or nil before the first spawn.
// The caller must treat it as read-only; all mutation goes through the
// board's operations.
func (b *Board) CurrentPiece() *Piece { return b.current }

// NextPiece returns the upcoming piece, or nil before the first spawn.
func (b *Board) NextPiece() *Piece { return b.next }

// HeldPiece returns the stashed piece, or nil if none has been held.
func (b *Board) HeldPiece() *Piece { return b.held }

// CanHold reports whether a hold is still available for the active piece.
func (b *Board) CanHold() bool { return b.canHold }

// GameOver reports whether the board has topped out.
func (b *Board) GameOver() bool { return b.gameOver }

// Paused reports whether the board is paused.
func (b *Board) Paused() bool { return b.paused }

// Stats returns a snapshot of the board's counters.
func (b *Board) Stats() Stats {
	return Stats{
		Score:        b.score,
		Level:        b.level,
		LinesCleared: b.linesCleared,
		LinesSent:    b.linesSent,
	}
}

// OnGarbage registers the sink that receives garbage hole columns whenever
// this board clears more than one line. The match coordinator points each
// board's sink at its opponent's queue.
func (b *Board) OnGarbage(sink func(holes []int)) {
	b.onGarbage = sink
}

// QueueGarbage appends garbage requests, one hole column per line, to the
// pending queue. They take effect at the next spawn.
func (b *Board) QueueGarbage(holes []int) {
	b.pendingGarbage = append(b.pendingGarbage, holes...)
}

// TogglePause flips the pause flag. No-op once the game is over.
func (b *Board) TogglePause() {
	if !b.gameOver {
		b.paused = !b.paused
	}
}

// Spawn promotes the next piece to current, generates a fresh next piece,
// re-arms the hold, and applies any pending garbage. If the new piece
// collides with the stack the board tops out ("block out") and the piece is
// left in its colliding position.
func (b *Board) Spawn() {
	if b.next == nil {
		b.next = NewPiece(b.rng)
	}
	b.current = b.next
	b.next = NewPiece(b.rng)
	b.canHold = true

	b.applyGarbage()

	if b.IsCollision(b.current) {
		b.gameOver = true
	}
}

// IsCollision reports whether any cell of the piece is outside the side
// walls, at or below the floor, or overlapping a locked block. Cells above
// the visible board (negative row) only collide with walls.
func (b *Board) IsCollision(p *Piece) bool {
	for _, c := range p.Cells() {
		if c.X < 0 || c.X >= b.width || c.Y >= b.height {
			return true
		}
		if c.Y >= 0 && b.grid[c.Y][c.X] > 0 {
			return true
		}
	}
	return false
}

// IsValidMove reports whether translating the piece by (dx, dy) avoids
// collision. The piece and the board are left untouched.
func (b *Board) IsValidMove(p *Piece, dx, dy int) bool {
	trial := p.Clone()
	trial.Translate(dx, dy)
	return !b.IsCollision(trial)
}

// IsValidRotation reports whether a counterclockwise rotation of the piece
// avoids collision. The piece and the board are left untouched.
func (b *Board) IsValidRotation(p *Piece) bool {
	trial := p.Clone()
	trial.RotateCounterclockwise()
	return !b.IsCollision(trial)
}

// Move translates the active piece by (dx, dy) if the target is free.
// Returns false, without mutating anything, when the board is paused or
// over, no piece is active, or the target collides.
func (b *Board) Move(dx, dy int) bool {
	if b.current == nil || b.paused || b.gameOver || !b.IsValidMove(b.current, dx, dy) {
		return false
	}
	b.current.Translate(dx, dy)
	return true
}

// Rotate turns the active piece counterclockwise if the rotated position is
// free. There is no wall-kick search: a blocked rotation is simply rejected.
func (b *Board) Rotate() bool {
	if b.current == nil || b.paused || b.gameOver || !b.IsValidRotation(b.current) {
		return false
	}
	b.current.RotateCounterclockwise()
	return true
}

// Drop moves the active piece down one row. When the piece cannot descend
// it locks instead and Drop returns false; the false return signals the
// lock, not a rejected input.
func (b *Board) Drop() bool {
	if b.current == nil || b.paused || b.gameOver {
		return false
	}
	if b.IsValidMove(b.current, 0, 1) {
		b.current.Translate(0, 1)
		return true
	}
	b.Lock()
	return false
}

// HardDrop sends the active piece straight down and locks it, awarding two
// points per cell descended before any line-clear bonus.
func (b *Board) HardDrop() {
	if b.current == nil || b.paused || b.gameOver {
		return
	}
	dropped := 0
	for b.IsValidMove(b.current, 0, 1) {
		b.current.Translate(0, 1)
		dropped++
	}
	b.score += dropped * 2
	b.Lock()
}

// Hold stashes the active piece. The first hold moves the current piece's
// kind and color aside and spawns the next piece; later holds swap kind and
// color with the stash, resetting rotation and position to the spawn state.
// A swap that lands on the stack tops the board out. At most one hold per
// spawned piece.
func (b *Board) Hold() bool {
	if !b.canHold || b.current == nil || b.paused || b.gameOver {
		return false
	}
	if b.held == nil {
		b.held = &Piece{
			Kind:  b.current.Kind,
			Color: b.current.Color,
			X:     SpawnX,
		}
		b.Spawn()
	} else {
		b.current.Kind, b.held.Kind = b.held.Kind, b.current.Kind
		b.current.Color, b.held.Color = b.held.Color, b.current.Color
		b.current.Rotation = 0
		b.current.X = SpawnX
		b.current.Y = 0
		b.held.Rotation = 0
		if b.IsCollision(b.current) {
			b.gameOver = true
		}
	}
	b.canHold = false
	return true
}

// Lock writes the active piece into the grid, clears completed lines,
// updates score and level, forwards garbage for multi-line clears, and
// spawns the next piece. Cells above the visible board are not written.
func (b *Board) Lock() {
	if b.current == nil {
		return
	}
	for _, c := range b.current.Cells() {
		if c.Y >= 0 && c.Y < b.height && c.X >= 0 && c.X < b.width {
			b.grid[c.Y][c.X] = b.current.Color
		}
	}

	cleared := b.ClearLines()
	if cleared > 0 {
		b.linesCleared += cleared
		// Award with the pre-clear level, then recompute the level.
		b.score += clearScore(cleared) * b.level
		if level := levelFor(b.linesCleared); level > b.level {
			b.level = level
		}
		b.sendGarbage(cleared)
	}

	b.Spawn()
}

// ClearLines removes every completed row, shifts the rows above it down,
// and inserts empty rows at the top. Returns the number of rows removed.
func (b *Board) ClearLines() int {
	remaining := make([][]int, 0, b.height)
	for _, row := range b.grid {
		complete := true
		for _, cell := range row {
			if cell == 0 {
				complete = false
				break
			}
		}
		if !complete {
			remaining = append(remaining, row)
		}
	}

	cleared := b.height - len(remaining)
	if cleared == 0 {
		return 0
	}

	b.grid = make([][]int, 0, b.height)
	for i := 0; i < cleared; i++ {
		b.grid = append(b.grid, make([]int, b.width))
	}
	b.grid = append(b.grid, remaining...)
	return cleared
}

// sendGarbage forwards cleared-1 garbage units to the registered sink, one
// random hole column per unit. Single clears send nothing.
func (b *Board) sendGarbage(cleared int) {
	if b.onGarbage == nil || cleared <= 1 {
		return
	}
	holes := make([]int, cleared-1)
	for i := range holes {
		holes[i] = b.rng.Intn(b.width)
	}
	b.linesSent += len(holes)
	b.onGarbage(holes)
}

// applyGarbage drains the pending queue in FIFO order: each unit removes
// the topmost row and appends a bottom row of garbage with a single hole,
// pushing the stack upward.
func (b *Board) applyGarbage() {
	for len(b.pendingGarbage) > 0 {
		hole := b.pendingGarbage[0]
		b.pendingGarbage = b.pendingGarbage[1:]

		row := make([]int, b.width)
		for x := range row {
			row[x] = GarbageColor
		}
		if hole >= 0 && hole < b.width {
			row[hole] = 0
		}

		shifted := make([][]int, 0, b.height)
		shifted = append(shifted, b.grid[1:]...)
		b.grid = append(shifted, row)
	}
}

// Ghost returns a copy of the active piece dropped as far as it can go,
// for landing-position previews. Returns nil if no piece is active.
func (b *Board) Ghost() *Piece {
	if b.current == nil {
		return nil
	}
	ghost := b.current.Clone()
	for b.IsValidMove(ghost, 0, 1) {
		ghost.Translate(0, 1)
	}
	return ghost
}

// Reset restores the board to its initial empty state and spawns the first
// piece. This is the only way out of game over.
func (b *Board) Reset() {
	b.grid = emptyGrid(b.width, b.height)
	b.current = nil
	b.next = nil
	b.held = nil
	b.canHold = true
	b.score = 0
	b.linesCleared = 0
	b.level = 1
	b.linesSent = 0
	b.gameOver = false
	b.paused = false
	b.pendingGarbage = nil
	b.Spawn()
}
