package tetris

import (
	"math/rand"
	"reflect"
	"testing"
)

func newTestBoard() *Board {
	return NewBoard(DefaultWidth, DefaultHeight, 1, rand.New(rand.NewSource(1)))
}

func fillRow(b *Board, y, color int) {
	for x := 0; x < b.width; x++ {
		b.grid[y][x] = color
	}
}

func countNonEmpty(b *Board, y int) int {
	n := 0
	for x := 0; x < b.width; x++ {
		if b.grid[y][x] != 0 {
			n++
		}
	}
	return n
}

func TestNewBoardDefaults(t *testing.T) {
	b := newTestBoard()
	if b.Width() != 10 || b.Height() != 20 {
		t.Fatalf("expected 10x20, got %dx%d", b.Width(), b.Height())
	}
	if len(b.grid) != 20 || len(b.grid[0]) != 10 {
		t.Fatalf("grid dimensions wrong: %dx%d", len(b.grid), len(b.grid[0]))
	}
	for y := range b.grid {
		for x := range b.grid[y] {
			if b.grid[y][x] != 0 {
				t.Fatalf("grid cell (%d,%d) not empty: %d", x, y, b.grid[y][x])
			}
		}
	}
	s := b.Stats()
	if s.Score != 0 || s.Level != 1 || s.LinesCleared != 0 || s.LinesSent != 0 {
		t.Fatalf("unexpected initial stats: %+v", s)
	}
	if b.GameOver() || b.Paused() || !b.CanHold() {
		t.Fatal("unexpected initial flags")
	}
	if b.CurrentPiece() != nil {
		t.Fatal("no piece should be active before the first spawn")
	}
}

func TestTogglePause(t *testing.T) {
	b := newTestBoard()
	b.TogglePause()
	if !b.Paused() {
		t.Fatal("expected paused")
	}
	b.TogglePause()
	if b.Paused() {
		t.Fatal("expected unpaused")
	}
	b.gameOver = true
	b.TogglePause()
	if b.Paused() {
		t.Fatal("toggle must be a no-op once the game is over")
	}
}

func TestCollisionBounds(t *testing.T) {
	b := newTestBoard()
	// O-piece occupies local columns 1-2 and rows 0-1.
	if b.IsCollision(&Piece{Kind: KindO, X: SpawnX, Y: 0}) {
		t.Fatal("spawn position on an empty board should be free")
	}
	if !b.IsCollision(&Piece{Kind: KindO, X: -2, Y: 0}) {
		t.Fatal("expected collision with the left wall")
	}
	if !b.IsCollision(&Piece{Kind: KindO, X: b.width - 2, Y: 0}) {
		t.Fatal("expected collision with the right wall")
	}
	if b.IsCollision(&Piece{Kind: KindO, X: b.width - 3, Y: 0}) {
		t.Fatal("flush against the right wall should be free")
	}
	if !b.IsCollision(&Piece{Kind: KindO, X: SpawnX, Y: b.height - 1}) {
		t.Fatal("expected collision with the floor")
	}
	if b.IsCollision(&Piece{Kind: KindO, X: SpawnX, Y: b.height - 2}) {
		t.Fatal("resting on the floor should be free")
	}
	// Rows above the visible board never count as a boundary violation.
	if b.IsCollision(&Piece{Kind: KindO, X: SpawnX, Y: -1}) {
		t.Fatal("cells above the board should not collide on an empty grid")
	}
}

func TestCollisionWithStack(t *testing.T) {
	b := newTestBoard()
	b.grid[1][4] = 3
	if !b.IsCollision(&Piece{Kind: KindO, X: SpawnX, Y: 0}) {
		t.Fatal("expected collision with a locked block")
	}
	if b.IsCollision(&Piece{Kind: KindO, X: SpawnX + 2, Y: 0}) {
		t.Fatal("piece beside the block should be free")
	}
}

func TestValidityChecksDoNotMutate(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	before := *b.current
	gridBefore := b.Grid()

	b.IsValidMove(b.current, -1, 0)
	b.IsValidMove(b.current, -1, 0)
	b.IsValidRotation(b.current)
	b.IsValidRotation(b.current)

	if *b.current != before {
		t.Fatalf("validity checks mutated the piece: %+v vs %+v", *b.current, before)
	}
	if !reflect.DeepEqual(b.Grid(), gridBefore) {
		t.Fatal("validity checks mutated the grid")
	}
}

func TestPauseGating(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.TogglePause()

	before := *b.current
	gridBefore := b.Grid()

	if b.Move(-1, 0) {
		t.Fatal("move must be rejected while paused")
	}
	if b.Rotate() {
		t.Fatal("rotate must be rejected while paused")
	}
	if b.Drop() {
		t.Fatal("drop must be rejected while paused")
	}
	if b.Hold() {
		t.Fatal("hold must be rejected while paused")
	}
	b.HardDrop()

	if *b.current != before {
		t.Fatal("paused operations must not move the piece")
	}
	if !reflect.DeepEqual(b.Grid(), gridBefore) {
		t.Fatal("paused operations must not touch the grid")
	}
}

func TestOperationsRejectedWithoutPiece(t *testing.T) {
	b := newTestBoard()
	if b.Move(1, 0) || b.Rotate() || b.Drop() || b.Hold() {
		t.Fatal("operations must be rejected before the first spawn")
	}
}

func TestOperationsRejectedAfterGameOver(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.gameOver = true
	if b.Move(1, 0) || b.Rotate() || b.Drop() || b.Hold() {
		t.Fatal("operations must be rejected once the game is over")
	}
}

func TestMove(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	x := b.current.X
	if !b.Move(1, 0) {
		t.Fatal("move right on an empty board should succeed")
	}
	if b.current.X != x+1 {
		t.Fatalf("expected x=%d, got %d", x+1, b.current.X)
	}

	// Walk into the left wall until rejected.
	for b.Move(-1, 0) {
	}
	x = b.current.X
	if b.Move(-1, 0) {
		t.Fatal("move into the wall should be rejected")
	}
	if b.current.X != x {
		t.Fatal("rejected move must not change the position")
	}
}

func TestRotateIsCounterclockwise(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.current = &Piece{Kind: KindT, Color: 1, X: 4, Y: 5}
	if !b.Rotate() {
		t.Fatal("rotation in open space should succeed")
	}
	if b.current.Rotation != KindT.Rotations()-1 {
		t.Fatalf("board rotation must go counterclockwise: got state %d", b.current.Rotation)
	}
}

func TestRotateBlockedKeepsState(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.current = &Piece{Kind: KindT, Color: 1, X: 4, Y: 5}
	// Occupy a cell of the counterclockwise target state only.
	b.grid[7][6] = 2
	if b.Rotate() {
		t.Fatal("blocked rotation should be rejected")
	}
	if b.current.Rotation != 0 {
		t.Fatalf("rejected rotation must keep the prior state, got %d", b.current.Rotation)
	}
}

func TestDropDescendsThenLocks(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.current = &Piece{Kind: KindO, Color: 5, X: 0, Y: 0}
	if !b.Drop() {
		t.Fatal("drop in open space should succeed")
	}
	if b.current.Y != 1 {
		t.Fatalf("expected y=1, got %d", b.current.Y)
	}

	b.current.Y = b.height - 2 // resting on the floor
	locked := b.current
	if b.Drop() {
		t.Fatal("drop on the floor must lock and return false")
	}
	if b.grid[b.height-1][1] != 5 || b.grid[b.height-2][1] != 5 {
		t.Fatal("locked cells should be written with the piece color")
	}
	if b.current == locked {
		t.Fatal("a new piece should spawn after locking")
	}
}

func TestHardDropScoresTwoPerCell(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.current = &Piece{Kind: KindO, Color: 2, X: 0, Y: 0}
	b.HardDrop()
	// The O-piece falls from row 0 to rest on the floor: height-2 cells.
	want := 2 * (b.height - 2)
	if b.Stats().Score != want {
		t.Fatalf("expected %d points for the hard drop, got %d", want, b.Stats().Score)
	}
	if b.grid[b.height-1][1] != 2 {
		t.Fatal("hard drop should lock the piece at the bottom")
	}
}

func TestHardDropScoreIndependentOfClearBonus(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	// Two bottom rows complete except the columns the O-piece will fill.
	for _, y := range []int{b.height - 1, b.height - 2} {
		fillRow(b, y, 3)
		b.grid[y][4] = 0
		b.grid[y][5] = 0
	}
	b.current = &Piece{Kind: KindO, Color: 2, X: SpawnX, Y: 0}
	b.HardDrop()
	want := 2*(b.height-2) + 300*1
	if b.Stats().Score != want {
		t.Fatalf("expected %d points, got %d", want, b.Stats().Score)
	}
	if b.Stats().LinesCleared != 2 {
		t.Fatalf("expected 2 lines cleared, got %d", b.Stats().LinesCleared)
	}
}

func TestClearLines(t *testing.T) {
	for k := 1; k <= 4; k++ {
		b := newTestBoard()
		for i := 0; i < k; i++ {
			fillRow(b, b.height-1-i, 1)
		}
		if got := b.ClearLines(); got != k {
			t.Fatalf("expected %d cleared rows, got %d", k, got)
		}
		for y := 0; y < b.height; y++ {
			if countNonEmpty(b, y) != 0 {
				t.Fatalf("row %d should be empty after clearing", y)
			}
		}
	}
}

func TestClearLinesIgnoresIncompleteRows(t *testing.T) {
	b := newTestBoard()
	fillRow(b, b.height-1, 1)
	b.grid[b.height-1][3] = 0 // one missing cell
	if got := b.ClearLines(); got != 0 {
		t.Fatalf("a row missing one cell must never clear, got %d", got)
	}
	if countNonEmpty(b, b.height-1) != b.width-1 {
		t.Fatal("incomplete row must be left in place")
	}
}

func TestClearLinesPreservesRowOrder(t *testing.T) {
	b := newTestBoard()
	fillRow(b, b.height-1, 1) // complete
	b.grid[b.height-2][0] = 4 // partial, should fall to the bottom
	fillRow(b, b.height-3, 2) // complete
	b.grid[b.height-4][9] = 6 // partial, should end up above the other

	if got := b.ClearLines(); got != 2 {
		t.Fatalf("expected 2 cleared rows, got %d", got)
	}
	if b.grid[b.height-1][0] != 4 {
		t.Fatal("lowest surviving row should drop to the bottom")
	}
	if b.grid[b.height-2][9] != 6 {
		t.Fatal("surviving rows must keep their relative order")
	}
}

// lockClearing fills n bottom rows, then locks the current piece well above
// them so exactly those n rows clear.
func lockClearing(b *Board, n int) {
	for i := 0; i < n; i++ {
		fillRow(b, b.height-1-i, 1)
	}
	b.current = &Piece{Kind: KindO, Color: 1, X: 0, Y: 8}
	b.Lock()
}

func TestScoringTable(t *testing.T) {
	wantLevel1 := map[int]int{1: 100, 2: 300, 3: 500, 4: 800}
	for n, want := range wantLevel1 {
		b := newTestBoard()
		b.Reset()
		lockClearing(b, n)
		if got := b.Stats().Score; got != want {
			t.Fatalf("clearing %d lines at level 1: expected %d, got %d", n, want, got)
		}
	}

	wantLevel3 := map[int]int{1: 300, 2: 900, 3: 1500, 4: 2400}
	for n, want := range wantLevel3 {
		b := newTestBoard()
		b.Reset()
		b.level = 3
		b.linesCleared = 20
		lockClearing(b, n)
		if got := b.Stats().Score; got != want {
			t.Fatalf("clearing %d lines at level 3: expected %d, got %d", n, want, got)
		}
	}
}

func TestScoreUsesPreClearLevel(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.linesCleared = 9
	lockClearing(b, 1)
	// The clear crosses the level threshold, but the award uses level 1.
	if got := b.Stats().Score; got != 100 {
		t.Fatalf("expected 100 points at the pre-clear level, got %d", got)
	}
	if b.Stats().Level != 2 {
		t.Fatalf("expected level 2 after crossing ten lines, got %d", b.Stats().Level)
	}
}

func TestLevelCap(t *testing.T) {
	if levelFor(1000) != MaxLevel {
		t.Fatalf("level must cap at %d", MaxLevel)
	}
	b := newTestBoard()
	b.Reset()
	b.level = MaxLevel
	b.linesCleared = 300
	lockClearing(b, 4)
	if b.Stats().Level != MaxLevel {
		t.Fatalf("level must never exceed %d, got %d", MaxLevel, b.Stats().Level)
	}
}

func TestLevelCanJumpSeveralSteps(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.linesCleared = 28 // stale level far below the absolute formula
	lockClearing(b, 4)
	if b.Stats().Level != 4 {
		t.Fatalf("absolute level recomputation should jump 1 -> 4, got %d", b.Stats().Level)
	}
}

func TestLevelNeverDecreases(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.level = 9
	lockClearing(b, 1) // formula says level 1
	if b.Stats().Level != 9 {
		t.Fatalf("level must never be lowered, got %d", b.Stats().Level)
	}
}

func TestFirstHold(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	cur := *b.current
	next := *b.next
	if !b.Hold() {
		t.Fatal("first hold should succeed")
	}
	if b.held == nil || b.held.Kind != cur.Kind || b.held.Color != cur.Color {
		t.Fatal("held piece should carry the previous piece's kind and color")
	}
	if b.held.Rotation != 0 || b.held.X != SpawnX || b.held.Y != 0 {
		t.Fatalf("held piece should be in canonical spawn state: %+v", b.held)
	}
	if b.current.Kind != next.Kind || b.current.Color != next.Color {
		t.Fatal("the next piece should become current")
	}
	if b.CanHold() {
		t.Fatal("hold must be spent after use")
	}
	if b.Hold() {
		t.Fatal("a second hold before the next spawn must be rejected")
	}
}

func TestHoldSwap(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.Hold()
	b.canHold = true // as after the next lock's spawn
	b.current.X = 6
	b.current.Y = 9
	b.current.Rotation = b.current.Kind.Rotations() - 1

	cur := *b.current
	held := *b.held
	next := b.next
	if !b.Hold() {
		t.Fatal("swap hold should succeed")
	}
	if b.current.Kind != held.Kind || b.current.Color != held.Color {
		t.Fatal("current should take the stashed kind and color")
	}
	if b.held.Kind != cur.Kind || b.held.Color != cur.Color {
		t.Fatal("stash should take the previous kind and color")
	}
	if b.current.Rotation != 0 || b.current.X != SpawnX || b.current.Y != 0 {
		t.Fatalf("swapped-in piece should reset to spawn state: %+v", b.current)
	}
	if b.next != next {
		t.Fatal("a swap hold must not touch the next piece")
	}
}

func TestHoldSwapCanTopOut(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.Hold()
	b.canHold = true
	// Fill the spawn rows so the swapped-in piece has nowhere to go.
	fillRow(b, 0, 1)
	fillRow(b, 1, 1)
	b.current.Y = 10
	if !b.Hold() {
		t.Fatal("the colliding swap is performed, not rejected")
	}
	if !b.GameOver() {
		t.Fatal("a colliding hold swap must end the game")
	}
}

func TestSpawnBlockOut(t *testing.T) {
	b := newTestBoard()
	for y := 0; y < 4; y++ {
		fillRow(b, y, 1)
	}
	b.Spawn()
	if !b.GameOver() {
		t.Fatal("spawning into the stack must end the game")
	}
	if b.current == nil {
		t.Fatal("the blocked piece stays in its colliding position")
	}
}

func TestGarbageAppliedAtSpawnInOrder(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.grid[b.height-1][0] = 5 // marker to watch the stack shift up

	b.QueueGarbage([]int{2, 7})
	if b.grid[b.height-1][1] != 0 {
		t.Fatal("garbage must not be applied before the next spawn")
	}

	b.Spawn()
	if len(b.pendingGarbage) != 0 {
		t.Fatal("spawn should drain the whole queue")
	}
	// FIFO: the first unit is pushed up by the second.
	bottom, above := b.grid[b.height-1], b.grid[b.height-2]
	for x := 0; x < b.width; x++ {
		switch {
		case x == 7:
			if bottom[x] != 0 {
				t.Fatalf("bottom hole should be at column 7, got %d at %d", bottom[x], x)
			}
		default:
			if bottom[x] != GarbageColor {
				t.Fatalf("bottom row should be garbage, got %d at column %d", bottom[x], x)
			}
		}
	}
	if above[2] != 0 || above[3] != GarbageColor {
		t.Fatal("first garbage unit should sit above the second with its hole at column 2")
	}
	if b.grid[b.height-3][0] != 5 {
		t.Fatal("existing stack should be pushed up by two rows")
	}
}

func TestGhost(t *testing.T) {
	b := newTestBoard()
	if b.Ghost() != nil {
		t.Fatal("no ghost without an active piece")
	}
	b.Reset()
	b.current = &Piece{Kind: KindO, Color: 1, X: 0, Y: 0}
	before := *b.current
	ghost := b.Ghost()
	if ghost.Y != b.height-2 {
		t.Fatalf("ghost should rest on the floor at y=%d, got %d", b.height-2, ghost.Y)
	}
	if *b.current != before {
		t.Fatal("computing the ghost must not move the active piece")
	}
	b.grid[b.height-1][1] = 3
	if g := b.Ghost(); g.Y != b.height-3 {
		t.Fatalf("ghost should rest on the stack at y=%d, got %d", b.height-3, g.Y)
	}
}

func TestLockClipsRowsAboveBoard(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	// Vertical I-piece poking two rows above the visible board.
	b.current = &Piece{Kind: KindI, Color: 4, Rotation: 1, X: 0, Y: -2}
	b.Lock()
	if b.grid[0][1] != 4 || b.grid[1][1] != 4 {
		t.Fatal("visible cells should lock normally")
	}
	total := 0
	for y := 0; y < b.height; y++ {
		total += countNonEmpty(b, y)
	}
	if total != 2 {
		t.Fatalf("only the visible cells should be written, got %d", total)
	}
}

func TestDropSpeed(t *testing.T) {
	b := newTestBoard()
	prev := 0
	for level := 1; level <= MaxLevel; level++ {
		b.level = level
		speed := b.DropSpeed()
		if level == 1 && speed != 48 {
			t.Fatalf("level 1 should drop every 48 ticks, got %d", speed)
		}
		if level > 1 && speed > prev {
			t.Fatalf("drop interval must not grow with the level: %d -> %d", prev, speed)
		}
		prev = speed
	}
	if b.DropSpeed() != 1 {
		t.Fatalf("top level should drop every tick, got %d", b.DropSpeed())
	}
	b.level = MaxLevel + 1
	if b.DropSpeed() != 1 {
		t.Fatal("levels outside the table fall back to the fastest interval")
	}
}

func TestReset(t *testing.T) {
	b := newTestBoard()
	b.Reset()
	b.score = 1234
	b.linesCleared = 42
	b.level = 5
	b.linesSent = 9
	b.gameOver = true
	b.paused = true
	b.pendingGarbage = []int{1, 2}
	fillRow(b, b.height-1, 3)

	b.Reset()
	s := b.Stats()
	if s.Score != 0 || s.LinesCleared != 0 || s.Level != 1 || s.LinesSent != 0 {
		t.Fatalf("reset should zero all counters: %+v", s)
	}
	if b.GameOver() || b.Paused() || !b.CanHold() {
		t.Fatal("reset should clear all flags")
	}
	if b.held != nil || len(b.pendingGarbage) != 0 {
		t.Fatal("reset should drop the stash and the garbage queue")
	}
	if b.current == nil || b.next == nil {
		t.Fatal("reset should spawn the first piece")
	}
	if countNonEmpty(b, b.height-1) != 0 {
		t.Fatal("reset should empty the grid")
	}
}
