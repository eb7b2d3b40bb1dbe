package tetris

// MaxLevel caps level progression.
const MaxLevel = 15

// clearScores maps a simultaneous line-clear count to its base point award.
// The award is multiplied by the level in effect before the clear.
var clearScores = map[int]int{1: 100, 2: 300, 3: 500, 4: 800}

func clearScore(cleared int) int {
	if base, ok := clearScores[cleared]; ok {
		return base
	}
	// Not reachable with standard pieces, but garbage-heavy custom boards
	// could clear more than four rows at once.
	return cleared * 100
}

// levelFor recomputes the level from total cleared lines: one level per ten
// lines, capped. The formula is absolute, so a single large clear can raise
// the level by more than one.
func levelFor(linesCleared int) int {
	level := linesCleared/10 + 1
	if level > MaxLevel {
		return MaxLevel
	}
	return level
}

// gravityFrames[level-1] is the number of shell ticks between automatic
// soft drops. The shell converts ticks to wall-clock time.
var gravityFrames = [MaxLevel]int{48, 43, 38, 33, 28, 23, 18, 13, 8, 6, 5, 4, 3, 2, 1}

// DropSpeed returns the tick interval between automatic drops for the
// board's current level. Levels outside the table fall to the fastest
// interval.
func (b *Board) DropSpeed() int {
	if b.level < 1 || b.level > MaxLevel {
		return 1
	}
	return gravityFrames[b.level-1]
}
