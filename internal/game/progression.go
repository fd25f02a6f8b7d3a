package game

// RequiredXP is the heart count needed to advance from level to level+1.
func RequiredXP(level int) int {
	return level * 100
}

// LevelFor computes the level reached with the given lifetime heart earnings.
// Level keys off lifetime earnings only; spending the balance never lowers it.
func LevelFor(totalHeartsEarned int) int {
	level := 1
	cumulative := 0
	for {
		cumulative += RequiredXP(level)
		if totalHeartsEarned < cumulative {
			return level
		}
		level++
	}
}
