package progress

// XPPerLevel is the experience needed to climb one level.
const XPPerLevel = 1000

// Level returns the learner level for xp, starting at 1.
func Level(xp int) int {
	return xp/XPPerLevel + 1
}

// LevelProgress returns the percentage of the current level completed,
// in [0, 100).
func LevelProgress(xp int) float64 {
	return float64(xp%XPPerLevel) / 10
}

// LevelInfo is the derived level view of an experience total.
type LevelInfo struct {
	Experience  int
	Level       int
	Percent     float64
	NextLevelXP int // experience at which the next level starts
}

// Info derives the level view for xp.
func Info(xp int) LevelInfo {
	lvl := Level(xp)
	return LevelInfo{
		Experience:  xp,
		Level:       lvl,
		Percent:     LevelProgress(xp),
		NextLevelXP: lvl * XPPerLevel,
	}
}
