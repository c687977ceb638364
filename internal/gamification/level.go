// Package gamification holds the pure progression logic: XP levels,
// streaks, badge/achievement rules and daily challenge selection. Nothing
// in here touches the database.
package gamification

// levelThresholds is the cumulative XP required to reach each level.
// Index 0 is level 1, which starts at 0 XP. Keep this ascending; client
// progress bars assume the intervals only grow.
var levelThresholds = []int{
	0,     // level 1
	100,   // level 2
	250,   // level 3
	450,   // level 4
	700,   // level 5
	1000,  // level 6
	1350,  // level 7
	1750,  // level 8
	2200,  // level 9
	2700,  // level 10
	3300,  // level 11
	4000,  // level 12
	4800,  // level 13
	5700,  // level 14
	6700,  // level 15
	7800,  // level 16
	9000,  // level 17
	10300, // level 18
	11700, // level 19
	13200, // level 20
}

// LevelForXP returns the highest level whose threshold the given XP meets.
func LevelForXP(xp int) int {
	level := 1
	for i, threshold := range levelThresholds {
		if xp < threshold {
			break
		}
		level = i + 1
	}
	if level == len(levelThresholds) {
		// Past the table: extrapolate with the last interval so max-level
		// users keep leveling instead of pegging at the cap.
		last := levelThresholds[len(levelThresholds)-1]
		interval := lastInterval()
		level += (xp - last) / interval
	}
	return level
}

// ThresholdForLevel returns the cumulative XP needed to reach a level.
func ThresholdForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	if level <= len(levelThresholds) {
		return levelThresholds[level-1]
	}
	last := levelThresholds[len(levelThresholds)-1]
	return last + (level-len(levelThresholds))*lastInterval()
}

// LevelProgress returns XP earned within the current level and the size of
// the current level's interval.
func LevelProgress(xp int) (progress, needed int) {
	level := LevelForXP(xp)
	current := ThresholdForLevel(level)
	next := ThresholdForLevel(level + 1)
	return xp - current, next - current
}

func lastInterval() int {
	n := len(levelThresholds)
	return levelThresholds[n-1] - levelThresholds[n-2]
}
