package gamification

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{50, 1},
		{99, 1},
		{100, 2},
		{249, 2},
		{250, 3},
		{2700, 10},
		{13200, 20},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.level, LevelForXP(tt.xp), "xp=%d", tt.xp)
	}
}

func TestLevelForXPMonotonic(t *testing.T) {
	prev := LevelForXP(0)
	for xp := 0; xp <= 20000; xp += 37 {
		level := LevelForXP(xp)
		assert.GreaterOrEqual(t, level, prev, "level dropped at xp=%d", xp)
		assert.LessOrEqual(t, ThresholdForLevel(level), xp, "threshold above xp at xp=%d", xp)
		prev = level
	}
}

func TestLevelProgress(t *testing.T) {
	progress, needed := LevelProgress(90)
	assert.Equal(t, 90, progress)
	assert.Equal(t, 100, needed)

	progress, needed = LevelProgress(100)
	assert.Equal(t, 0, progress)
	assert.Equal(t, 150, needed)
}

func TestLevelExtrapolationPastTable(t *testing.T) {
	// The table ends at level 20 (13200 XP) with a 1500 XP last interval.
	assert.Equal(t, 21, LevelForXP(13200+1500))
	assert.Equal(t, 14700, ThresholdForLevel(21))

	progress, needed := LevelProgress(13200 + 1600)
	assert.Equal(t, 100, progress)
	assert.Equal(t, 1500, needed)
}
