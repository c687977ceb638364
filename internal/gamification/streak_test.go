package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestNextStreak(t *testing.T) {
	today := date(2026, 3, 10)
	yesterday := date(2026, 3, 9)
	lastWeek := date(2026, 3, 3)

	t.Run("first ever activity", func(t *testing.T) {
		assert.Equal(t, 1, NextStreak(0, nil, today))
	})

	t.Run("same day does not double increment", func(t *testing.T) {
		assert.Equal(t, 3, NextStreak(3, &today, today))
	})

	t.Run("consecutive day extends", func(t *testing.T) {
		assert.Equal(t, 3, NextStreak(2, &yesterday, today))
	})

	t.Run("gap resets to one", func(t *testing.T) {
		assert.Equal(t, 1, NextStreak(9, &lastWeek, today))
	})

	t.Run("backdated event clamps instead of resetting", func(t *testing.T) {
		tomorrow := date(2026, 3, 11)
		assert.Equal(t, 5, NextStreak(5, &tomorrow, today))
	})

	t.Run("calendar days not elapsed hours", func(t *testing.T) {
		lateNight := time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC)
		earlyMorning := time.Date(2026, 3, 10, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 2, NextStreak(1, &lateNight, earlyMorning))
	})
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2026, 3, 10), date(2026, 3, 10)))
	assert.Equal(t, 1, DaysBetween(date(2026, 3, 9), date(2026, 3, 10)))
	assert.Equal(t, -1, DaysBetween(date(2026, 3, 10), date(2026, 3, 9)))
	assert.Equal(t, 31, DaysBetween(date(2026, 1, 15), date(2026, 2, 15)))
}
