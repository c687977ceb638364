package gamification

import "time"

// NextStreak computes the consecutive-day streak after an activity on
// today. Calendar days, not elapsed hours: an activity at 23:59 followed
// by one at 00:01 still extends the streak.
//
// A last date in the future (clock skew, backdated event) is clamped to
// the same-day branch so the streak never silently resets or decrements.
func NextStreak(current int, last *time.Time, today time.Time) int {
	if last == nil {
		return 1
	}

	gap := DaysBetween(*last, today)
	switch {
	case gap <= 0:
		if current < 1 {
			return 1
		}
		return current
	case gap == 1:
		return current + 1
	default:
		return 1
	}
}

// DaysBetween returns the number of calendar days from a to b, both
// truncated to midnight UTC. Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}

// SameDay reports whether two timestamps fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return truncateToDay(a).Equal(truncateToDay(b))
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
