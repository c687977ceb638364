package gamification

import (
	"math"
	"math/rand"
	"time"

	"kidventureAPI/internal/challenge"
	"kidventureAPI/internal/progress"
)

// DailyChallengeCount is how many templates are active on any given date.
const DailyChallengeCount = 3

// PickDaily selects today's challenges from the template catalog. The
// shuffle is seeded by the date's day-of-month, so every call for the same
// date produces the same ordered pick regardless of instance or retry.
// Callers must pass the catalog in a stable order.
func PickDaily(templates []challenge.DailyChallenge, date time.Time, n int) []challenge.DailyChallenge {
	if len(templates) == 0 || n <= 0 {
		return nil
	}

	r := rand.New(rand.NewSource(int64(date.UTC().Day())))
	shuffled := make([]challenge.DailyChallenge, len(templates))
	copy(shuffled, templates)
	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	if n > len(shuffled) {
		n = len(shuffled)
	}
	return shuffled[:n]
}

// ChallengeProgress computes a user's live progress toward one challenge
// from today's completions. Nothing is stored incrementally; the number is
// recomputed from the activity log on every read.
//
// TODO: scope the "points" target to points earned today. It currently
// reads the lifetime balance, which completes the challenge instantly for
// any returning user; changing it alters who gets the bonus, so it needs
// product sign-off first.
func ChallengeProgress(activityType string, targetValue int, todays []progress.ActivityCompletion, lifetimePoints int) int {
	switch activityType {
	case challenge.TargetAny:
		types := make(map[string]bool)
		for _, c := range todays {
			types[c.ActivityType] = true
		}
		return len(types)

	case challenge.TargetPoints:
		return lifetimePoints

	case challenge.TargetPerfect:
		count := 0
		for _, c := range todays {
			if IsPerfectScore(c.Score, c.TotalQuestions) {
				count++
			}
		}
		return count

	case challenge.TargetSpeed:
		count := 0
		for _, c := range todays {
			if c.TimeSpentSeconds > 0 && c.TimeSpentSeconds <= targetValue {
				count++
			}
		}
		return count

	default:
		count := 0
		for _, c := range todays {
			if c.ActivityType == activityType {
				count++
			}
		}
		return count
	}
}

// ProgressPercentage converts progress into a rounded 0-100 value.
// Completed challenges report 100 no matter what the live count says.
func ProgressPercentage(current, target int, completed bool) int {
	if completed {
		return 100
	}
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(float64(current) / float64(target) * 100))
	if pct > 100 {
		pct = 100
	}
	return pct
}
