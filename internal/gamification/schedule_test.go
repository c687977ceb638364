package gamification

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidventureAPI/internal/challenge"
	"kidventureAPI/internal/progress"
)

func templateCatalog(n int) []challenge.DailyChallenge {
	catalog := make([]challenge.DailyChallenge, n)
	for i := range catalog {
		catalog[i] = challenge.DailyChallenge{
			ID:           uuid.New(),
			Title:        fmt.Sprintf("challenge %d", i),
			ActivityType: challenge.TargetAny,
			TargetValue:  3,
			PointsReward: 25,
		}
	}
	return catalog
}

func TestPickDailyDeterministic(t *testing.T) {
	catalog := templateCatalog(10)
	day := time.Date(2026, 4, 17, 9, 30, 0, 0, time.UTC)

	first := PickDaily(catalog, day, DailyChallengeCount)
	require.Len(t, first, DailyChallengeCount)

	// Same date, different wall-clock time, same ordered pick.
	later := time.Date(2026, 4, 17, 23, 55, 0, 0, time.UTC)
	second := PickDaily(catalog, later, DailyChallengeCount)
	require.Len(t, second, DailyChallengeCount)

	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}
}

func TestPickDailySmallCatalog(t *testing.T) {
	catalog := templateCatalog(2)
	picked := PickDaily(catalog, time.Now(), DailyChallengeCount)
	assert.Len(t, picked, 2)

	assert.Nil(t, PickDaily(nil, time.Now(), DailyChallengeCount))
}

func completions(types ...string) []progress.ActivityCompletion {
	recs := make([]progress.ActivityCompletion, len(types))
	for i, at := range types {
		recs[i] = progress.ActivityCompletion{ActivityType: at, Score: 5, TotalQuestions: 10, TimeSpentSeconds: 120}
	}
	return recs
}

func TestChallengeProgressAny(t *testing.T) {
	todays := completions("math_adventure", "word_builder", "math_adventure")

	got := ChallengeProgress(challenge.TargetAny, 3, todays, 0)
	assert.Equal(t, 2, got, "distinct types, not total completions")
	assert.Equal(t, 67, ProgressPercentage(got, 3, false))
}

func TestChallengeProgressPerfect(t *testing.T) {
	todays := []progress.ActivityCompletion{
		{ActivityType: "math_adventure", Score: 10, TotalQuestions: 10},
		{ActivityType: "word_builder", Score: 8, TotalQuestions: 10},
		{ActivityType: "story_time", Score: 0, TotalQuestions: 0},
	}
	assert.Equal(t, 1, ChallengeProgress(challenge.TargetPerfect, 2, todays, 0))
}

func TestChallengeProgressSpeed(t *testing.T) {
	todays := []progress.ActivityCompletion{
		{ActivityType: "math_adventure", TimeSpentSeconds: 45},
		{ActivityType: "math_adventure", TimeSpentSeconds: 90},
		{ActivityType: "word_builder", TimeSpentSeconds: 0},
	}
	assert.Equal(t, 1, ChallengeProgress(challenge.TargetSpeed, 60, todays, 0))
}

func TestChallengeProgressSpecificType(t *testing.T) {
	todays := completions("math_adventure", "word_builder", "math_adventure")
	assert.Equal(t, 2, ChallengeProgress("math_adventure", 3, todays, 0))
	assert.Equal(t, 0, ChallengeProgress("science_lab", 3, todays, 0))
}

func TestChallengeProgressPoints(t *testing.T) {
	// Reads the lifetime balance; see the TODO in ChallengeProgress.
	assert.Equal(t, 480, ChallengeProgress(challenge.TargetPoints, 100, nil, 480))
}

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 100, ProgressPercentage(1, 3, true), "completed pins to 100")
	assert.Equal(t, 100, ProgressPercentage(9, 3, false), "capped at 100")
	assert.Equal(t, 0, ProgressPercentage(5, 0, false))
	assert.Equal(t, 33, ProgressPercentage(1, 3, false))
}
