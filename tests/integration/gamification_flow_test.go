package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidventureAPI/handlers"
	"kidventureAPI/internal/achievement"
	"kidventureAPI/internal/apperrors"
	"kidventureAPI/internal/progress"
	"kidventureAPI/middleware"
	"kidventureAPI/services"
	"kidventureAPI/tests/helpers"
)

// TestGamificationFlow walks one user through the whole engine: activity
// completions, achievements, point awards, badges and daily challenges.
func TestGamificationFlow(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer pool.Close()

	helpers.SeedBadges(t, pool)

	achievementService := services.NewAchievementService(pool)
	badgeService := services.NewBadgeService(pool)
	progressService := services.NewProgressService(pool, achievementService, badgeService)
	challengeService := services.NewChallengeService(pool, progressService)
	profileService := services.NewProfileService(pool)

	userID := uuid.New()
	defer helpers.CleanupTestUser(t, pool, userID)

	ctx := context.Background()

	// Step 1: a fresh user reads a zero-state profile.
	t.Log("Step 1: Zero-state profile")

	p, err := profileService.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Points)
	assert.Equal(t, 1, p.Level)
	assert.Equal(t, 0, p.StreakDays)

	// Step 2: the 5th completion of one activity type unlocks its
	// milestone achievement; the 6th unlocks nothing new.
	t.Log("Step 2: Completion milestones")

	var fifth *progress.RecordCompletionResult
	for i := 0; i < 5; i++ {
		fifth, err = progressService.RecordCompletion(ctx, userID, &progress.RecordCompletionRequest{
			ActivityType:     "math_adventure",
			Score:            8,
			TotalQuestions:   10,
			TimeSpentSeconds: 90,
		})
		require.NoError(t, err)
	}
	require.Len(t, fifth.NewAchievements, 1)
	assert.Equal(t, achievement.TypeCompleted5, fifth.NewAchievements[0].Type)

	sixth, err := progressService.RecordCompletion(ctx, userID, &progress.RecordCompletionRequest{
		ActivityType:   "math_adventure",
		Score:          8,
		TotalQuestions: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, sixth.NewAchievements)

	// Step 3: a perfect score unlocks its achievement exactly once.
	t.Log("Step 3: Perfect score")

	perfect, err := progressService.RecordCompletion(ctx, userID, &progress.RecordCompletionRequest{
		ActivityType:   "word_builder",
		Score:          10,
		TotalQuestions: 10,
	})
	require.NoError(t, err)
	require.Len(t, perfect.NewAchievements, 1)
	assert.Equal(t, achievement.TypePerfectScore, perfect.NewAchievements[0].Type)

	// Step 4: awarding points rolls counters, streak and badges forward.
	t.Log("Step 4: Award points")

	award, err := progressService.AwardPoints(ctx, userID, 90, "math_adventure")
	require.NoError(t, err)
	assert.Equal(t, 90, award.Points)
	assert.Equal(t, 1, award.Level)
	assert.False(t, award.LeveledUp)
	assert.Equal(t, 1, award.StreakDays)

	var badgeNames []string
	for _, b := range award.NewBadges {
		badgeNames = append(badgeNames, b.Name)
	}
	assert.Contains(t, badgeNames, "First Steps")
	assert.Contains(t, badgeNames, "Getting Serious")

	levelUp, err := progressService.AwardPoints(ctx, userID, 20, "math_adventure")
	require.NoError(t, err)
	assert.Equal(t, 110, levelUp.Points)
	assert.Equal(t, 2, levelUp.Level)
	assert.True(t, levelUp.LeveledUp)
	assert.Empty(t, levelUp.NewBadges, "already-earned badges are not re-granted")

	// Step 5: today's challenges are deterministic per date.
	t.Log("Step 5: Daily challenges")

	now := time.Now()
	first, err := challengeService.GetTodayChallenges(ctx, userID, now)
	require.NoError(t, err)
	require.Len(t, first, 3)

	second, err := challengeService.GetTodayChallenges(ctx, userID, now)
	require.NoError(t, err)
	require.Len(t, second, 3)
	for i := range first {
		assert.Equal(t, first[i].ID, second[i].ID)
	}

	// Step 6: completing a challenge credits points exactly once.
	t.Log("Step 6: Challenge completion")

	before, err := profileService.GetProfile(ctx, userID)
	require.NoError(t, err)

	target := first[0]
	completion, err := challengeService.CompleteChallenge(ctx, userID, target.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, target.PointsReward, completion.PointsEarned)

	_, err = challengeService.CompleteChallenge(ctx, userID, target.ID, 0)
	assert.ErrorIs(t, err, apperrors.ErrChallengeCompleted)

	after, err := profileService.GetProfile(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, before.Points+target.PointsReward, after.Points, "bonus credited exactly once")

	todays, err := challengeService.GetTodayChallenges(ctx, userID, now)
	require.NoError(t, err)
	for _, ch := range todays {
		if ch.ID == target.ID {
			assert.True(t, ch.IsCompleted)
			assert.Equal(t, 100, ch.ProgressPercentage)
		}
	}

	// Step 7: completing an unknown challenge is a not-found.
	t.Log("Step 7: Unknown challenge")

	_, err = challengeService.CompleteChallenge(ctx, userID, uuid.New(), 10)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// TestRecordCompletionHandler exercises the HTTP surface the way the app
// consumes it: authenticated request in, persisted record out.
func TestRecordCompletionHandler(t *testing.T) {
	pool := helpers.SetupTestDB(t)
	defer pool.Close()

	achievementService := services.NewAchievementService(pool)
	badgeService := services.NewBadgeService(pool)
	progressService := services.NewProgressService(pool, achievementService, badgeService)
	progressHandler := handlers.NewProgressHandler(progressService)

	userID := uuid.New()
	defer helpers.CleanupTestUser(t, pool, userID)

	body := `{"activity_type": "story_time", "score": 4, "total_questions": 5, "time_spent_seconds": 300}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/progress", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserIDKey, userID))
	rr := httptest.NewRecorder()

	progressHandler.RecordCompletion(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code)

	var result progress.RecordCompletionResult
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &result))
	assert.Equal(t, "story_time", result.Record.ActivityType)
	assert.Equal(t, userID, result.Record.UserID)

	// Validation failures never reach storage.
	badBody := `{"activity_type": "", "score": 1, "total_questions": 5}`
	badReq := httptest.NewRequest(http.MethodPost, "/api/v1/progress", strings.NewReader(badBody))
	badReq = badReq.WithContext(context.WithValue(badReq.Context(), middleware.UserIDKey, userID))
	badRR := httptest.NewRecorder()

	progressHandler.RecordCompletion(badRR, badReq)
	assert.Equal(t, http.StatusBadRequest, badRR.Code)
}
