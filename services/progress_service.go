package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidventureAPI/internal/apperrors"
	"kidventureAPI/internal/gamification"
	"kidventureAPI/internal/profile"
	"kidventureAPI/internal/progress"
)

type ProgressService struct {
	db           *pgxpool.Pool
	achievements *AchievementService
	badges       *BadgeService
	now          func() time.Time
}

func NewProgressService(db *pgxpool.Pool, achievements *AchievementService, badges *BadgeService) *ProgressService {
	return &ProgressService{
		db:           db,
		achievements: achievements,
		badges:       badges,
		now:          time.Now,
	}
}

// RecordCompletion appends one activity completion and evaluates the
// achievement rules against the updated history. The completion record is
// the source of truth: a storage failure there is returned to the caller,
// while an achievement failure is logged and the record still stands.
func (s *ProgressService) RecordCompletion(ctx context.Context, userID uuid.UUID, req *progress.RecordCompletionRequest) (*progress.RecordCompletionResult, error) {
	if err := validateCompletion(req); err != nil {
		return nil, err
	}

	record := &progress.ActivityCompletion{
		ID:               uuid.New(),
		UserID:           userID,
		ActivityType:     strings.TrimSpace(req.ActivityType),
		Score:            req.Score,
		TotalQuestions:   req.TotalQuestions,
		TimeSpentSeconds: req.TimeSpentSeconds,
		Metadata:         req.Metadata,
		CompletedAt:      s.now(),
	}

	_, err := s.db.Exec(ctx, `
		INSERT INTO activity_completions (id, user_id, activity_type, score, total_questions, time_spent_seconds, metadata, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, record.ID, record.UserID, record.ActivityType, record.Score, record.TotalQuestions, record.TimeSpentSeconds, record.Metadata, record.CompletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	newAchievements, err := s.achievements.CheckAndAward(ctx, userID, record.ActivityType, record.Score, record.TotalQuestions)
	if err != nil {
		log.Printf("RecordCompletion: achievement evaluation failed for user %s: %v", userID, err)
		newAchievements = nil
	}

	return &progress.RecordCompletionResult{
		Record:          record,
		NewAchievements: newAchievements,
	}, nil
}

// AwardPoints credits points/XP to the user and rolls the streak and level
// forward. The profile row is locked FOR UPDATE for the whole transaction,
// so two concurrent awards for the same user serialize instead of losing
// an update. Badge evaluation runs after commit with the fresh counters; a
// failure there is logged, the award is never rolled back.
func (s *ProgressService) AwardPoints(ctx context.Context, userID uuid.UUID, points int, activityType string) (*profile.AwardPointsResult, error) {
	if points <= 0 {
		return nil, apperrors.Invalid("points", "must be positive")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// A user with no profile yet starts from zero-state defaults.
	_, err = tx.Exec(ctx, `
		INSERT INTO user_profiles (user_id, points, experience, level, streak_days)
		VALUES ($1, 0, 0, 1, 0)
		ON CONFLICT (user_id) DO NOTHING
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure profile: %w", err)
	}

	var current profile.Profile
	err = tx.QueryRow(ctx, `
		SELECT points, experience, level, streak_days, last_activity_date
		FROM user_profiles
		WHERE user_id = $1
		FOR UPDATE
	`, userID).Scan(
		&current.Points,
		&current.Experience,
		&current.Level,
		&current.StreakDays,
		&current.LastActivityDate,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	today := s.now()
	newStreak := gamification.NextStreak(current.StreakDays, current.LastActivityDate, today)
	newExperience := current.Experience + points
	newLevel := gamification.LevelForXP(newExperience)

	result := &profile.AwardPointsResult{
		Points:     current.Points + points,
		Experience: newExperience,
		Level:      newLevel,
		LeveledUp:  newLevel > current.Level,
		StreakDays: newStreak,
	}

	_, err = tx.Exec(ctx, `
		UPDATE user_profiles
		SET points = points + $2,
			experience = experience + $2,
			level = $3,
			streak_days = $4,
			last_activity_date = $5,
			updated_at = NOW()
		WHERE user_id = $1
	`, userID, points, newLevel, newStreak, today)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile counters: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit point award: %w", err)
	}

	stats := gamification.Stats{
		Points:     result.Points,
		Level:      result.Level,
		StreakDays: result.StreakDays,
	}
	newBadges, err := s.badges.Evaluate(ctx, userID, stats)
	if err != nil {
		log.Printf("AwardPoints: badge evaluation failed for user %s: %v", userID, err)
		newBadges = nil
	}
	result.NewBadges = newBadges

	return result, nil
}

func validateCompletion(req *progress.RecordCompletionRequest) error {
	if strings.TrimSpace(req.ActivityType) == "" {
		return apperrors.Invalid("activity_type", "is required")
	}
	if req.Score < 0 {
		return apperrors.Invalid("score", "must not be negative")
	}
	if req.TotalQuestions < 0 {
		return apperrors.Invalid("total_questions", "must not be negative")
	}
	if req.TotalQuestions > 0 && req.Score > req.TotalQuestions {
		return apperrors.Invalid("score", "must not exceed total_questions")
	}
	if req.TimeSpentSeconds < 0 {
		return apperrors.Invalid("time_spent_seconds", "must not be negative")
	}
	return nil
}
