package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidventureAPI/internal/achievement"
	"kidventureAPI/internal/gamification"
)

type AchievementService struct {
	db *pgxpool.Pool
}

func NewAchievementService(db *pgxpool.Pool) *AchievementService {
	return &AchievementService{db: db}
}

// CheckAndAward evaluates the per-activity-type achievement rules after a
// completion was recorded. The UNIQUE (user_id, achievement_type,
// activity_type) constraint makes re-runs and concurrent calls safe: an
// achievement counts as new only when its insert actually lands a row.
func (s *AchievementService) CheckAndAward(ctx context.Context, userID uuid.UUID, activityType string, score, totalQuestions int) ([]*achievement.Achievement, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM activity_completions WHERE user_id = $1 AND activity_type = $2`,
		userID, activityType,
	).Scan(&count)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	var newAchievements []*achievement.Achievement

	for _, milestone := range gamification.MilestonesReached(count) {
		ach := &achievement.Achievement{
			ID:           uuid.New(),
			UserID:       userID,
			Type:         milestoneType(milestone),
			ActivityType: activityType,
			Title:        milestoneTitle(milestone),
			Description:  fmt.Sprintf("Completed %d %s activities", milestone, activityType),
			EarnedAt:     time.Now(),
		}
		inserted, err := s.insert(ctx, ach)
		if err != nil {
			return newAchievements, err
		}
		if inserted {
			newAchievements = append(newAchievements, ach)
		}
	}

	if gamification.IsPerfectScore(score, totalQuestions) {
		ach := &achievement.Achievement{
			ID:           uuid.New(),
			UserID:       userID,
			Type:         achievement.TypePerfectScore,
			ActivityType: activityType,
			Title:        "Perfect Score!",
			Description:  fmt.Sprintf("Answered every question correctly in %s", activityType),
			EarnedAt:     time.Now(),
		}
		inserted, err := s.insert(ctx, ach)
		if err != nil {
			return newAchievements, err
		}
		if inserted {
			newAchievements = append(newAchievements, ach)
		}
	}

	return newAchievements, nil
}

func (s *AchievementService) insert(ctx context.Context, ach *achievement.Achievement) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_type, activity_type, title, description, earned_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, achievement_type, activity_type) DO NOTHING
	`, ach.ID, ach.UserID, ach.Type, ach.ActivityType, ach.Title, ach.Description, ach.EarnedAt)
	if err != nil {
		return false, fmt.Errorf("failed to insert achievement: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func milestoneType(milestone int) achievement.Type {
	switch milestone {
	case 5:
		return achievement.TypeCompleted5
	case 10:
		return achievement.TypeCompleted10
	case 25:
		return achievement.TypeCompleted25
	default:
		return achievement.TypeCompleted50
	}
}

func milestoneTitle(milestone int) string {
	switch milestone {
	case 5:
		return "Getting Started"
	case 10:
		return "Dedicated Learner"
	case 25:
		return "Subject Explorer"
	default:
		return "Subject Master"
	}
}
