package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidventureAPI/internal/achievement"
	"kidventureAPI/internal/badge"
	"kidventureAPI/internal/gamification"
	"kidventureAPI/internal/profile"
)

type ProfileService struct {
	db *pgxpool.Pool
}

func NewProfileService(db *pgxpool.Pool) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the user's counters. A user with no profile row yet
// is reported with zero-state defaults rather than an error.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*profile.ProfileResponse, error) {
	p := profile.Profile{UserID: userID, Level: 1}

	err := s.db.QueryRow(ctx, `
		SELECT points, experience, level, streak_days, last_activity_date, updated_at
		FROM user_profiles
		WHERE user_id = $1
	`, userID).Scan(
		&p.Points,
		&p.Experience,
		&p.Level,
		&p.StreakDays,
		&p.LastActivityDate,
		&p.UpdatedAt,
	)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	progress, needed := gamification.LevelProgress(p.Experience)
	return &profile.ProfileResponse{
		Profile:            p,
		ExperienceProgress: progress,
		ExperienceNeeded:   needed,
	}, nil
}

// GetBadges lists the full catalog with the user's earned status.
func (s *ProfileService) GetBadges(ctx context.Context, userID uuid.UUID) ([]*badge.BadgeWithStatus, error) {
	query := `
	SELECT
		b.id,
		b.name,
		b.description,
		b.icon,
		b.category,
		b.rarity,
		b.criteria_type,
		b.criteria_value,
		COALESCE(b.activity_type, ''),
		b.created_at,
		CASE WHEN ub.badge_id IS NOT NULL THEN true ELSE false END as earned,
		ub.earned_at
	FROM badges b
	LEFT JOIN user_badges ub ON b.id = ub.badge_id AND ub.user_id = $1
	ORDER BY earned DESC, b.criteria_value ASC
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch badges: %w", err)
	}
	defer rows.Close()

	var badges []*badge.BadgeWithStatus
	for rows.Next() {
		b := &badge.BadgeWithStatus{}
		err := rows.Scan(
			&b.ID,
			&b.Name,
			&b.Description,
			&b.Icon,
			&b.Category,
			&b.Rarity,
			&b.CriteriaType,
			&b.CriteriaValue,
			&b.ActivityType,
			&b.CreatedAt,
			&b.Earned,
			&b.EarnedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, b)
	}

	if badges == nil {
		badges = []*badge.BadgeWithStatus{}
	}
	return badges, rows.Err()
}

// GetAchievements lists the user's earned achievements, newest first.
func (s *ProfileService) GetAchievements(ctx context.Context, userID uuid.UUID) ([]*achievement.Achievement, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, achievement_type, activity_type, title, description, earned_at
		FROM user_achievements
		WHERE user_id = $1
		ORDER BY earned_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}
	defer rows.Close()

	var achievements []*achievement.Achievement
	for rows.Next() {
		a := &achievement.Achievement{}
		err := rows.Scan(&a.ID, &a.UserID, &a.Type, &a.ActivityType, &a.Title, &a.Description, &a.EarnedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}

	if achievements == nil {
		achievements = []*achievement.Achievement{}
	}
	return achievements, rows.Err()
}
