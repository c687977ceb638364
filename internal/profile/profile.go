package profile

import (
	"time"

	"github.com/google/uuid"

	"kidventureAPI/internal/badge"
)

// Profile holds the per-user gamification counters. Points and experience
// only ever grow; streak_days is the single counter allowed to reset.
type Profile struct {
	UserID           uuid.UUID  `json:"user_id" db:"user_id"`
	Points           int        `json:"points" db:"points"`
	Experience       int        `json:"experience" db:"experience"`
	Level            int        `json:"level" db:"level"`
	StreakDays       int        `json:"streak_days" db:"streak_days"`
	LastActivityDate *time.Time `json:"last_activity_date" db:"last_activity_date"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

type ProfileResponse struct {
	Profile
	ExperienceProgress int `json:"experience_progress"`
	ExperienceNeeded   int `json:"experience_needed"`
}

// AwardPointsResult is the net effect of one point award.
type AwardPointsResult struct {
	Points     int            `json:"points"`
	Experience int            `json:"experience"`
	Level      int            `json:"level"`
	LeveledUp  bool           `json:"leveled_up"`
	StreakDays int            `json:"streak_days"`
	NewBadges  []*badge.Badge `json:"new_badges"`
}
