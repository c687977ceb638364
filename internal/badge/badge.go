package badge

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryMilestone Category = "milestone"
	CategoryStreak    Category = "streak"
	CategorySubject   Category = "subject"
	CategoryLevel     Category = "level"
	CategorySpecial   Category = "special"
)

type CriteriaType string

const (
	CriteriaTotalActivities CriteriaType = "total_activities"
	CriteriaStreakDays      CriteriaType = "streak_days"
	CriteriaLevel           CriteriaType = "level"
	CriteriaSubjectCount    CriteriaType = "subject_count"
)

// Badge is a global read-only catalog entry. For subject badges
// activity_type names the subject the criteria_value counts against.
type Badge struct {
	ID            uuid.UUID    `json:"id" db:"id"`
	Name          string       `json:"name" db:"name"`
	Description   string       `json:"description" db:"description"`
	Icon          string       `json:"icon" db:"icon"`
	Category      Category     `json:"category" db:"category"`
	Rarity        string       `json:"rarity" db:"rarity"`
	CriteriaType  CriteriaType `json:"criteria_type" db:"criteria_type"`
	CriteriaValue int          `json:"criteria_value" db:"criteria_value"`
	ActivityType  string       `json:"activity_type,omitempty" db:"activity_type"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

type UserBadge struct {
	UserID   uuid.UUID `json:"user_id" db:"user_id"`
	BadgeID  uuid.UUID `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`
}

type BadgeWithStatus struct {
	Badge
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at,omitempty"`
}
