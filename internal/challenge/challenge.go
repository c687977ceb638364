package challenge

import (
	"time"

	"github.com/google/uuid"
)

// Special activity_type values for challenge targets. Anything else is
// matched against completions of that specific activity type.
const (
	TargetAny     = "any"
	TargetPoints  = "points"
	TargetPerfect = "perfect"
	TargetSpeed   = "speed"
)

// DailyChallenge is a catalog template. Generation binds a template to a
// calendar date by re-pointing active_date; there is one row per template.
type DailyChallenge struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	Title        string     `json:"title" db:"title"`
	Description  string     `json:"description" db:"description"`
	ActivityType string     `json:"activity_type" db:"activity_type"`
	TargetValue  int        `json:"target_value" db:"target_value"`
	PointsReward int        `json:"points_reward" db:"points_reward"`
	ActiveDate   *time.Time `json:"active_date,omitempty" db:"active_date"`
}

type ChallengeWithProgress struct {
	DailyChallenge
	CurrentProgress    int  `json:"current_progress"`
	ProgressPercentage int  `json:"progress_percentage"`
	IsCompleted        bool `json:"is_completed"`
}

type Completion struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	ChallengeID   uuid.UUID `json:"challenge_id" db:"challenge_id"`
	CompletedAt   time.Time `json:"completed_at" db:"completed_at"`
	CompletedDate time.Time `json:"completed_date" db:"completed_date"`
	PointsEarned  int       `json:"points_earned" db:"points_earned"`
}

type CompleteChallengeRequest struct {
	PointsEarned int `json:"points_earned"`
}
