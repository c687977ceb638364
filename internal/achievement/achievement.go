package achievement

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypePerfectScore Type = "perfect_score"
	TypeCompleted5   Type = "completed_5"
	TypeCompleted10  Type = "completed_10"
	TypeCompleted25  Type = "completed_25"
	TypeCompleted50  Type = "completed_50"
)

// Achievement is an award scoped to one activity type. Unique per
// (user_id, achievement_type, activity_type).
type Achievement struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"user_id" db:"user_id"`
	Type         Type      `json:"achievement_type" db:"achievement_type"`
	ActivityType string    `json:"activity_type" db:"activity_type"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	EarnedAt     time.Time `json:"earned_at" db:"earned_at"`
}
