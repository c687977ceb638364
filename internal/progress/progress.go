package progress

import (
	"time"

	"github.com/google/uuid"

	"kidventureAPI/internal/achievement"
)

// ActivityCompletion is one recorded activity. Rows are append-only: the
// engine never updates or deletes them.
type ActivityCompletion struct {
	ID               uuid.UUID         `json:"id" db:"id"`
	UserID           uuid.UUID         `json:"user_id" db:"user_id"`
	ActivityType     string            `json:"activity_type" db:"activity_type"`
	Score            int               `json:"score" db:"score"`
	TotalQuestions   int               `json:"total_questions" db:"total_questions"`
	TimeSpentSeconds int               `json:"time_spent_seconds" db:"time_spent_seconds"`
	Metadata         map[string]string `json:"metadata,omitempty" db:"metadata"`
	CompletedAt      time.Time         `json:"completed_at" db:"completed_at"`
}

type RecordCompletionRequest struct {
	ActivityType     string            `json:"activity_type"`
	Score            int               `json:"score"`
	TotalQuestions   int               `json:"total_questions"`
	TimeSpentSeconds int               `json:"time_spent_seconds"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

type AwardPointsRequest struct {
	Points       int    `json:"points"`
	ActivityType string `json:"activity_type,omitempty"`
}

// RecordCompletionResult pairs the persisted record with any achievements
// this completion unlocked.
type RecordCompletionResult struct {
	Record          *ActivityCompletion        `json:"record"`
	NewAchievements []*achievement.Achievement `json:"new_achievements"`
}
