package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidventureAPI/internal/apperrors"
	"kidventureAPI/internal/challenge"
	"kidventureAPI/internal/gamification"
	"kidventureAPI/internal/progress"
)

type ChallengeService struct {
	db              *pgxpool.Pool
	progressService *ProgressService
	now             func() time.Time
}

func NewChallengeService(db *pgxpool.Pool, progressService *ProgressService) *ChallengeService {
	return &ChallengeService{
		db:              db,
		progressService: progressService,
		now:             time.Now,
	}
}

// GetTodayChallenges returns the date's challenges with the user's live
// progress. Generation is deterministic per date and safe to run
// redundantly: the upsert re-points each template's active_date, one row
// per template id.
func (s *ChallengeService) GetTodayChallenges(ctx context.Context, userID uuid.UUID, date time.Time) ([]*challenge.ChallengeWithProgress, error) {
	day := dateOnly(date)

	todays, err := s.ensureDailyChallenges(ctx, day)
	if err != nil {
		return nil, err
	}

	completed, err := s.completedSet(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	activities, err := s.todaysActivities(ctx, userID, day)
	if err != nil {
		return nil, err
	}

	points, err := s.lifetimePoints(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := make([]*challenge.ChallengeWithProgress, 0, len(todays))
	for _, ch := range todays {
		ch := ch
		ch.ActiveDate = &day
		isCompleted := completed[ch.ID]

		current := gamification.ChallengeProgress(ch.ActivityType, ch.TargetValue, activities, points)
		result = append(result, &challenge.ChallengeWithProgress{
			DailyChallenge:     ch,
			CurrentProgress:    current,
			ProgressPercentage: gamification.ProgressPercentage(current, ch.TargetValue, isCompleted),
			IsCompleted:        isCompleted,
		})
	}

	return result, nil
}

// CompleteChallenge records a challenge completion and credits the bonus
// points through the same counter path as regular awards. The UNIQUE
// (user_id, challenge_id, completed_date) constraint makes completion
// exactly-once per day; a duplicate returns ErrChallengeCompleted and
// credits nothing.
func (s *ChallengeService) CompleteChallenge(ctx context.Context, userID uuid.UUID, challengeID uuid.UUID, pointsEarned int) (*challenge.Completion, error) {
	if pointsEarned < 0 {
		return nil, apperrors.Invalid("points_earned", "must not be negative")
	}

	day := dateOnly(s.now())

	var reward int
	var activeDate *time.Time
	err := s.db.QueryRow(ctx,
		`SELECT points_reward, active_date FROM daily_challenges WHERE id = $1`,
		challengeID,
	).Scan(&reward, &activeDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	if activeDate == nil || !activeDate.Equal(day) {
		return nil, apperrors.ErrNotFound
	}

	if pointsEarned == 0 {
		pointsEarned = reward
	}

	completion := &challenge.Completion{
		ID:            uuid.New(),
		UserID:        userID,
		ChallengeID:   challengeID,
		CompletedAt:   s.now(),
		CompletedDate: day,
		PointsEarned:  pointsEarned,
	}

	tag, err := s.db.Exec(ctx, `
		INSERT INTO user_daily_challenges (id, user_id, challenge_id, completed_at, completed_date, points_earned)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, challenge_id, completed_date) DO NOTHING
	`, completion.ID, completion.UserID, completion.ChallengeID, completion.CompletedAt, completion.CompletedDate, completion.PointsEarned)
	if err != nil {
		return nil, fmt.Errorf("failed to record challenge completion: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrChallengeCompleted
	}

	// The completion row is the source of truth; if crediting fails the
	// reward is delayed, not lost, and the row blocks double credit.
	if _, err := s.progressService.AwardPoints(ctx, userID, pointsEarned, "daily_challenge"); err != nil {
		log.Printf("CompleteChallenge: failed to credit %d points to user %s: %v", pointsEarned, userID, err)
	}

	return completion, nil
}

// ensureDailyChallenges upserts the date's deterministic pick and returns
// it in pick order.
func (s *ChallengeService) ensureDailyChallenges(ctx context.Context, day time.Time) ([]challenge.DailyChallenge, error) {
	picked := gamification.PickDaily(challenge.Definitions(), day, gamification.DailyChallengeCount)

	for _, ch := range picked {
		_, err := s.db.Exec(ctx, `
			INSERT INTO daily_challenges (id, title, description, activity_type, target_value, points_reward, active_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (id) DO UPDATE SET active_date = EXCLUDED.active_date
		`, ch.ID, ch.Title, ch.Description, ch.ActivityType, ch.TargetValue, ch.PointsReward, day)
		if err != nil {
			return nil, fmt.Errorf("failed to upsert daily challenge: %w", err)
		}
	}

	return picked, nil
}

func (s *ChallengeService) completedSet(ctx context.Context, userID uuid.UUID, day time.Time) (map[uuid.UUID]bool, error) {
	rows, err := s.db.Query(ctx,
		`SELECT challenge_id FROM user_daily_challenges WHERE user_id = $1 AND completed_date = $2`,
		userID, day,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch challenge completions: %w", err)
	}
	defer rows.Close()

	completed := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan challenge completion: %w", err)
		}
		completed[id] = true
	}
	return completed, rows.Err()
}

func (s *ChallengeService) todaysActivities(ctx context.Context, userID uuid.UUID, day time.Time) ([]progress.ActivityCompletion, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, activity_type, score, total_questions, time_spent_seconds, completed_at
		FROM activity_completions
		WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3
	`, userID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch today's activities: %w", err)
	}
	defer rows.Close()

	var activities []progress.ActivityCompletion
	for rows.Next() {
		c := progress.ActivityCompletion{UserID: userID}
		err := rows.Scan(&c.ID, &c.ActivityType, &c.Score, &c.TotalQuestions, &c.TimeSpentSeconds, &c.CompletedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, c)
	}
	return activities, rows.Err()
}

func (s *ChallengeService) lifetimePoints(ctx context.Context, userID uuid.UUID) (int, error) {
	var points int
	err := s.db.QueryRow(ctx, `SELECT points FROM user_profiles WHERE user_id = $1`, userID).Scan(&points)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to load points balance: %w", err)
	}
	return points, nil
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
