package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kidventureAPI/internal/badge"
	"kidventureAPI/internal/gamification"
)

type BadgeService struct {
	db *pgxpool.Pool
}

func NewBadgeService(db *pgxpool.Pool) *BadgeService {
	return &BadgeService{db: db}
}

// Evaluate runs the badge rules against the user's post-update stats and
// grants whatever is newly unlocked. Stats must carry points/level/streak
// from the just-committed profile write; activity counts are loaded here.
//
// Two concurrent calls can both pass the earned-set check; the UNIQUE
// (user_id, badge_id) constraint decides the winner, and only the insert
// that affected a row reports the badge as newly granted.
func (s *BadgeService) Evaluate(ctx context.Context, userID uuid.UUID, stats gamification.Stats) ([]*badge.Badge, error) {
	if stats.ActivitiesByType == nil {
		counts, total, err := s.activityCounts(ctx, userID)
		if err != nil {
			return nil, err
		}
		stats.ActivitiesByType = counts
		stats.TotalActivities = total
	}

	catalog, rules, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}

	earned, err := s.earnedSet(ctx, userID)
	if err != nil {
		return nil, err
	}

	var newBadges []*badge.Badge
	for _, rule := range gamification.MetRules(rules, stats, earned) {
		tag, err := s.db.Exec(ctx, `
			INSERT INTO user_badges (user_id, badge_id, earned_at)
			VALUES ($1, $2, NOW())
			ON CONFLICT (user_id, badge_id) DO NOTHING
		`, userID, rule.BadgeID)
		if err != nil {
			return newBadges, fmt.Errorf("failed to insert earned badge: %w", err)
		}
		if tag.RowsAffected() == 1 {
			newBadges = append(newBadges, catalog[rule.BadgeID])
		}
	}

	return newBadges, nil
}

func (s *BadgeService) activityCounts(ctx context.Context, userID uuid.UUID) (map[string]int, int, error) {
	rows, err := s.db.Query(ctx, `
		SELECT activity_type, COUNT(*)
		FROM activity_completions
		WHERE user_id = $1
		GROUP BY activity_type
	`, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count activities: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	total := 0
	for rows.Next() {
		var activityType string
		var count int
		if err := rows.Scan(&activityType, &count); err != nil {
			return nil, 0, fmt.Errorf("failed to scan activity count: %w", err)
		}
		counts[activityType] = count
		total += count
	}
	return counts, total, rows.Err()
}

// loadCatalog reads the badge catalog and translates each row into its
// rule variant. Rows whose criteria type has no variant (special badges
// granted elsewhere) carry no rule and are skipped by the evaluator.
func (s *BadgeService) loadCatalog(ctx context.Context) (map[uuid.UUID]*badge.Badge, []gamification.BadgeRule, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, description, icon, category, rarity, criteria_type, criteria_value, COALESCE(activity_type, ''), created_at
		FROM badges
		ORDER BY criteria_value ASC
	`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch badge catalog: %w", err)
	}
	defer rows.Close()

	catalog := make(map[uuid.UUID]*badge.Badge)
	var rules []gamification.BadgeRule

	for rows.Next() {
		b := &badge.Badge{}
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
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		catalog[b.ID] = b

		rule := gamification.BadgeRule{BadgeID: b.ID, Threshold: b.CriteriaValue}
		switch b.CriteriaType {
		case badge.CriteriaTotalActivities:
			rule.Kind = gamification.RuleMilestone
		case badge.CriteriaStreakDays:
			rule.Kind = gamification.RuleStreak
		case badge.CriteriaLevel:
			rule.Kind = gamification.RuleLevel
		case badge.CriteriaSubjectCount:
			rule.Kind = gamification.RuleSubject
			rule.ActivityType = b.ActivityType
		default:
			continue
		}
		rules = append(rules, rule)
	}

	return catalog, rules, rows.Err()
}

func (s *BadgeService) earnedSet(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := s.db.Query(ctx, `SELECT badge_id FROM user_badges WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch earned badges: %w", err)
	}
	defer rows.Close()

	earned := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan earned badge: %w", err)
		}
		earned[id] = true
	}
	return earned, rows.Err()
}
