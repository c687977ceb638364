package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SetupTestDB creates a test database connection. Tests that need a real
// database skip when no URL is configured.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL or DATABASE_URL must be set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	EnsureSchema(t, pool)
	return pool
}

// EnsureSchema creates the engine's tables. The uniqueness constraints are
// load-bearing: badge, achievement and challenge-completion idempotency
// all rely on them, not on application-side checks.
func EnsureSchema(t *testing.T, pool *pgxpool.Pool) {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS user_profiles (
			user_id UUID PRIMARY KEY,
			points INTEGER NOT NULL DEFAULT 0,
			experience INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			streak_days INTEGER NOT NULL DEFAULT 0,
			last_activity_date DATE,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS activity_completions (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			activity_type TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			total_questions INTEGER NOT NULL DEFAULT 0,
			time_spent_seconds INTEGER NOT NULL DEFAULT 0,
			metadata JSONB,
			completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS badges (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			icon TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL,
			rarity TEXT NOT NULL DEFAULT 'common',
			criteria_type TEXT NOT NULL,
			criteria_value INTEGER NOT NULL DEFAULT 0,
			activity_type TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS user_badges (
			user_id UUID NOT NULL,
			badge_id UUID NOT NULL REFERENCES badges(id),
			earned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (user_id, badge_id)
		)`,
		`CREATE TABLE IF NOT EXISTS user_achievements (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			achievement_type TEXT NOT NULL,
			activity_type TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			earned_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, achievement_type, activity_type)
		)`,
		`CREATE TABLE IF NOT EXISTS daily_challenges (
			id UUID PRIMARY KEY,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			activity_type TEXT NOT NULL,
			target_value INTEGER NOT NULL,
			points_reward INTEGER NOT NULL,
			active_date DATE
		)`,
		`CREATE TABLE IF NOT EXISTS user_daily_challenges (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL,
			challenge_id UUID NOT NULL REFERENCES daily_challenges(id),
			completed_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_date DATE NOT NULL,
			points_earned INTEGER NOT NULL DEFAULT 0,
			UNIQUE (user_id, challenge_id, completed_date)
		)`,
	}

	ctx := context.Background()
	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			t.Fatalf("Failed to ensure schema: %v", err)
		}
	}
}

// SeedBadges inserts a small badge catalog for tests that exercise the
// evaluator. Idempotent.
func SeedBadges(t *testing.T, pool *pgxpool.Pool) map[string]uuid.UUID {
	badges := []struct {
		name          string
		category      string
		criteriaType  string
		criteriaValue int
		activityType  *string
	}{
		{"First Steps", "milestone", "total_activities", 1, nil},
		{"Getting Serious", "milestone", "total_activities", 5, nil},
		{"Week Warrior", "streak", "streak_days", 7, nil},
		{"Rising Star", "level", "level", 10, nil},
		{"Math Champion", "subject", "subject_count", 10, strPtr("math_adventure")},
	}

	ctx := context.Background()
	ids := make(map[string]uuid.UUID, len(badges))
	for _, b := range badges {
		var id uuid.UUID
		err := pool.QueryRow(ctx, `
			INSERT INTO badges (id, name, category, rarity, criteria_type, criteria_value, activity_type)
			VALUES ($1, $2, $3, 'common', $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name
			RETURNING id
		`, badgeID(b.name), b.name, b.category, b.criteriaType, b.criteriaValue, b.activityType).Scan(&id)
		if err != nil {
			t.Fatalf("Failed to seed badge %s: %v", b.name, err)
		}
		ids[b.name] = id
	}
	return ids
}

// CleanupTestUser removes everything owned by one test user.
func CleanupTestUser(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) {
	ctx := context.Background()
	tables := []string{"user_daily_challenges", "user_achievements", "user_badges", "activity_completions", "user_profiles"}
	for _, table := range tables {
		if _, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s WHERE user_id = $1", table), userID); err != nil {
			t.Logf("Warning: failed to cleanup %s: %v", table, err)
		}
	}
}

// GenerateTestJWT signs a token the auth middleware accepts when
// JWT_SECRET matches.
func GenerateTestJWT(userID uuid.UUID, secret string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// badgeID derives a stable per-name UUID so seeding stays idempotent.
func badgeID(name string) uuid.UUID {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte("kidventure-badge:"+name))
}

func strPtr(s string) *string { return &s }
