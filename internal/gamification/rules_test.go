package gamification

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMetRules(t *testing.T) {
	milestoneID := uuid.New()
	streakID := uuid.New()
	levelID := uuid.New()
	subjectID := uuid.New()

	rules := []BadgeRule{
		{BadgeID: milestoneID, Kind: RuleMilestone, Threshold: 5},
		{BadgeID: streakID, Kind: RuleStreak, Threshold: 7},
		{BadgeID: levelID, Kind: RuleLevel, Threshold: 10},
		{BadgeID: subjectID, Kind: RuleSubject, Threshold: 10, ActivityType: "math_adventure"},
	}

	stats := Stats{
		Level:           10,
		StreakDays:      3,
		TotalActivities: 12,
		ActivitiesByType: map[string]int{
			"math_adventure": 10,
			"word_builder":   2,
		},
	}

	met := MetRules(rules, stats, map[uuid.UUID]bool{})

	var ids []uuid.UUID
	for _, r := range met {
		ids = append(ids, r.BadgeID)
	}
	assert.ElementsMatch(t, []uuid.UUID{milestoneID, levelID, subjectID}, ids)
}

func TestMetRulesSkipsEarned(t *testing.T) {
	id := uuid.New()
	rules := []BadgeRule{{BadgeID: id, Kind: RuleMilestone, Threshold: 1}}
	stats := Stats{TotalActivities: 100}

	first := MetRules(rules, stats, map[uuid.UUID]bool{})
	assert.Len(t, first, 1)

	// Fold the grant back in and re-run with unchanged inputs: nothing new.
	earned := map[uuid.UUID]bool{id: true}
	second := MetRules(rules, stats, earned)
	assert.Empty(t, second)
}

func TestMilestonesReached(t *testing.T) {
	assert.Empty(t, MilestonesReached(4))
	assert.Equal(t, []int{5}, MilestonesReached(5))
	assert.Equal(t, []int{5}, MilestonesReached(6))
	assert.Equal(t, []int{5, 10, 25}, MilestonesReached(30))
	assert.Equal(t, []int{5, 10, 25, 50}, MilestonesReached(50))
}

func TestIsPerfectScore(t *testing.T) {
	assert.True(t, IsPerfectScore(10, 10))
	assert.False(t, IsPerfectScore(9, 10))
	assert.False(t, IsPerfectScore(0, 0), "unscored activity is not a perfect score")
}
