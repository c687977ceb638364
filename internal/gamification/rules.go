package gamification

import (
	"github.com/google/uuid"
)

// RuleKind is the closed set of badge unlock rules. Catalog rows map onto
// exactly one of these; anything unmapped is ignored by the evaluator.
type RuleKind int

const (
	RuleMilestone RuleKind = iota // total completed activities
	RuleStreak                    // consecutive-day streak
	RuleLevel                     // current level
	RuleSubject                   // completions of one activity type
)

// BadgeRule is one unlockable badge with its metric and threshold.
type BadgeRule struct {
	BadgeID      uuid.UUID
	Kind         RuleKind
	Threshold    int
	ActivityType string // RuleSubject only
}

// Stats is the snapshot a rule evaluates against. Counters are the
// post-update values; the evaluator runs after the profile write.
type Stats struct {
	Points           int
	Level            int
	StreakDays       int
	TotalActivities  int
	ActivitiesByType map[string]int
}

// MetricValue returns the user's current value for this rule's metric.
func (r BadgeRule) MetricValue(s Stats) int {
	switch r.Kind {
	case RuleMilestone:
		return s.TotalActivities
	case RuleStreak:
		return s.StreakDays
	case RuleLevel:
		return s.Level
	case RuleSubject:
		return s.ActivitiesByType[r.ActivityType]
	}
	return 0
}

// MetRules returns rules whose threshold the stats meet and whose badge is
// not yet in the earned set. Calling it again with the newly earned badges
// folded into the set yields nothing, which is what makes badge evaluation
// safe to retry.
func MetRules(rules []BadgeRule, s Stats, earned map[uuid.UUID]bool) []BadgeRule {
	var met []BadgeRule
	for _, r := range rules {
		if earned[r.BadgeID] {
			continue
		}
		if r.MetricValue(s) >= r.Threshold {
			met = append(met, r)
		}
	}
	return met
}

// CompletionMilestones are the per-activity-type achievement thresholds.
var CompletionMilestones = []int{5, 10, 25, 50}

// MilestonesReached returns every milestone the completion count meets.
// The storage uniqueness constraint keeps re-grants out, so this reports
// all reached milestones rather than only the newest one.
func MilestonesReached(count int) []int {
	var reached []int
	for _, m := range CompletionMilestones {
		if count >= m {
			reached = append(reached, m)
		}
	}
	return reached
}

// IsPerfectScore reports a flawless result on a scored activity.
func IsPerfectScore(score, totalQuestions int) bool {
	return totalQuestions > 0 && score == totalQuestions
}
