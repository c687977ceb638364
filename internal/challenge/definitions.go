package challenge

import "github.com/google/uuid"

// Definitions is the canonical daily challenge catalog. Keep the IDs
// stable because clients and completion rows reference them.
func Definitions() []DailyChallenge {
	return []DailyChallenge{
		{
			ID:           uuid.MustParse("5f0c2a1e-9b4d-4f6a-8c3e-1d2b3c4d5e6f"),
			Title:        "Explorer",
			Description:  "Complete 3 different types of activities today",
			ActivityType: TargetAny,
			TargetValue:  3,
			PointsReward: 30,
		},
		{
			ID:           uuid.MustParse("7a1b2c3d-4e5f-4a6b-9c8d-2e3f4a5b6c7d"),
			Title:        "Point Collector",
			Description:  "Reach 100 points",
			ActivityType: TargetPoints,
			TargetValue:  100,
			PointsReward: 20,
		},
		{
			ID:           uuid.MustParse("9c8d7e6f-5a4b-4c3d-8e2f-3a4b5c6d7e8f"),
			Title:        "Flawless",
			Description:  "Get a perfect score on 2 activities today",
			ActivityType: TargetPerfect,
			TargetValue:  2,
			PointsReward: 40,
		},
		{
			ID:           uuid.MustParse("1e2f3a4b-5c6d-4e7f-9a8b-4c5d6e7f8a9b"),
			Title:        "Speed Runner",
			Description:  "Finish an activity in under 2 minutes",
			ActivityType: TargetSpeed,
			TargetValue:  120,
			PointsReward: 25,
		},
		{
			ID:           uuid.MustParse("3a4b5c6d-7e8f-4a9b-8c1d-5e6f7a8b9c1d"),
			Title:        "Math Whiz",
			Description:  "Complete 2 math adventures today",
			ActivityType: "math_adventure",
			TargetValue:  2,
			PointsReward: 30,
		},
		{
			ID:           uuid.MustParse("6d7e8f9a-1b2c-4d3e-9f4a-6b7c8d9e1f2a"),
			Title:        "Word Wizard",
			Description:  "Complete 2 word builder rounds today",
			ActivityType: "word_builder",
			TargetValue:  2,
			PointsReward: 30,
		},
		{
			ID:           uuid.MustParse("8f9a1b2c-3d4e-4f5a-8b6c-7d8e9f1a2b3c"),
			Title:        "Bookworm",
			Description:  "Finish 2 story time sessions today",
			ActivityType: "story_time",
			TargetValue:  2,
			PointsReward: 30,
		},
		{
			ID:           uuid.MustParse("2b3c4d5e-6f7a-4b8c-9d1e-8f9a1b2c3d4e"),
			Title:        "Junior Scientist",
			Description:  "Complete 2 science lab experiments today",
			ActivityType: "science_lab",
			TargetValue:  2,
			PointsReward: 30,
		},
	}
}
