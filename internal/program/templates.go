// Package program contains the deterministic workout-program selector: a
// fixed catalog of named day templates per experience tier, resolved against
// the live exercise catalog. It is the local fallback behind the remote
// generation service and must stay fully deterministic: fixed order, no
// randomization, no scoring.
package program

import (
	"strings"

	"gymmate/fitness-server/internal/domain"
)

// Tier is an experience tier, matching the difficulty tiers of the exercise
// catalog.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// NormalizeTier maps free-form experience input to a tier, defaulting to
// beginner on anything unrecognized.
func NormalizeTier(s string) Tier {
	e := strings.ToLower(s)
	switch {
	case strings.Contains(e, "advanced"):
		return TierAdvanced
	case strings.Contains(e, "intermediate"):
		return TierIntermediate
	default:
		return TierBeginner
	}
}

// Difficulty returns the exercise-catalog difficulty label for a tier.
func (t Tier) Difficulty() string {
	switch t {
	case TierAdvanced:
		return domain.DifficultyAdvanced
	case TierIntermediate:
		return domain.DifficultyIntermediate
	default:
		return domain.DifficultyBeginner
	}
}

// lower returns the next tier down, or beginner for beginner.
func (t Tier) lower() Tier {
	switch t {
	case TierAdvanced:
		return TierIntermediate
	case TierIntermediate:
		return TierBeginner
	default:
		return TierBeginner
	}
}

// Pools maps each tier to the exercise names available in the live catalog
// for that tier: lowercased name to canonical display name.
type Pools map[Tier]map[string]string

// BuildPool converts a list of catalog exercises into a resolution pool.
func BuildPool(exercises []domain.Exercise) map[string]string {
	pool := make(map[string]string, len(exercises))
	for _, e := range exercises {
		pool[strings.ToLower(e.Name)] = e.Name
	}
	return pool
}

func ex(name string, sets int, reps, rir string) domain.ProgramExercise {
	return domain.ProgramExercise{Name: name, Sets: sets, Reps: reps, RIR: rir}
}

// beginnerCatalog is three full-body days.
func beginnerCatalog() []domain.WorkoutDay {
	return []domain.WorkoutDay{
		{
			Day: "Day 1 - Full Body",
			Exercises: []domain.ProgramExercise{
				ex("Squat", 3, "8-12", "2-3"),
				ex("Bench Press", 3, "8-12", "2-3"),
				ex("Bent-over Row", 3, "8-12", "2-3"),
				ex("Overhead Press", 3, "8-12", "2-3"),
				ex("Plank", 3, "30-60 sec", "1-2"),
			},
		},
		{
			Day: "Day 2 - Full Body",
			Exercises: []domain.ProgramExercise{
				ex("Deadlift", 3, "5-8", "2-3"),
				ex("Dumbbell Press", 3, "8-12", "2-3"),
				ex("Lat Pulldown", 3, "8-12", "1-2"),
				ex("Leg Press", 3, "12-15", "1-2"),
				ex("Bicep Curl", 3, "10-15", "0-1"),
			},
		},
		{
			Day: "Day 3 - Full Body",
			Exercises: []domain.ProgramExercise{
				ex("Romanian Deadlift", 3, "8-12", "2-3"),
				ex("Incline Dumbbell Press", 3, "8-12", "2-3"),
				ex("Seated Row", 3, "8-12", "1-2"),
				ex("Leg Curl", 3, "10-15", "1-2"),
				ex("Tricep Extension", 3, "10-15", "0-1"),
			},
		},
	}
}

// intermediateCatalog is a four-day upper/lower split.
func intermediateCatalog() []domain.WorkoutDay {
	return []domain.WorkoutDay{
		{
			Day: "Day 1 - Upper Body",
			Exercises: []domain.ProgramExercise{
				ex("Bench Press", 4, "6-10", "2-3"),
				ex("Bent-over Row", 4, "6-10", "2-3"),
				ex("Overhead Press", 3, "8-12", "2-3"),
				ex("Lat Pulldown", 3, "8-12", "1-2"),
				ex("Dips", 3, "8-15", "1-2"),
				ex("Barbell Curl", 3, "10-15", "0-1"),
			},
		},
		{
			Day: "Day 2 - Lower Body",
			Exercises: []domain.ProgramExercise{
				ex("Squat", 4, "6-10", "2-3"),
				ex("Romanian Deadlift", 4, "8-12", "2-3"),
				ex("Leg Press", 3, "12-20", "1-2"),
				ex("Leg Curl", 3, "10-15", "1-2"),
				ex("Calf Raise", 4, "15-20", "0-1"),
				ex("Plank", 3, "60-90 sec", "1-2"),
			},
		},
		{
			Day: "Day 3 - Upper Body",
			Exercises: []domain.ProgramExercise{
				ex("Incline Dumbbell Press", 4, "8-12", "2-3"),
				ex("Pull-ups", 4, "5-12", "2-3"),
				ex("Dumbbell Shoulder Press", 3, "8-12", "2-3"),
				ex("Seated Row", 3, "8-12", "1-2"),
				ex("Close-grip Bench Press", 3, "8-12", "1-2"),
				ex("Hammer Curl", 3, "10-15", "0-1"),
			},
		},
		{
			Day: "Day 4 - Lower Body + Core",
			Exercises: []domain.ProgramExercise{
				ex("Deadlift", 4, "5-8", "2-3"),
				ex("Front Squat", 3, "8-12", "2-3"),
				ex("Walking Lunges", 3, "12-16", "1-2"),
				ex("Leg Extension", 3, "12-20", "1-2"),
				ex("Russian Twists", 3, "20-30", "0-1"),
				ex("Dead Bug", 3, "10-15", "1-2"),
			},
		},
	}
}

// advancedCatalog is a five-day body-part split.
func advancedCatalog() []domain.WorkoutDay {
	return []domain.WorkoutDay{
		{
			Day: "Day 1 - Chest + Triceps",
			Exercises: []domain.ProgramExercise{
				ex("Bench Press", 5, "4-8", "2-3"),
				ex("Incline Dumbbell Press", 4, "6-10", "2-3"),
				ex("Chest Fly", 3, "10-15", "1-2"),
				ex("Close-grip Bench Press", 4, "6-10", "2-3"),
				ex("Tricep Dips", 3, "8-15", "1-2"),
				ex("Overhead Tricep Extension", 3, "10-15", "0-1"),
			},
		},
		{
			Day: "Day 2 - Back + Biceps",
			Exercises: []domain.ProgramExercise{
				ex("Deadlift", 5, "4-8", "2-3"),
				ex("Pull-ups", 4, "6-12", "2-3"),
				ex("Bent-over Row", 4, "6-10", "2-3"),
				ex("Lat Pulldown", 3, "8-12", "1-2"),
				ex("Barbell Curl", 4, "8-12", "1-2"),
				ex("Hammer Curl", 3, "10-15", "0-1"),
			},
		},
		{
			Day: "Day 3 - Legs",
			Exercises: []domain.ProgramExercise{
				ex("Squat", 5, "4-8", "2-3"),
				ex("Romanian Deadlift", 4, "6-10", "2-3"),
				ex("Bulgarian Split Squat", 3, "8-12", "2-3"),
				ex("Leg Curl", 4, "10-15", "1-2"),
				ex("Leg Extension", 3, "12-20", "1-2"),
				ex("Calf Raise", 4, "15-25", "0-1"),
			},
		},
		{
			Day: "Day 4 - Shoulders + Core",
			Exercises: []domain.ProgramExercise{
				ex("Overhead Press", 5, "4-8", "2-3"),
				ex("Lateral Raise", 4, "10-15", "1-2"),
				ex("Rear Delt Fly", 4, "12-20", "1-2"),
				ex("Upright Row", 3, "8-12", "2-3"),
				ex("Plank", 4, "60-120 sec", "1-2"),
				ex("Russian Twists", 3, "20-40", "0-1"),
			},
		},
		{
			Day: "Day 5 - Upper Power",
			Exercises: []domain.ProgramExercise{
				ex("Power Clean", 5, "3-5", "3-4"),
				ex("Push Press", 4, "4-6", "2-3"),
				ex("Weighted Pull-ups", 4, "4-8", "2-3"),
				ex("Dumbbell Snatch", 3, "5-8", "2-3"),
				ex("Battle Ropes", 3, "30 sec", "1-2"),
				ex("Burpees", 3, "8-15", "1-2"),
			},
		},
	}
}

// Select returns the first dayCount templates for the tier (capped at the
// catalog length, fixed order), with each exercise name resolved against the
// live catalog pool for that tier. Intermediate programs of three days or
// fewer reuse the beginner catalog; a tier whose pool is empty borrows the
// next lower tier's pool. Names absent from the pool keep the literal
// template name as a placeholder.
func Select(tier Tier, dayCount int, pools Pools) []domain.WorkoutDay {
	if dayCount < 1 {
		return nil
	}

	catalogTier := tier
	if tier == TierIntermediate && dayCount <= 3 {
		catalogTier = TierBeginner
	}

	var catalog []domain.WorkoutDay
	switch catalogTier {
	case TierAdvanced:
		catalog = advancedCatalog()
	case TierIntermediate:
		catalog = intermediateCatalog()
	default:
		catalog = beginnerCatalog()
	}

	if dayCount > len(catalog) {
		dayCount = len(catalog)
	}
	days := catalog[:dayCount]

	pool := pools[catalogTier]
	for t := catalogTier; len(pool) == 0 && t != TierBeginner; {
		t = t.lower()
		pool = pools[t]
	}

	for i := range days {
		for j := range days[i].Exercises {
			name := days[i].Exercises[j].Name
			if canonical, ok := pool[strings.ToLower(name)]; ok {
				days[i].Exercises[j].Name = canonical
			}
			// On a miss the template name stays as a placeholder.
		}
	}
	return days
}
