package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gymmate/fitness-server/internal/aiclient"
	"gymmate/fitness-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	resp *aiclient.GenerateResponse
	err  error

	lastRequest *aiclient.GenerateRequest
}

func (g *fakeGenerator) GenerateProgram(_ context.Context, req aiclient.GenerateRequest) (*aiclient.GenerateResponse, error) {
	g.lastRequest = &req
	if g.err != nil {
		return nil, g.err
	}
	return g.resp, nil
}

func catalogExercises() []domain.Exercise {
	names := map[string][]string{
		domain.DifficultyBeginner: {
			"Squat", "Bench Press", "Bent-over Row", "Overhead Press", "Plank",
			"Deadlift", "Dumbbell Press", "Lat Pulldown", "Leg Press", "Bicep Curl",
			"Romanian Deadlift", "Incline Dumbbell Press", "Seated Row", "Leg Curl", "Tricep Extension",
		},
		domain.DifficultyIntermediate: {
			"Dips", "Barbell Curl", "Calf Raise", "Pull-ups", "Dumbbell Shoulder Press",
			"Close-grip Bench Press", "Hammer Curl", "Front Squat", "Walking Lunges",
			"Leg Extension", "Russian Twists", "Dead Bug",
		},
	}
	var out []domain.Exercise
	for difficulty, list := range names {
		for _, n := range list {
			out = append(out, domain.Exercise{Name: n, Area: "Misc", Difficulty: difficulty})
		}
	}
	return out
}

func newProgramFixture(gen ProgramGenerator) (ProgramService, *fakeUserRepo, *fakeProgramRepo, *domain.User) {
	user := &domain.User{Email: "member@example.com", Role: domain.RoleUser}
	userRepo := newFakeUserRepo(user)
	programRepo := newFakeProgramRepo()
	exerciseRepo := &fakeExerciseRepo{exercises: catalogExercises()}
	svc := NewProgramService(userRepo, programRepo, exerciseRepo, gen)
	return svc, userRepo, programRepo, user
}

func TestGenerate_RemoteSuccess(t *testing.T) {
	gen := &fakeGenerator{resp: &aiclient.GenerateResponse{
		Success: true,
		Program: []aiclient.ResponseDay{
			{
				Day: "Day 1 - Push",
				Exercises: []aiclient.ResponseExercise{
					{Name: "Bench Press", Sets: json.RawMessage(`4`), Reps: "6-10", RIR: "2-3"},
					{Name: "Overhead Press", Sets: json.RawMessage(`"3"`), Reps: "8-12", RIR: "2-3"},
				},
			},
		},
	}}

	svc, userRepo, _, user := newProgramFixture(gen)

	prog, err := svc.Generate(context.Background(), user.ID, GenerateInput{
		Gender:      "Male",
		Experience:  "Intermediate",
		Goal:        "Build Muscle",
		WorkoutDays: 1,
	})
	require.NoError(t, err)

	assert.Equal(t, "Build Muscle Program", prog.Name)
	require.Len(t, prog.Program, 1)
	assert.Equal(t, "Day 1 - Push", prog.Program[0].Day)
	require.Len(t, prog.Program[0].Exercises, 2)
	assert.Equal(t, 4, prog.Program[0].Exercises[0].Sets)
	// Numeric-string sets decode too.
	assert.Equal(t, 3, prog.Program[0].Exercises[1].Sets)

	require.NotNil(t, gen.lastRequest)
	assert.Equal(t, "intermediate", gen.lastRequest.Experience)
	assert.Equal(t, user.ID.Hex(), gen.lastRequest.UserID)

	// The new program becomes the member's current one.
	stored, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.CurrentProgramID)
	assert.Equal(t, prog.ID, *stored.CurrentProgramID)
}

func TestGenerate_RemoteFailureFallsBackToTemplates(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("connection refused")}
	svc, _, _, user := newProgramFixture(gen)

	prog, err := svc.Generate(context.Background(), user.ID, GenerateInput{
		Experience:  "Beginner",
		Goal:        "Lose Weight",
		WorkoutDays: 3,
	})
	require.NoError(t, err)

	require.Len(t, prog.Program, 3)
	assert.Equal(t, "Day 1 - Full Body", prog.Program[0].Day)
	assert.Equal(t, "Day 2 - Full Body", prog.Program[1].Day)
	assert.Equal(t, "Day 3 - Full Body", prog.Program[2].Day)
	for _, day := range prog.Program {
		assert.Len(t, day.Exercises, 5)
	}
}

func TestGenerate_UnusableRemoteShapeFallsBackToTemplates(t *testing.T) {
	// The remote replies successfully but every exercise is missing required
	// fields, so the sanitizer rejects the whole reply.
	gen := &fakeGenerator{resp: &aiclient.GenerateResponse{
		Success: true,
		Program: []aiclient.ResponseDay{
			{Day: "Day 1", Exercises: []aiclient.ResponseExercise{{Name: "", Reps: "", RIR: ""}}},
			{Day: "", Exercises: []aiclient.ResponseExercise{{Name: "Squat", Reps: "8-12", RIR: "2-3"}}},
		},
	}}
	svc, _, _, user := newProgramFixture(gen)

	prog, err := svc.Generate(context.Background(), user.ID, GenerateInput{
		Experience:  "Beginner",
		WorkoutDays: 2,
	})
	require.NoError(t, err)
	require.Len(t, prog.Program, 2)
	assert.Equal(t, "Day 1 - Full Body", prog.Program[0].Day)
}

func TestGenerate_SanitizeDropsInvalidRemoteExercises(t *testing.T) {
	gen := &fakeGenerator{resp: &aiclient.GenerateResponse{
		Success: true,
		Program: []aiclient.ResponseDay{
			{
				Day: "Day 1",
				Exercises: []aiclient.ResponseExercise{
					{Name: "Bench Press", Sets: json.RawMessage(`3`), Reps: "8-12", RIR: "2-3"},
					{Name: "", Sets: json.RawMessage(`3`), Reps: "8-12", RIR: "2-3"},
					{Name: "Squat", Sets: json.RawMessage(`3`), Reps: "", RIR: "2-3"},
				},
			},
		},
	}}
	svc, _, _, user := newProgramFixture(gen)

	prog, err := svc.Generate(context.Background(), user.ID, GenerateInput{WorkoutDays: 1})
	require.NoError(t, err)
	require.Len(t, prog.Program, 1)
	require.Len(t, prog.Program[0].Exercises, 1)
	assert.Equal(t, "Bench Press", prog.Program[0].Exercises[0].Name)
}

func TestGenerate_DefaultsForMissingInputs(t *testing.T) {
	svc, _, _, user := newProgramFixture(nil)

	prog, err := svc.Generate(context.Background(), user.ID, GenerateInput{WorkoutDays: 3})
	require.NoError(t, err)

	assert.Equal(t, "General Fitness Program", prog.Name)
	assert.Equal(t, "Unspecified", prog.UserInfo.Gender)
	assert.Equal(t, "General Fitness", prog.UserInfo.Goal)
	assert.Equal(t, "beginner", prog.UserInfo.Experience)
}

func TestGenerate_InvalidDayCount(t *testing.T) {
	svc, _, _, user := newProgramFixture(nil)

	_, err := svc.Generate(context.Background(), user.ID, GenerateInput{WorkoutDays: 0})
	assert.ErrorIs(t, err, ErrInvalidDays)
}

func TestGenerate_IntermediateShortWeekUsesFullBodyDays(t *testing.T) {
	svc, _, _, user := newProgramFixture(nil)

	prog, err := svc.Generate(context.Background(), user.ID, GenerateInput{
		Experience:  "Intermediate lifter",
		WorkoutDays: 2,
	})
	require.NoError(t, err)
	require.Len(t, prog.Program, 2)
	assert.Equal(t, "Day 1 - Full Body", prog.Program[0].Day)
	assert.Equal(t, "Day 2 - Full Body", prog.Program[1].Day)
}

func TestGenerate_IntermediateFourDaySplit(t *testing.T) {
	svc, _, _, user := newProgramFixture(nil)

	prog, err := svc.Generate(context.Background(), user.ID, GenerateInput{
		Experience:  "Intermediate",
		WorkoutDays: 4,
	})
	require.NoError(t, err)
	require.Len(t, prog.Program, 4)
	assert.Equal(t, "Day 1 - Upper Body", prog.Program[0].Day)
	assert.Equal(t, "Day 4 - Lower Body + Core", prog.Program[3].Day)
}

func TestGenerate_DayCountCappedAtCatalogLength(t *testing.T) {
	svc, _, _, user := newProgramFixture(nil)

	prog, err := svc.Generate(context.Background(), user.ID, GenerateInput{
		Experience:  "Beginner",
		WorkoutDays: 7,
	})
	require.NoError(t, err)
	assert.Len(t, prog.Program, 3)
}

func TestHistoryAndCurrent(t *testing.T) {
	svc, _, _, user := newProgramFixture(nil)
	ctx := context.Background()

	_, err := svc.Current(ctx, user.ID)
	assert.ErrorIs(t, err, ErrProgramNotFound)

	first, err := svc.Generate(ctx, user.ID, GenerateInput{WorkoutDays: 3})
	require.NoError(t, err)
	second, err := svc.Generate(ctx, user.ID, GenerateInput{WorkoutDays: 2})
	require.NoError(t, err)
	_ = first

	current, err := svc.Current(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, current.ID)

	history, err := svc.History(ctx, user.ID)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestSanitizeDays(t *testing.T) {
	days := []domain.WorkoutDay{
		{Day: "", Exercises: []domain.ProgramExercise{{Name: "Squat", Sets: 3, Reps: "8", RIR: "2"}}},
		{Day: "Day 1", Exercises: []domain.ProgramExercise{
			{Name: "Squat", Sets: 3, Reps: "8-12", RIR: "2-3"},
			{Name: "Bench Press", Sets: 0, Reps: "8-12", RIR: "2-3"},
		}},
		{Day: "Day 2", Exercises: []domain.ProgramExercise{
			{Name: "", Sets: 3, Reps: "8-12", RIR: "2-3"},
		}},
	}

	out := sanitizeDays(days)
	require.Len(t, out, 1)
	assert.Equal(t, "Day 1", out[0].Day)
	require.Len(t, out[0].Exercises, 1)
	assert.Equal(t, "Squat", out[0].Exercises[0].Name)
}
