package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymmate/fitness-server/internal/aiclient"
	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/program"
	"gymmate/fitness-server/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrEmptyProgram    = errors.New("program has no valid exercises")
	ErrInvalidDays     = errors.New("workout days must be at least 1")
	ErrProgramNotFound = errors.New("program not found")
)

// ProgramGenerator is the remote side of program generation; *aiclient.Client
// satisfies it.
type ProgramGenerator interface {
	GenerateProgram(ctx context.Context, req aiclient.GenerateRequest) (*aiclient.GenerateResponse, error)
}

// GenerateInput carries the four generation inputs.
type GenerateInput struct {
	Gender      string
	Experience  string
	Goal        string
	WorkoutDays int
}

type ProgramService interface {
	// Generate produces and persists a program: remote service first, local
	// deterministic templates on any remote failure.
	Generate(ctx context.Context, userID primitive.ObjectID, input GenerateInput) (*domain.WorkoutProgram, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	Current(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutProgram, error)
}

type programService struct {
	userRepo     repository.UserRepository
	programRepo  repository.ProgramRepository
	exerciseRepo repository.ExerciseRepository
	generator    ProgramGenerator
}

// NewProgramService creates the program generation service. generator may be
// nil, in which case only the local path runs.
func NewProgramService(
	userRepo repository.UserRepository,
	programRepo repository.ProgramRepository,
	exerciseRepo repository.ExerciseRepository,
	generator ProgramGenerator,
) ProgramService {
	return &programService{
		userRepo:     userRepo,
		programRepo:  programRepo,
		exerciseRepo: exerciseRepo,
		generator:    generator,
	}
}

// Generate implements the remote-first, local-fallback policy. Both paths
// share one sanitize step, and nothing is persisted unless at least one day
// with at least one valid exercise survives it.
func (s *programService) Generate(ctx context.Context, userID primitive.ObjectID, input GenerateInput) (*domain.WorkoutProgram, error) {
	if input.WorkoutDays < 1 {
		return nil, ErrInvalidDays
	}

	tier := program.NormalizeTier(input.Experience)
	info := domain.ProgramUserInfo{
		Gender:      input.Gender,
		Experience:  string(tier),
		Goal:        input.Goal,
		WorkoutDays: input.WorkoutDays,
	}
	if info.Gender == "" {
		info.Gender = "Unspecified"
	}
	if info.Goal == "" {
		info.Goal = "General Fitness"
	}

	days := sanitizeDays(s.remoteDays(ctx, userID, info))
	if len(days) == 0 {
		days = sanitizeDays(s.localDays(ctx, tier, info.WorkoutDays))
	}
	if len(days) == 0 {
		return nil, ErrEmptyProgram
	}

	prog := &domain.WorkoutProgram{
		UserID:      userID,
		Name:        fmt.Sprintf("%s Program", info.Goal),
		CreatedDate: domain.NewFlexTime(time.Now().UTC()),
		Program:     days,
		UserInfo:    info,
	}

	programID, err := s.programRepo.Create(ctx, prog)
	if err != nil {
		return nil, err
	}
	prog.ID = programID

	// The newest program becomes the member's current one; the coach
	// calendar reads through this pointer.
	if err := s.userRepo.SetCurrentProgram(ctx, userID, programID); err != nil {
		return nil, err
	}

	return prog, nil
}

// remoteDays attempts the remote generation call. Any failure, including a
// shape the sanitizer later rejects, is returned as nil days so the caller
// falls through to the local path.
func (s *programService) remoteDays(ctx context.Context, userID primitive.ObjectID, info domain.ProgramUserInfo) []domain.WorkoutDay {
	if s.generator == nil {
		return nil
	}

	resp, err := s.generator.GenerateProgram(ctx, aiclient.GenerateRequest{
		Gender:      info.Gender,
		Experience:  info.Experience,
		Goal:        info.Goal,
		WorkoutDays: info.WorkoutDays,
		UserID:      userID.Hex(),
	})
	if err != nil {
		log.WithError(err).Warn("remote program generation failed, using local templates")
		return nil
	}

	return convertResponseDays(resp.Program)
}

// localDays runs the deterministic template selector against the live
// exercise catalog.
func (s *programService) localDays(ctx context.Context, tier program.Tier, dayCount int) []domain.WorkoutDay {
	pools := program.Pools{}
	for _, t := range []program.Tier{program.TierBeginner, program.TierIntermediate, program.TierAdvanced} {
		exercises, err := s.exerciseRepo.ListByDifficulty(ctx, t.Difficulty())
		if err != nil {
			// The selector keeps template names as placeholders when
			// a pool is missing, so generation still succeeds.
			log.WithError(err).WithField("tier", t).Warn("failed to load exercise pool")
			continue
		}
		pools[t] = program.BuildPool(exercises)
	}

	return program.Select(tier, dayCount, pools)
}

// convertResponseDays maps the loosely-typed remote reply onto domain days,
// substituting the default set count when the remote value is unusable.
func convertResponseDays(days []aiclient.ResponseDay) []domain.WorkoutDay {
	out := make([]domain.WorkoutDay, 0, len(days))
	for _, d := range days {
		day := domain.WorkoutDay{Day: d.Day}
		for _, e := range d.Exercises {
			sets := e.SetsValue()
			if sets < 1 {
				sets = 3
			}
			day.Exercises = append(day.Exercises, domain.ProgramExercise{
				Name: e.Name,
				Sets: sets,
				Reps: e.Reps,
				RIR:  e.RIR,
			})
		}
		out = append(out, day)
	}
	return out
}

// sanitizeDays is the shared validation step for every generation path and
// for coach edits: exercises missing a name, reps, or target intensity are
// dropped, as are days left with no exercises or no label.
func sanitizeDays(days []domain.WorkoutDay) []domain.WorkoutDay {
	out := make([]domain.WorkoutDay, 0, len(days))
	for _, day := range days {
		if day.Day == "" {
			continue
		}
		kept := make([]domain.ProgramExercise, 0, len(day.Exercises))
		for _, e := range day.Exercises {
			if e.Name == "" || e.Reps == "" || e.RIR == "" || e.Sets < 1 {
				continue
			}
			kept = append(kept, e)
		}
		if len(kept) == 0 {
			continue
		}
		out = append(out, domain.WorkoutDay{Day: day.Day, Exercises: kept})
	}
	return out
}

// History returns the user's saved programs, newest first.
func (s *programService) History(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	return s.programRepo.ListByUser(ctx, userID)
}

// Current returns the program the user's currentProgramId points at.
func (s *programService) Current(ctx context.Context, userID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.CurrentProgramID == nil {
		return nil, ErrProgramNotFound
	}

	prog, err := s.programRepo.GetByID(ctx, *user.CurrentProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return prog, nil
}
