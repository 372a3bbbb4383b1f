package service

import (
	"context"
	"errors"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrTraineeNotFound = errors.New("trainee not found")
	ErrNotYourTrainee  = errors.New("user is not on your trainee roster")
	ErrNotATrainee     = errors.New("only regular member accounts can be added as trainees")
)

type CoachService interface {
	AddTraineeByEmail(ctx context.Context, coachID primitive.ObjectID, email string) (*domain.User, error)
	Trainees(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error)
	TraineeEntries(ctx context.Context, coachID, traineeID primitive.ObjectID) ([]domain.GymEntry, error)
	TraineeProgram(ctx context.Context, coachID, traineeID primitive.ObjectID) (*domain.WorkoutProgram, error)
	UpdateTraineeProgram(ctx context.Context, coachID, traineeID primitive.ObjectID, days []domain.WorkoutDay) (*domain.WorkoutProgram, error)
}

type coachService struct {
	userRepo    repository.UserRepository
	entryRepo   repository.EntryRepository
	programRepo repository.ProgramRepository
}

// NewCoachService creates the coach roster/program service.
func NewCoachService(
	userRepo repository.UserRepository,
	entryRepo repository.EntryRepository,
	programRepo repository.ProgramRepository,
) CoachService {
	return &coachService{
		userRepo:    userRepo,
		entryRepo:   entryRepo,
		programRepo: programRepo,
	}
}

// AddTraineeByEmail puts an existing member account on the coach's roster.
func (s *coachService) AddTraineeByEmail(ctx context.Context, coachID primitive.ObjectID, email string) (*domain.User, error) {
	if email == "" {
		return nil, errors.New("trainee email cannot be empty")
	}

	trainee, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTraineeNotFound
		}
		return nil, err
	}
	if trainee.Role != domain.RoleUser {
		return nil, ErrNotATrainee
	}

	if err := s.userRepo.AddTrainee(ctx, coachID, trainee.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	trainee.PasswordHash = ""
	return trainee, nil
}

// Trainees returns the coach's roster.
func (s *coachService) Trainees(ctx context.Context, coachID primitive.ObjectID) ([]domain.User, error) {
	coach, err := s.coach(ctx, coachID)
	if err != nil {
		return nil, err
	}

	trainees, err := s.userRepo.GetByIDs(ctx, coach.Trainees)
	if err != nil {
		return nil, err
	}
	for i := range trainees {
		trainees[i].PasswordHash = ""
	}
	return trainees, nil
}

// TraineeEntries returns a trainee's gym visits, newest first. Entries are
// readable by their owner and by the coach whose roster includes the owner.
func (s *coachService) TraineeEntries(ctx context.Context, coachID, traineeID primitive.ObjectID) ([]domain.GymEntry, error) {
	if err := s.authorizeTrainee(ctx, coachID, traineeID); err != nil {
		return nil, err
	}
	return s.entryRepo.ListByUser(ctx, traineeID)
}

// TraineeProgram returns the trainee's current program.
func (s *coachService) TraineeProgram(ctx context.Context, coachID, traineeID primitive.ObjectID) (*domain.WorkoutProgram, error) {
	if err := s.authorizeTrainee(ctx, coachID, traineeID); err != nil {
		return nil, err
	}

	trainee, err := s.userRepo.GetByID(ctx, traineeID)
	if err != nil {
		return nil, err
	}
	if trainee.CurrentProgramID == nil {
		return nil, ErrProgramNotFound
	}

	prog, err := s.programRepo.GetByID(ctx, *trainee.CurrentProgramID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	return prog, nil
}

// UpdateTraineeProgram replaces the day list of the trainee's current
// program. Edits pass through the same sanitize step as generation, and an
// edit that would leave the program empty is rejected before any write.
func (s *coachService) UpdateTraineeProgram(ctx context.Context, coachID, traineeID primitive.ObjectID, days []domain.WorkoutDay) (*domain.WorkoutProgram, error) {
	prog, err := s.TraineeProgram(ctx, coachID, traineeID)
	if err != nil {
		return nil, err
	}

	cleaned := sanitizeDays(days)
	if len(cleaned) == 0 {
		return nil, ErrEmptyProgram
	}

	if err := s.programRepo.ReplaceDays(ctx, prog.ID, cleaned); err != nil {
		return nil, err
	}
	prog.Program = cleaned
	return prog, nil
}

func (s *coachService) coach(ctx context.Context, coachID primitive.ObjectID) (*domain.User, error) {
	coach, err := s.userRepo.GetByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !coach.IsCoach() {
		return nil, ErrNotYourTrainee
	}
	return coach, nil
}

func (s *coachService) authorizeTrainee(ctx context.Context, coachID, traineeID primitive.ObjectID) error {
	coach, err := s.coach(ctx, coachID)
	if err != nil {
		return err
	}
	if !coach.HasTrainee(traineeID) {
		return ErrNotYourTrainee
	}
	return nil
}
