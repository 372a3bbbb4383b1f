package repository

import (
	"context"
	"time"

	"gymmate/fitness-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrConflict     = RepositoryError("conflict")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error)
	UpdateProfile(ctx context.Context, user *domain.User) error
	SetGym(ctx context.Context, userID primitive.ObjectID, gymID *int) error
	SetPhotoKey(ctx context.Context, userID primitive.ObjectID, key string) error
	SetCurrentProgram(ctx context.Context, userID, programID primitive.ObjectID) error
	AddTrainee(ctx context.Context, coachID, traineeID primitive.ObjectID) error
}

// GymRepository provides access to the gym reference data.
type GymRepository interface {
	List(ctx context.Context) ([]domain.Gym, error)
	GetByGymID(ctx context.Context, gymID int) (*domain.Gym, error)
	Upsert(ctx context.Context, gym *domain.Gym) error // Seeder only
}

// ExerciseRepository provides access to the reference exercise catalog.
type ExerciseRepository interface {
	List(ctx context.Context) ([]domain.Exercise, error)
	ListByArea(ctx context.Context, area string) ([]domain.Exercise, error)
	ListByDifficulty(ctx context.Context, difficulty string) ([]domain.Exercise, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	Upsert(ctx context.Context, exercise *domain.Exercise) error // Seeder only
}

// EntryRepository manages GymEntry documents. CreateOpen must fail with
// ErrConflict when the user already has an open entry, and CloseOpen must be
// a single atomic update so an entry can never be closed twice.
type EntryRepository interface {
	CreateOpen(ctx context.Context, userID primitive.ObjectID, gymID int, at time.Time) (*domain.GymEntry, error)
	FindOpen(ctx context.Context, userID primitive.ObjectID) (*domain.GymEntry, error)
	CloseOpen(ctx context.Context, entryID primitive.ObjectID, exit time.Time, durationMin int) (*domain.GymEntry, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.GymEntry, error)
}

// ProgramRepository manages WorkoutProgram documents.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutProgram, error)
	ReplaceDays(ctx context.Context, id primitive.ObjectID, days []domain.WorkoutDay) error
}

// ConversationRepository manages conversations and their messages.
type ConversationRepository interface {
	Create(ctx context.Context, conv *domain.Conversation) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Conversation, error)
	FindForParticipants(ctx context.Context, kind domain.ConversationKind, participants []primitive.ObjectID) (*domain.Conversation, error)
	ListByParticipant(ctx context.Context, userID primitive.ObjectID) ([]domain.Conversation, error)
	AppendMessage(ctx context.Context, msg *domain.Message) (primitive.ObjectID, error)
	ListMessages(ctx context.Context, conversationID primitive.ObjectID) ([]domain.Message, error)
}
