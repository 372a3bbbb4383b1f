package service

import (
	"context"
	"errors"
	"time"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"
	"gymmate/fitness-server/internal/storage"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrExerciseNotFound = errors.New("exercise not found")

type ExerciseService interface {
	ListExercises(ctx context.Context, area string) ([]domain.Exercise, error)
	GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error)
	ImageDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error)
}

type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates the read-only exercise catalog service.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

// ListExercises returns the catalog, optionally filtered by target area.
func (s *exerciseService) ListExercises(ctx context.Context, area string) ([]domain.Exercise, error) {
	if area != "" {
		return s.exerciseRepo.ListByArea(ctx, area)
	}
	return s.exerciseRepo.List(ctx)
}

func (s *exerciseService) GetExercise(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	return exercise, nil
}

// ImageDownloadURL returns a short-lived GET URL for the exercise image.
func (s *exerciseService) ImageDownloadURL(ctx context.Context, id primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrUploadsUnprepared
	}

	exercise, err := s.GetExercise(ctx, id)
	if err != nil {
		return "", err
	}
	if exercise.ImageKey == "" {
		return "", ErrExerciseNotFound
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.ImageKey, 15*time.Minute)
}
