package service

import (
	"context"
	"errors"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"
)

type GymService interface {
	ListGyms(ctx context.Context) ([]domain.Gym, error)
	GetGym(ctx context.Context, gymID int) (*domain.Gym, error)
}

type gymService struct {
	gymRepo repository.GymRepository
}

// NewGymService creates the gym reference-data service.
func NewGymService(gymRepo repository.GymRepository) GymService {
	return &gymService{gymRepo: gymRepo}
}

func (s *gymService) ListGyms(ctx context.Context) ([]domain.Gym, error) {
	return s.gymRepo.List(ctx)
}

func (s *gymService) GetGym(ctx context.Context, gymID int) (*domain.Gym, error) {
	gym, err := s.gymRepo.GetByGymID(ctx, gymID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}
	return gym, nil
}
