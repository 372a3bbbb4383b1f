package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"
	"gymmate/fitness-server/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrGymNotFound       = errors.New("gym not found")
	ErrInvalidProfile    = errors.New("profile validation failed")
	ErrUploadsUnprepared = errors.New("file storage is not configured")
)

// Allowed onboarding values. Anything outside these sets is rejected before
// the document write.
var (
	allowedGoals = map[string]struct{}{
		"Lose Weight":            {},
		"Build Muscle":           {},
		"Improve Endurance":      {},
		"Flexibility/Mobility":   {},
		"General Fitness/Health": {},
	}
	allowedDifficulties = map[string]struct{}{
		"Easy":   {},
		"Medium": {},
		"Hard":   {},
	}
)

// ProfileInput carries the onboarding form fields.
type ProfileInput struct {
	Weight       float64
	Height       float64
	Sex          string
	DateOfBirth  string
	FitnessGoals []string
	Difficulty   string
}

// PhotoUpload is the result of requesting a profile photo upload slot.
type PhotoUpload struct {
	ObjectKey string `json:"objectKey"`
	UploadURL string `json:"uploadUrl"`
}

type UserService interface {
	GetByID(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	SubmitProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.User, error)
	SelectGym(ctx context.Context, userID primitive.ObjectID, gymID int) (*domain.User, error)
	RequestPhotoUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*PhotoUpload, error)
	ConfirmPhotoUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) error
	PhotoDownloadURL(ctx context.Context, userID primitive.ObjectID) (string, error)
}

type userService struct {
	userRepo    repository.UserRepository
	gymRepo     repository.GymRepository
	fileStorage storage.FileStorage
}

// NewUserService creates the profile/onboarding service.
func NewUserService(userRepo repository.UserRepository, gymRepo repository.GymRepository, fileStorage storage.FileStorage) UserService {
	return &userService{
		userRepo:    userRepo,
		gymRepo:     gymRepo,
		fileStorage: fileStorage,
	}
}

func (s *userService) GetByID(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// SubmitProfile validates and stores the onboarding profile, marks
// onboarding complete, and leaves the gym membership unset.
func (s *userService) SubmitProfile(ctx context.Context, userID primitive.ObjectID, input ProfileInput) (*domain.User, error) {
	if input.Weight <= 0 || input.Height <= 0 || input.Sex == "" || input.DateOfBirth == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidProfile)
	}
	if len(input.FitnessGoals) == 0 {
		return nil, fmt.Errorf("%w: at least one fitness goal is required", ErrInvalidProfile)
	}
	for _, goal := range input.FitnessGoals {
		if _, ok := allowedGoals[goal]; !ok {
			return nil, fmt.Errorf("%w: invalid fitness goal %q", ErrInvalidProfile, goal)
		}
	}
	if _, ok := allowedDifficulties[input.Difficulty]; !ok {
		return nil, fmt.Errorf("%w: invalid difficulty %q", ErrInvalidProfile, input.Difficulty)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Weight = input.Weight
	user.Height = input.Height
	user.Sex = input.Sex
	user.DateOfBirth = input.DateOfBirth
	user.FitnessGoals = input.FitnessGoals
	user.Difficulty = input.Difficulty
	user.OnboardingComplete = true
	user.Gym = nil // Membership is chosen on the gym-selection step

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	return user, nil
}

// SelectGym registers the user at one of the seeded gyms. The gym id is the
// same numeric id the gym's entrance QR code carries.
func (s *userService) SelectGym(ctx context.Context, userID primitive.ObjectID, gymID int) (*domain.User, error) {
	if _, err := s.gymRepo.GetByGymID(ctx, gymID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrGymNotFound
		}
		return nil, err
	}

	if err := s.userRepo.SetGym(ctx, userID, &gymID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return s.GetByID(ctx, userID)
}

// RequestPhotoUploadURL hands the client a presigned PUT URL for a fresh
// object key. The photo becomes visible only after ConfirmPhotoUpload.
func (s *userService) RequestPhotoUploadURL(ctx context.Context, userID primitive.ObjectID, contentType string) (*PhotoUpload, error) {
	if s.fileStorage == nil {
		return nil, ErrUploadsUnprepared
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectKey := fmt.Sprintf("profile-photos/%s/%s", userID.Hex(), uuid.NewString())
	url, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	return &PhotoUpload{ObjectKey: objectKey, UploadURL: url}, nil
}

// ConfirmPhotoUpload records the uploaded object as the user's profile photo
// and removes the previous one, if any.
func (s *userService) ConfirmPhotoUpload(ctx context.Context, userID primitive.ObjectID, objectKey string) error {
	if s.fileStorage == nil {
		return ErrUploadsUnprepared
	}
	if objectKey == "" {
		return fmt.Errorf("%w: object key is required", ErrInvalidProfile)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	previous := user.PhotoKey

	if err := s.userRepo.SetPhotoKey(ctx, userID, objectKey); err != nil {
		return err
	}

	if previous != "" && previous != objectKey {
		// Best effort: the new photo is already live.
		_ = s.fileStorage.DeleteObject(ctx, previous)
	}
	return nil
}

// PhotoDownloadURL returns a short-lived GET URL for the user's photo.
func (s *userService) PhotoDownloadURL(ctx context.Context, userID primitive.ObjectID) (string, error) {
	if s.fileStorage == nil {
		return "", ErrUploadsUnprepared
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	if user.PhotoKey == "" {
		return "", repository.ErrNotFound
	}

	return s.fileStorage.GeneratePresignedDownloadURL(ctx, user.PhotoKey, 15*time.Minute)
}
