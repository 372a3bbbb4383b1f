package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrScanTooSoon     = errors.New("scan ignored: cooldown active")
	ErrInvalidQRCode   = errors.New("scanned code is not a valid gym code")
	ErrWrongGym        = errors.New("scanned gym does not match your registered gym")
	ErrNoRegisteredGym = errors.New("no registered gym on profile")
)

// Cooldown windows after a scan. These only debounce repeated reads of one
// physical scan; the open-session invariant itself is enforced by the
// partial unique index on the gymentries collection.
const (
	successCooldown = 3 * time.Second
	failureCooldown = 2 * time.Second
)

// ScanAction says which transition a scan performed.
type ScanAction string

const (
	ActionCheckedIn  ScanAction = "checked_in"
	ActionCheckedOut ScanAction = "checked_out"
)

// ScanResult is the outcome of a successful scan.
type ScanResult struct {
	Action ScanAction      `json:"action"`
	Entry  *domain.GymEntry `json:"entry"`
}

type CheckinService interface {
	// Scan handles one QR scan event: check-in when the user has no open
	// session, check-out when they do.
	Scan(ctx context.Context, userID primitive.ObjectID, payload string) (*ScanResult, error)
	ActiveEntry(ctx context.Context, userID primitive.ObjectID) (*domain.GymEntry, error)
	History(ctx context.Context, userID primitive.ObjectID) ([]domain.GymEntry, error)
}

type checkinService struct {
	userRepo  repository.UserRepository
	entryRepo repository.EntryRepository

	mu        sync.Mutex
	cooldowns map[primitive.ObjectID]time.Time // Next allowed scan per user

	now func() time.Time
}

// NewCheckinService creates the check-in/check-out session tracker.
func NewCheckinService(userRepo repository.UserRepository, entryRepo repository.EntryRepository) CheckinService {
	return &checkinService{
		userRepo:  userRepo,
		entryRepo: entryRepo,
		cooldowns: make(map[primitive.ObjectID]time.Time),
		now:       time.Now,
	}
}

// Scan runs the session state machine. Every outcome, success or failure,
// arms a cooldown window during which further scans from the same user are
// ignored, so one physical scan read several times by the camera feed does
// not toggle the session back and forth.
func (s *checkinService) Scan(ctx context.Context, userID primitive.ObjectID, payload string) (*ScanResult, error) {
	if !s.takeScanSlot(userID) {
		return nil, ErrScanTooSoon
	}

	result, err := s.scan(ctx, userID, payload)
	if err != nil {
		s.armCooldown(userID, failureCooldown)
		return nil, err
	}
	s.armCooldown(userID, successCooldown)
	return result, nil
}

func (s *checkinService) scan(ctx context.Context, userID primitive.ObjectID, payload string) (*ScanResult, error) {
	gymID, err := strconv.Atoi(payload)
	if err != nil {
		return nil, ErrInvalidQRCode
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Gym == nil {
		return nil, ErrNoRegisteredGym
	}
	if *user.Gym != gymID {
		return nil, ErrWrongGym
	}

	// An existing open session means this scan is a check-out.
	open, err := s.entryRepo.FindOpen(ctx, userID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if open != nil {
		return s.checkOut(ctx, userID, open)
	}

	now := s.now().UTC()
	entry, err := s.entryRepo.CreateOpen(ctx, userID, gymID, now)
	if errors.Is(err, repository.ErrConflict) {
		// Another device won the race and opened a session between our
		// query and insert. Re-read it and treat this scan as the exit.
		open, ferr := s.entryRepo.FindOpen(ctx, userID)
		if ferr != nil {
			return nil, ferr
		}
		return s.checkOut(ctx, userID, open)
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user": userID.Hex(),
		"gym":  gymID,
	}).Info("gym check-in")

	return &ScanResult{Action: ActionCheckedIn, Entry: entry}, nil
}

func (s *checkinService) checkOut(ctx context.Context, userID primitive.ObjectID, open *domain.GymEntry) (*ScanResult, error) {
	exit := s.now().UTC()
	duration := domain.VisitDuration(open.EntryTime.Time, exit)

	closed, err := s.entryRepo.CloseOpen(ctx, open.ID, exit, duration)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user":     userID.Hex(),
		"gym":      closed.GymID,
		"duration": duration,
	}).Info("gym check-out")

	return &ScanResult{Action: ActionCheckedOut, Entry: closed}, nil
}

// takeScanSlot reports whether the user is outside their cooldown window.
func (s *checkinService) takeScanSlot(userID primitive.ObjectID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.cooldowns[userID]
	return !ok || !s.now().Before(until)
}

// armCooldown records the user's next allowed scan time. Expired entries are
// pruned on the way so the map tracks only users inside a window, not every
// user the process has ever seen.
func (s *checkinService) armCooldown(userID primitive.ObjectID, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, until := range s.cooldowns {
		if !now.Before(until) {
			delete(s.cooldowns, id)
		}
	}
	s.cooldowns[userID] = now.Add(d)
}

// ActiveEntry returns the user's open session, or nil when there is none.
func (s *checkinService) ActiveEntry(ctx context.Context, userID primitive.ObjectID) (*domain.GymEntry, error) {
	entry, err := s.entryRepo.FindOpen(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// History returns the user's visits, newest first.
func (s *checkinService) History(ctx context.Context, userID primitive.ObjectID) ([]domain.GymEntry, error) {
	return s.entryRepo.ListByUser(ctx, userID)
}
