package service

import (
	"context"
	"testing"
	"time"

	"gymmate/fitness-server/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newCheckinFixture(t *testing.T, gymID int) (*checkinService, *fakeEntryRepo, primitive.ObjectID, *time.Time) {
	t.Helper()

	user := &domain.User{
		DisplayName: "Member",
		Email:       "member@example.com",
		Role:        domain.RoleUser,
	}
	if gymID > 0 {
		user.Gym = &gymID
	}
	userRepo := newFakeUserRepo(user)
	entryRepo := newFakeEntryRepo()

	svc := NewCheckinService(userRepo, entryRepo).(*checkinService)
	clock := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }

	return svc, entryRepo, user.ID, &clock
}

func TestScan_InvalidPayload(t *testing.T) {
	svc, _, userID, _ := newCheckinFixture(t, 1)

	_, err := svc.Scan(context.Background(), userID, "hello world")
	assert.ErrorIs(t, err, ErrInvalidQRCode)
}

func TestScan_NoRegisteredGym(t *testing.T) {
	svc, _, userID, _ := newCheckinFixture(t, 0)

	_, err := svc.Scan(context.Background(), userID, "1")
	assert.ErrorIs(t, err, ErrNoRegisteredGym)
}

func TestScan_WrongGym(t *testing.T) {
	svc, _, userID, _ := newCheckinFixture(t, 1)

	_, err := svc.Scan(context.Background(), userID, "2")
	assert.ErrorIs(t, err, ErrWrongGym)
}

func TestScan_CheckInThenOut(t *testing.T) {
	svc, _, userID, clock := newCheckinFixture(t, 1)
	ctx := context.Background()

	result, err := svc.Scan(ctx, userID, "1")
	require.NoError(t, err)
	assert.Equal(t, ActionCheckedIn, result.Action)
	require.NotNil(t, result.Entry)
	assert.True(t, result.Entry.Open())
	assert.Equal(t, 1, result.Entry.GymID)

	active, err := svc.ActiveEntry(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, result.Entry.ID, active.ID)

	// 45 minutes later the member scans the same code to leave.
	*clock = clock.Add(45 * time.Minute)

	result, err = svc.Scan(ctx, userID, "1")
	require.NoError(t, err)
	assert.Equal(t, ActionCheckedOut, result.Action)
	require.NotNil(t, result.Entry.ExitTime)
	require.NotNil(t, result.Entry.Duration)
	assert.Equal(t, 45, *result.Entry.Duration)

	active, err = svc.ActiveEntry(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestScan_DurationRoundsToNearestMinute(t *testing.T) {
	svc, _, userID, clock := newCheckinFixture(t, 1)
	ctx := context.Background()

	_, err := svc.Scan(ctx, userID, "1")
	require.NoError(t, err)

	*clock = clock.Add(10*time.Minute + 31*time.Second)

	result, err := svc.Scan(ctx, userID, "1")
	require.NoError(t, err)
	require.NotNil(t, result.Entry.Duration)
	assert.Equal(t, 11, *result.Entry.Duration)
}

func TestScan_CooldownAfterSuccess(t *testing.T) {
	svc, _, userID, clock := newCheckinFixture(t, 1)
	ctx := context.Background()

	_, err := svc.Scan(ctx, userID, "1")
	require.NoError(t, err)

	// The camera reads the same physical scan again almost immediately.
	// It must not toggle the session into a check-out.
	*clock = clock.Add(time.Second)
	_, err = svc.Scan(ctx, userID, "1")
	assert.ErrorIs(t, err, ErrScanTooSoon)

	*clock = clock.Add(2 * time.Second)
	result, err := svc.Scan(ctx, userID, "1")
	require.NoError(t, err)
	assert.Equal(t, ActionCheckedOut, result.Action)
}

func TestScan_ShorterCooldownAfterFailure(t *testing.T) {
	svc, _, userID, clock := newCheckinFixture(t, 1)
	ctx := context.Background()

	_, err := svc.Scan(ctx, userID, "2")
	assert.ErrorIs(t, err, ErrWrongGym)

	*clock = clock.Add(time.Second)
	_, err = svc.Scan(ctx, userID, "1")
	assert.ErrorIs(t, err, ErrScanTooSoon)

	*clock = clock.Add(time.Second)
	result, err := svc.Scan(ctx, userID, "1")
	require.NoError(t, err)
	assert.Equal(t, ActionCheckedIn, result.Action)
}

func TestScan_CooldownIsPerUser(t *testing.T) {
	gymID := 1
	alice := &domain.User{Email: "alice@example.com", Role: domain.RoleUser, Gym: &gymID}
	bob := &domain.User{Email: "bob@example.com", Role: domain.RoleUser, Gym: &gymID}
	userRepo := newFakeUserRepo(alice, bob)
	entryRepo := newFakeEntryRepo()

	svc := NewCheckinService(userRepo, entryRepo).(*checkinService)
	clock := time.Date(2025, 3, 10, 18, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return clock }
	ctx := context.Background()

	_, err := svc.Scan(ctx, alice.ID, "1")
	require.NoError(t, err)

	// Bob scanning right after Alice is unaffected by her cooldown.
	result, err := svc.Scan(ctx, bob.ID, "1")
	require.NoError(t, err)
	assert.Equal(t, ActionCheckedIn, result.Action)
}

func TestScan_ExpiredCooldownsArePruned(t *testing.T) {
	svc, _, userID, clock := newCheckinFixture(t, 1)

	stale := primitive.NewObjectID()
	svc.armCooldown(stale, failureCooldown)

	// Long after the stale window passed, arming a fresh cooldown must
	// drop the stale entry instead of accumulating it forever.
	*clock = clock.Add(time.Minute)
	svc.armCooldown(userID, successCooldown)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	assert.NotContains(t, svc.cooldowns, stale)
	assert.Contains(t, svc.cooldowns, userID)
}

func TestScan_ConcurrentCheckInBecomesCheckOut(t *testing.T) {
	svc, entryRepo, userID, clock := newCheckinFixture(t, 1)
	ctx := context.Background()

	// Another device inserts an open entry between this scan's open-session
	// query and its insert. The unique index rejects the insert and the scan
	// must resolve to a check-out of the entry that won.
	entryRepo.conflictOnCreate = func() {
		_, err := entryRepo.CreateOpen(ctx, userID, 1, clock.Add(-time.Minute))
		require.NoError(t, err)
	}

	result, err := svc.Scan(ctx, userID, "1")
	require.NoError(t, err)
	assert.Equal(t, ActionCheckedOut, result.Action)
	require.NotNil(t, result.Entry.Duration)
	assert.Equal(t, 1, *result.Entry.Duration)

	active, err := svc.ActiveEntry(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, active)
}

func TestHistory_NewestFirst(t *testing.T) {
	svc, _, userID, clock := newCheckinFixture(t, 1)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Scan(ctx, userID, "1")
		require.NoError(t, err)
		*clock = clock.Add(30 * time.Minute)
		_, err = svc.Scan(ctx, userID, "1")
		require.NoError(t, err)
		*clock = clock.Add(24 * time.Hour)
	}

	history, err := svc.History(ctx, userID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].EntryTime.Time.After(history[1].EntryTime.Time))
	for _, e := range history {
		assert.False(t, e.Open())
	}
}
