package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
	for _, u := range users {
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) (primitive.ObjectID, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return primitive.NilObjectID, repository.ErrConflict
		}
	}
	user.ID = primitive.NewObjectID()
	stored := *user
	r.users[user.ID] = &stored
	return user.ID, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	*stored = *user
	return nil
}

func (r *fakeUserRepo) SetGym(_ context.Context, userID primitive.ObjectID, gymID *int) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.Gym = gymID
	return nil
}

func (r *fakeUserRepo) SetPhotoKey(_ context.Context, userID primitive.ObjectID, key string) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.PhotoKey = key
	return nil
}

func (r *fakeUserRepo) SetCurrentProgram(_ context.Context, userID, programID primitive.ObjectID) error {
	u, ok := r.users[userID]
	if !ok {
		return repository.ErrNotFound
	}
	u.CurrentProgramID = &programID
	return nil
}

func (r *fakeUserRepo) AddTrainee(_ context.Context, coachID, traineeID primitive.ObjectID) error {
	u, ok := r.users[coachID]
	if !ok {
		return repository.ErrNotFound
	}
	if !u.HasTrainee(traineeID) {
		u.Trainees = append(u.Trainees, traineeID)
	}
	return nil
}

type fakeEntryRepo struct {
	entries map[primitive.ObjectID]*domain.GymEntry

	// When set, the next CreateOpen fails with ErrConflict after running
	// this hook, simulating a concurrent check-in from another device.
	conflictOnCreate func()
}

func newFakeEntryRepo() *fakeEntryRepo {
	return &fakeEntryRepo{entries: make(map[primitive.ObjectID]*domain.GymEntry)}
}

func (r *fakeEntryRepo) CreateOpen(_ context.Context, userID primitive.ObjectID, gymID int, at time.Time) (*domain.GymEntry, error) {
	if r.conflictOnCreate != nil {
		hook := r.conflictOnCreate
		r.conflictOnCreate = nil
		hook()
		return nil, repository.ErrConflict
	}
	for _, e := range r.entries {
		if e.UserID == userID && e.Open() {
			return nil, repository.ErrConflict
		}
	}
	entry := &domain.GymEntry{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		GymID:     gymID,
		EntryTime: domain.NewFlexTime(at),
		CreatedAt: domain.NewFlexTime(at),
	}
	r.entries[entry.ID] = entry
	copied := *entry
	return &copied, nil
}

func (r *fakeEntryRepo) FindOpen(_ context.Context, userID primitive.ObjectID) (*domain.GymEntry, error) {
	for _, e := range r.entries {
		if e.UserID == userID && e.Open() {
			copied := *e
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeEntryRepo) CloseOpen(_ context.Context, entryID primitive.ObjectID, exit time.Time, durationMin int) (*domain.GymEntry, error) {
	e, ok := r.entries[entryID]
	if !ok || !e.Open() {
		return nil, repository.ErrNotFound
	}
	exitTime := domain.NewFlexTime(exit)
	e.ExitTime = &exitTime
	e.Duration = &durationMin
	copied := *e
	return &copied, nil
}

func (r *fakeEntryRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.GymEntry, error) {
	out := make([]domain.GymEntry, 0)
	for _, e := range r.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EntryTime.Time.After(out[j].EntryTime.Time)
	})
	return out, nil
}

type fakeExerciseRepo struct {
	exercises []domain.Exercise
}

func (r *fakeExerciseRepo) List(_ context.Context) ([]domain.Exercise, error) {
	return append([]domain.Exercise(nil), r.exercises...), nil
}

func (r *fakeExerciseRepo) ListByArea(_ context.Context, area string) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0)
	for _, e := range r.exercises {
		if strings.EqualFold(e.Area, area) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) ListByDifficulty(_ context.Context, difficulty string) ([]domain.Exercise, error) {
	out := make([]domain.Exercise, 0)
	for _, e := range r.exercises {
		if e.Difficulty == difficulty {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExerciseRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	for i := range r.exercises {
		if r.exercises[i].ID == id {
			copied := r.exercises[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeExerciseRepo) Upsert(_ context.Context, exercise *domain.Exercise) error {
	for i := range r.exercises {
		if r.exercises[i].Name == exercise.Name {
			r.exercises[i] = *exercise
			return nil
		}
	}
	r.exercises = append(r.exercises, *exercise)
	return nil
}

type fakeProgramRepo struct {
	programs map[primitive.ObjectID]*domain.WorkoutProgram
}

func newFakeProgramRepo() *fakeProgramRepo {
	return &fakeProgramRepo{programs: make(map[primitive.ObjectID]*domain.WorkoutProgram)}
}

func (r *fakeProgramRepo) Create(_ context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error) {
	copied := *program
	copied.ID = primitive.NewObjectID()
	r.programs[copied.ID] = &copied
	return copied.ID, nil
}

func (r *fakeProgramRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error) {
	p, ok := r.programs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakeProgramRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	out := make([]domain.WorkoutProgram, 0)
	for _, p := range r.programs {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedDate.Time.After(out[j].CreatedDate.Time)
	})
	return out, nil
}

func (r *fakeProgramRepo) ReplaceDays(_ context.Context, id primitive.ObjectID, days []domain.WorkoutDay) error {
	p, ok := r.programs[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Program = days
	return nil
}

type fakeConversationRepo struct {
	conversations map[primitive.ObjectID]*domain.Conversation
	messages      []domain.Message
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{conversations: make(map[primitive.ObjectID]*domain.Conversation)}
}

func (r *fakeConversationRepo) Create(_ context.Context, conv *domain.Conversation) (primitive.ObjectID, error) {
	copied := *conv
	copied.ID = primitive.NewObjectID()
	r.conversations[copied.ID] = &copied
	return copied.ID, nil
}

func (r *fakeConversationRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Conversation, error) {
	c, ok := r.conversations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeConversationRepo) FindForParticipants(_ context.Context, kind domain.ConversationKind, participants []primitive.ObjectID) (*domain.Conversation, error) {
	for _, c := range r.conversations {
		if c.Kind != kind || len(c.Participants) != len(participants) {
			continue
		}
		matched := true
		for _, p := range participants {
			found := false
			for _, cp := range c.Participants {
				if cp == p {
					found = true
					break
				}
			}
			if !found {
				matched = false
				break
			}
		}
		if matched {
			copied := *c
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeConversationRepo) ListByParticipant(_ context.Context, userID primitive.ObjectID) ([]domain.Conversation, error) {
	out := make([]domain.Conversation, 0)
	for _, c := range r.conversations {
		for _, p := range c.Participants {
			if p == userID {
				out = append(out, *c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *fakeConversationRepo) AppendMessage(_ context.Context, msg *domain.Message) (primitive.ObjectID, error) {
	c, ok := r.conversations[msg.ConversationID]
	if !ok {
		return primitive.NilObjectID, repository.ErrNotFound
	}
	copied := *msg
	copied.ID = primitive.NewObjectID()
	if copied.CreatedAt.IsZero() {
		copied.CreatedAt = time.Now().UTC()
	}
	r.messages = append(r.messages, copied)
	c.LastMessage = copied.Text
	c.UpdatedAt = copied.CreatedAt
	return copied.ID, nil
}

func (r *fakeConversationRepo) ListMessages(_ context.Context, conversationID primitive.ObjectID) ([]domain.Message, error) {
	out := make([]domain.Message, 0)
	for _, m := range r.messages {
		if m.ConversationID == conversationID {
			out = append(out, m)
		}
	}
	return out, nil
}

type fakeGymRepo struct {
	gyms []domain.Gym
}

func (r *fakeGymRepo) List(_ context.Context) ([]domain.Gym, error) {
	return append([]domain.Gym(nil), r.gyms...), nil
}

func (r *fakeGymRepo) GetByGymID(_ context.Context, gymID int) (*domain.Gym, error) {
	for i := range r.gyms {
		if r.gyms[i].GymID == gymID {
			copied := r.gyms[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeGymRepo) Upsert(_ context.Context, gym *domain.Gym) error {
	for i := range r.gyms {
		if r.gyms[i].GymID == gym.GymID {
			r.gyms[i] = *gym
			return nil
		}
	}
	r.gyms = append(r.gyms, *gym)
	return nil
}
