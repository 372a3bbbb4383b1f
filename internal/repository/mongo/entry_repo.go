package mongo

import (
	"context"
	"errors"
	"time"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const entryCollectionName = "gymentries"

type mongoEntryRepository struct {
	collection *mongo.Collection
}

// NewMongoEntryRepository creates a repository over GymEntry documents.
func NewMongoEntryRepository(db *mongo.Database) repository.EntryRepository {
	return &mongoEntryRepository{
		collection: db.Collection(entryCollectionName),
	}
}

// CreateOpen inserts a new open entry for userID. The partial unique index on
// {userId, exitTime: null} turns this into a conditional insert: if the user
// already has an open session, even one created a moment ago from another
// device, the insert fails with a duplicate key and we report ErrConflict.
func (r *mongoEntryRepository) CreateOpen(ctx context.Context, userID primitive.ObjectID, gymID int, at time.Time) (*domain.GymEntry, error) {
	entry := &domain.GymEntry{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		GymID:     gymID,
		EntryTime: domain.NewFlexTime(at),
		ExitTime:  nil,
		Duration:  nil,
		CreatedAt: domain.NewFlexTime(time.Now().UTC()),
	}

	if _, err := r.collection.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, err
	}
	return entry, nil
}

// FindOpen returns the user's open entry, or ErrNotFound when there is none.
func (r *mongoEntryRepository) FindOpen(ctx context.Context, userID primitive.ObjectID) (*domain.GymEntry, error) {
	var entry domain.GymEntry
	filter := bson.M{"userId": userID, "exitTime": nil}

	err := r.collection.FindOne(ctx, filter).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// CloseOpen sets exitTime and duration on an entry in one atomic update.
// The filter requires exitTime to still be null, so a second close of the
// same entry matches nothing and reports ErrNotFound instead of overwriting.
func (r *mongoEntryRepository) CloseOpen(ctx context.Context, entryID primitive.ObjectID, exit time.Time, durationMin int) (*domain.GymEntry, error) {
	exitTS := domain.NewFlexTime(exit)
	filter := bson.M{"_id": entryID, "exitTime": nil}
	update := bson.M{
		"$set": bson.M{
			"exitTime": exitTS,
			"duration": durationMin,
		},
	}

	var entry domain.GymEntry
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&entry)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// ListByUser returns all of a user's entries, newest first.
func (r *mongoEntryRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.GymEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "entryTime", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []domain.GymEntry
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// EnsureEntryIndexes creates necessary indexes for the gymentries collection.
// The partial unique index is what enforces the one-open-session-per-user
// invariant; the client-side scan cooldown is only a debounce.
func EnsureEntryIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"exitTime": bson.M{"$type": "null"}}),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "entryTime", Value: -1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
