package mongo

import (
	"context"
	"errors"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const gymCollectionName = "gyms"

type mongoGymRepository struct {
	collection *mongo.Collection
}

// NewMongoGymRepository creates a new gym reference-data repository.
func NewMongoGymRepository(db *mongo.Database) repository.GymRepository {
	return &mongoGymRepository{
		collection: db.Collection(gymCollectionName),
	}
}

// List returns all gyms ordered by their numeric id.
func (r *mongoGymRepository) List(ctx context.Context) ([]domain.Gym, error) {
	opts := options.Find().SetSort(bson.D{{Key: "gymId", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var gyms []domain.Gym
	if err = cursor.All(ctx, &gyms); err != nil {
		return nil, err
	}
	return gyms, nil
}

// GetByGymID looks a gym up by its numeric (QR) id.
func (r *mongoGymRepository) GetByGymID(ctx context.Context, gymID int) (*domain.Gym, error) {
	var gym domain.Gym
	err := r.collection.FindOne(ctx, bson.M{"gymId": gymID}).Decode(&gym)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &gym, nil
}

// Upsert writes one gym record, keyed by its numeric id. Used by the seeder.
func (r *mongoGymRepository) Upsert(ctx context.Context, gym *domain.Gym) error {
	filter := bson.M{"gymId": gym.GymID}
	update := bson.M{"$set": gym}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// EnsureGymIndexes creates necessary indexes for the gyms collection.
func EnsureGymIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "gymId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
