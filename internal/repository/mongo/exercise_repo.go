package mongo

import (
	"context"
	"errors"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const exerciseCollectionName = "exercises"

type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a repository over the reference
// exercise catalog.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

func (r *mongoExerciseRepository) find(ctx context.Context, filter bson.M) ([]domain.Exercise, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// List returns the full catalog, sorted by name.
func (r *mongoExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{})
}

// ListByArea returns catalog entries for one target area.
func (r *mongoExerciseRepository) ListByArea(ctx context.Context, area string) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"area": area})
}

// ListByDifficulty returns catalog entries of one difficulty tier. Program
// generation uses this to build per-tier exercise pools.
func (r *mongoExerciseRepository) ListByDifficulty(ctx context.Context, difficulty string) ([]domain.Exercise, error) {
	return r.find(ctx, bson.M{"difficulty": difficulty})
}

// GetByID retrieves a single catalog entry.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &exercise, nil
}

// Upsert writes one catalog entry keyed by name. Used by the seeder.
func (r *mongoExerciseRepository) Upsert(ctx context.Context, exercise *domain.Exercise) error {
	filter := bson.M{"name": exercise.Name}
	update := bson.M{"$set": bson.M{
		"name":          exercise.Name,
		"area":          exercise.Area,
		"description":   exercise.Description,
		"instructions":  exercise.Instructions,
		"targetMuscles": exercise.TargetMuscles,
		"equipment":     exercise.Equipment,
		"difficulty":    exercise.Difficulty,
		"imageKey":      exercise.ImageKey,
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "area", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "difficulty", Value: 1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
