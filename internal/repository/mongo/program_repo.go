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

const programCollectionName = "programs"

type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a repository over WorkoutProgram
// documents.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program document.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.WorkoutProgram) (primitive.ObjectID, error) {
	if program.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("program user ID is required")
	}
	if len(program.Program) == 0 {
		return primitive.NilObjectID, errors.New("program must have at least one day")
	}

	program.ID = primitive.NewObjectID()
	if _, err := r.collection.InsertOne(ctx, program); err != nil {
		return primitive.NilObjectID, err
	}
	return program.ID, nil
}

// GetByID retrieves a single program document.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutProgram, error) {
	var program domain.WorkoutProgram
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// ListByUser returns the user's program history, newest first.
func (r *mongoProgramRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutProgram, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdDate", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var programs []domain.WorkoutProgram
	if err = cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// ReplaceDays swaps the day list of an existing program. Coach-driven edits
// to a trainee's current program go through here.
func (r *mongoProgramRepository) ReplaceDays(ctx context.Context, id primitive.ObjectID, days []domain.WorkoutDay) error {
	update := bson.M{"$set": bson.M{"program": days}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes for the programs collection.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdDate", Value: -1}},
	})
	return err
}
