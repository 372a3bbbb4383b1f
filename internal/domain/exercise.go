package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Difficulty tiers of the reference exercise catalog. They double as the
// experience tiers used to select exercise pools during program generation.
const (
	DifficultyBeginner     = "Beginner"
	DifficultyIntermediate = "Intermediate"
	DifficultyAdvanced     = "Advanced"
)

// Exercise is one entry of the reference exercise catalog. The catalog is
// read-only at runtime; it is written only by the offline seeder.
type Exercise struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Area          string             `bson:"area" json:"area"` // e.g. "Chest", "Cardio"
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Instructions  []string           `bson:"instructions,omitempty" json:"instructions,omitempty"`
	TargetMuscles []string           `bson:"targetMuscles,omitempty" json:"targetMuscles,omitempty"`
	Equipment     string             `bson:"equipment,omitempty" json:"equipment,omitempty"`
	Difficulty    string             `bson:"difficulty" json:"difficulty"`
	ImageKey      string             `bson:"imageKey,omitempty" json:"-"` // S3 object key
}
