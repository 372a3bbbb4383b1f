package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProgramExercise is a single prescribed exercise within a workout day.
// Reps and RIR are kept as free-form range strings ("8-12", "2-3") because
// that is how both the generator and coaches express them.
type ProgramExercise struct {
	Name string `bson:"name" json:"name"`
	Sets int    `bson:"sets" json:"sets"`
	Reps string `bson:"reps" json:"reps"`
	RIR  string `bson:"rir" json:"rir"` // Target intensity: reps in reserve
}

// WorkoutDay is one labelled day of a program with its ordered exercises.
type WorkoutDay struct {
	Day       string            `bson:"day" json:"day"`
	Exercises []ProgramExercise `bson:"exercises" json:"exercises"`
}

// ProgramUserInfo is a snapshot of the inputs a program was generated from.
type ProgramUserInfo struct {
	Gender      string `bson:"gender" json:"gender"`
	Experience  string `bson:"experience" json:"experience"`
	Goal        string `bson:"goal" json:"goal"`
	WorkoutDays int    `bson:"workoutDays" json:"workout_days"`
}

// WorkoutProgram is a named, dated workout schedule. Programs are immutable
// once created except for coach-driven edits to a member's current program.
type WorkoutProgram struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Name        string             `bson:"name" json:"name"`
	CreatedDate FlexTime           `bson:"createdDate" json:"createdDate"`
	Program     []WorkoutDay       `bson:"program" json:"program"`
	UserInfo    ProgramUserInfo    `bson:"userInfo" json:"userInfo"`
}
