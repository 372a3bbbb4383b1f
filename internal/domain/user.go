package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between account types.
type Role string

const (
	RoleUser  Role = "user"
	RoleCoach Role = "coach"
	RoleAdmin Role = "admin"
)

// User represents an account in the system: a regular gym member, a coach
// with a trainee roster, or an admin.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	DisplayName  string             `bson:"displayName" json:"displayName"`
	Email        string             `bson:"email" json:"email"`    // Unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose via JSON
	Role         Role               `bson:"role" json:"role"`
	PhotoKey     string             `bson:"photoKey,omitempty" json:"-"` // S3 object key for profile photo
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`

	// --- Onboarding profile ---
	Weight             float64  `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height             float64  `bson:"height,omitempty" json:"height,omitempty"` // cm
	Sex                string   `bson:"sex,omitempty" json:"sex,omitempty"`
	DateOfBirth        string   `bson:"dateOfBirth,omitempty" json:"dateOfBirth,omitempty"`
	FitnessGoals       []string `bson:"fitnessGoals,omitempty" json:"fitnessGoals,omitempty"`
	Difficulty         string   `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	OnboardingComplete bool     `bson:"onBoardingComplete" json:"onBoardingComplete"`

	// Gym is the numeric id of the member's registered gym; nil until the
	// member picks a membership. Check-in scans are validated against it.
	Gym *int `bson:"gym" json:"gym"`

	// --- Coach-specific ---
	// ObjectIDs of members this coach trains.
	Trainees []primitive.ObjectID `bson:"trainees,omitempty" json:"trainees,omitempty"`

	// CurrentProgramID points at the member's active WorkoutProgram document.
	CurrentProgramID *primitive.ObjectID `bson:"currentProgramId,omitempty" json:"currentProgramId,omitempty"`
}

func (u *User) IsCoach() bool {
	return u.Role == RoleCoach
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasTrainee reports whether id is on the coach's roster.
func (u *User) HasTrainee(id primitive.ObjectID) bool {
	for _, t := range u.Trainees {
		if t == id {
			return true
		}
	}
	return false
}
