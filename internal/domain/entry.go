package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GymEntry records one gym visit: created on check-in with no exit time, and
// mutated exactly once on check-out to set ExitTime and Duration. An entry
// with a nil ExitTime is an "open session"; at most one may exist per user at
// any time (enforced by a partial unique index on the collection).
type GymEntry struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	GymID     int                `bson:"gymId" json:"gymId"`
	EntryTime FlexTime           `bson:"entryTime" json:"entryTime"`
	ExitTime  *FlexTime          `bson:"exitTime" json:"exitTime"`
	Duration  *int               `bson:"duration" json:"duration"` // Whole minutes, nil while open
	CreatedAt FlexTime           `bson:"createdAt" json:"createdAt"`
}

// Open reports whether this entry is still an open session.
func (e *GymEntry) Open() bool {
	return e.ExitTime == nil
}

// VisitDuration computes the length of the visit in whole minutes,
// rounded half up. Used at check-out time.
func VisitDuration(entry, exit time.Time) int {
	return int(exit.Sub(entry).Round(time.Minute) / time.Minute)
}
