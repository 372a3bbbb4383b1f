package domain

// Gym is a reference-data record for one gym location. Gyms are keyed by a
// small numeric id because that id is what gets printed in the QR code at the
// gym entrance.
type Gym struct {
	GymID   int    `bson:"gymId" json:"id"`
	Name    string `bson:"name" json:"name"`
	Address string `bson:"address" json:"address"`
	Price   int    `bson:"price" json:"price"` // Monthly membership price
}
