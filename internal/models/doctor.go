package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Address mirrors the two-line address object submitted by the admin panel.
type Address struct {
	Line1 string `bson:"line1" json:"line1"`
	Line2 string `bson:"line2" json:"line2"`
}

type Doctor struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"` // Hide from JSON responses
	Image      string             `bson:"image" json:"image"`
	Speciality string             `bson:"speciality" json:"speciality"`
	Degree     string             `bson:"degree" json:"degree"`
	Experience string             `bson:"experience" json:"experience"`
	About      string             `bson:"about" json:"about"`
	Fees       float64            `bson:"fees" json:"fees"`
	Address    Address            `bson:"address" json:"address"`
	Available  bool               `bson:"available" json:"available"`
	Date       int64              `bson:"date" json:"date"` // unix millis at onboarding

	// SlotsBooked maps a calendar date key to the time labels already taken
	// on that date. Mutated only through the scheduling ledger; a label
	// appears at most once per date.
	SlotsBooked map[string][]string `bson:"slots_booked" json:"slots_booked"`
}
