package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// UserSnapshot and DoctorSnapshot are denormalized display copies embedded in
// an appointment at booking time, so listings render without extra lookups.
type UserSnapshot struct {
	ID    primitive.ObjectID `bson:"_id" json:"_id"`
	Name  string             `bson:"name" json:"name"`
	Email string             `bson:"email" json:"email"`
	Image string             `bson:"image" json:"image"`
	DOB   string             `bson:"dob,omitempty" json:"dob,omitempty"`
}

type DoctorSnapshot struct {
	ID         primitive.ObjectID `bson:"_id" json:"_id"`
	Name       string             `bson:"name" json:"name"`
	Speciality string             `bson:"speciality" json:"speciality"`
	Image      string             `bson:"image" json:"image"`
	Fees       float64            `bson:"fees" json:"fees"`
	Address    Address            `bson:"address" json:"address"`
}

type Appointment struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID primitive.ObjectID `bson:"userId" json:"userId"`
	DocID  primitive.ObjectID `bson:"docId" json:"docId"`

	// SlotDate/SlotTime are a denormalized copy of the ledger entry this
	// appointment consumed. The doctor's slots_booked map stays the source
	// of truth for availability.
	SlotDate string `bson:"slotDate" json:"slotDate"`
	SlotTime string `bson:"slotTime" json:"slotTime"`

	UserData UserSnapshot   `bson:"userData" json:"userData"`
	DocData  DoctorSnapshot `bson:"docData" json:"docData"`
	Amount   float64        `bson:"amount" json:"amount"`

	Date        int64 `bson:"date" json:"date"` // unix millis at booking
	Cancelled   bool  `bson:"cancelled" json:"cancelled"`
	IsCompleted bool  `bson:"isCompleted" json:"isCompleted"`
}
