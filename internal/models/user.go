package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"` // Hide from JSON responses
	Image    string             `bson:"image" json:"image"`
	Phone    string             `bson:"phone" json:"phone"`
	Address  Address            `bson:"address" json:"address"`
	Gender   string             `bson:"gender" json:"gender"`
	DOB      string             `bson:"dob" json:"dob"`
	Date     int64              `bson:"date" json:"date"` // unix millis at registration
}
