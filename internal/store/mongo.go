package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/imanrao90/doctor-appointment-backend/internal/models"
)

// NewMongo wires the gateway over the three collections of db.
func NewMongo(db *mongo.Database) *Stores {
	return &Stores{
		Doctors:      &mongoDoctors{col: db.Collection("doctors")},
		Appointments: &mongoAppointments{col: db.Collection("appointments")},
		Users:        &mongoUsers{col: db.Collection("users")},
	}
}

type mongoDoctors struct {
	col *mongo.Collection
}

func (s *mongoDoctors) Insert(ctx context.Context, d *models.Doctor) (primitive.ObjectID, error) {
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.SlotsBooked == nil {
		d.SlotsBooked = map[string][]string{}
	}
	_, err := s.col.InsertOne(ctx, d)
	return d.ID, err
}

func (s *mongoDoctors) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	var d models.Doctor
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *mongoDoctors) FindByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	var d models.Doctor
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&d)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (s *mongoDoctors) List(ctx context.Context) ([]models.Doctor, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var doctors []models.Doctor
	if err := cursor.All(ctx, &doctors); err != nil {
		return nil, err
	}
	return doctors, nil
}

func (s *mongoDoctors) SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (bool, error) {
	res, err := s.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"available": available}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

// AddSlot matches only when the slot is not yet in the date's set; a missing
// date key satisfies the $ne guard and $addToSet creates the array. One
// document update, so two racing reservations can never both match.
func (s *mongoDoctors) AddSlot(ctx context.Context, id primitive.ObjectID, date, slot string) (bool, error) {
	field := "slots_booked." + date
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, field: bson.M{"$ne": slot}},
		bson.M{"$addToSet": bson.M{field: slot}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount == 1, nil
}

// RemoveSlot pulls the slot label; $pull on an absent value or key is a
// no-op, which makes release idempotent. The emptied array stays under its
// date key.
func (s *mongoDoctors) RemoveSlot(ctx context.Context, id primitive.ObjectID, date, slot string) (bool, error) {
	field := "slots_booked." + date
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$pull": bson.M{field: slot}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

type mongoAppointments struct {
	col *mongo.Collection
}

func (s *mongoAppointments) Insert(ctx context.Context, a *models.Appointment) (primitive.ObjectID, error) {
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, a)
	return a.ID, err
}

func (s *mongoAppointments) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	var a models.Appointment
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *mongoAppointments) List(ctx context.Context) ([]models.Appointment, error) {
	return s.find(ctx, bson.M{})
}

func (s *mongoAppointments) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	return s.find(ctx, bson.M{"userId": userID})
}

func (s *mongoAppointments) ListByDoctor(ctx context.Context, docID primitive.ObjectID) ([]models.Appointment, error) {
	return s.find(ctx, bson.M{"docId": docID})
}

func (s *mongoAppointments) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	cursor, err := s.col.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var appointments []models.Appointment
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, err
	}
	return appointments, nil
}

func (s *mongoAppointments) MarkCancelled(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "cancelled": false},
		bson.M{"$set": bson.M{"cancelled": true}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

func (s *mongoAppointments) MarkCompleted(ctx context.Context, id primitive.ObjectID) (bool, error) {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": id, "cancelled": false, "isCompleted": false},
		bson.M{"$set": bson.M{"isCompleted": true}},
	)
	if err != nil {
		return false, err
	}
	return res.MatchedCount == 1, nil
}

type mongoUsers struct {
	col *mongo.Collection
}

func (s *mongoUsers) Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error) {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	_, err := s.col.InsertOne(ctx, u)
	return u.ID, err
}

func (s *mongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *mongoUsers) Count(ctx context.Context) (int64, error) {
	return s.col.CountDocuments(ctx, bson.M{})
}
