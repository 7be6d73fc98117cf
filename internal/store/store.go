// Package store is the persistence gateway: per-collection interfaces over an
// opaque document store, with a MongoDB implementation and an in-memory one
// for tests. The conditional mutators (AddSlot, RemoveSlot, MarkCancelled,
// MarkCompleted) fold the check and the write into a single operation so
// concurrent callers cannot interleave a read-modify-write.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/models"
)

// ErrNotFound is returned by lookups when the id or filter resolves nothing.
var ErrNotFound = errors.New("store: not found")

type DoctorStore interface {
	Insert(ctx context.Context, d *models.Doctor) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*models.Doctor, error)
	List(ctx context.Context) ([]models.Doctor, error)

	// SetAvailability flips the available flag. Reports false when the id
	// does not resolve.
	SetAvailability(ctx context.Context, id primitive.ObjectID, available bool) (bool, error)

	// AddSlot inserts slot into the doctor's booked set for date as one
	// conditional update. Reports false when the doctor is missing or the
	// slot is already present; the caller disambiguates with FindByID.
	AddSlot(ctx context.Context, id primitive.ObjectID, date, slot string) (bool, error)

	// RemoveSlot pulls slot from the doctor's booked set for date. Removing
	// an absent slot is a no-op; the date key is kept even when its set
	// empties. Reports false when the doctor is missing.
	RemoveSlot(ctx context.Context, id primitive.ObjectID, date, slot string) (bool, error)
}

type AppointmentStore interface {
	Insert(ctx context.Context, a *models.Appointment) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Appointment, error)

	// List returns all appointments in storage-return (insertion) order.
	List(ctx context.Context) ([]models.Appointment, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, docID primitive.ObjectID) ([]models.Appointment, error)

	// MarkCancelled flips cancelled false→true as one conditional update.
	// Reports false when the appointment is missing or already cancelled.
	MarkCancelled(ctx context.Context, id primitive.ObjectID) (bool, error)

	// MarkCompleted flips isCompleted false→true, guarded on the
	// appointment not being cancelled. Reports false otherwise.
	MarkCompleted(ctx context.Context, id primitive.ObjectID) (bool, error)
}

type UserStore interface {
	Insert(ctx context.Context, u *models.User) (primitive.ObjectID, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}

// Stores bundles the three collections behind the gateway.
type Stores struct {
	Doctors      DoctorStore
	Appointments AppointmentStore
	Users        UserStore
}
