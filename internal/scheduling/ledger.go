package scheduling

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/apperr"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
)

// Reserve books the (date, slot) pair on a doctor. The underlying update only
// matches when the slot is still free, so concurrent reservations of the same
// pair produce exactly one success.
func (s *Service) Reserve(ctx context.Context, doctorID primitive.ObjectID, date, slot string) error {
	ok, err := s.stores.Doctors.AddSlot(ctx, doctorID, date, slot)
	if err != nil {
		return apperr.Persistence(err)
	}
	if ok {
		return nil
	}

	// The conditional update failed: either the doctor is gone or the slot
	// is taken. One lookup tells them apart.
	if _, err := s.stores.Doctors.FindByID(ctx, doctorID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrDoctorNotFound
		}
		return apperr.Persistence(err)
	}
	return ErrSlotTaken
}

// Release frees the (date, slot) pair. Releasing a slot that is not booked is
// a no-op, which keeps retries after partial failures safe. The date key is
// retained even when its set empties.
func (s *Service) Release(ctx context.Context, doctorID primitive.ObjectID, date, slot string) error {
	ok, err := s.stores.Doctors.RemoveSlot(ctx, doctorID, date, slot)
	if err != nil {
		return apperr.Persistence(err)
	}
	if !ok {
		return ErrDoctorNotFound
	}
	return nil
}
