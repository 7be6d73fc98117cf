package scheduling

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/apperr"
	"github.com/imanrao90/doctor-appointment-backend/internal/models"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
	"github.com/imanrao90/doctor-appointment-backend/internal/utils"
)

// Book reserves the slot and creates the appointment. The ledger insert goes
// first; if the appointment write then fails, the slot is released again, and
// because Release is idempotent the compensation is safe to retry.
func (s *Service) Book(ctx context.Context, userID, docID primitive.ObjectID, slotDate, slotTime string) (*models.Appointment, error) {
	user, err := s.stores.Users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, apperr.Persistence(err)
	}

	doctor, err := s.stores.Doctors.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrDoctorNotFound
		}
		return nil, apperr.Persistence(err)
	}
	if !doctor.Available {
		return nil, ErrDoctorUnavailable
	}

	if err := s.Reserve(ctx, docID, slotDate, slotTime); err != nil {
		return nil, err
	}

	appointment := &models.Appointment{
		UserID:   userID,
		DocID:    docID,
		SlotDate: slotDate,
		SlotTime: slotTime,
		UserData: models.UserSnapshot{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Image: user.Image,
			DOB:   user.DOB,
		},
		DocData: models.DoctorSnapshot{
			ID:         doctor.ID,
			Name:       doctor.Name,
			Speciality: doctor.Speciality,
			Image:      doctor.Image,
			Fees:       doctor.Fees,
			Address:    doctor.Address,
		},
		Amount: doctor.Fees,
		Date:   time.Now().UnixMilli(),
	}

	if _, err := s.stores.Appointments.Insert(ctx, appointment); err != nil {
		if relErr := s.Release(ctx, docID, slotDate, slotTime); relErr != nil {
			s.log.Error().Err(relErr).
				Str("docId", docID.Hex()).
				Str("slotDate", slotDate).
				Str("slotTime", slotTime).
				Msg("slot release after failed booking insert")
		}
		return nil, apperr.Persistence(err)
	}

	return appointment, nil
}

// Cancel flips the appointment to cancelled and releases its slot. The flag
// flip is a conditional update and acts as the single commit point: only the
// caller that wins it performs the release, so two concurrent cancellations
// yield one success and one ErrAlreadyCancelled.
func (s *Service) Cancel(ctx context.Context, appointmentID primitive.ObjectID) error {
	appointment, err := s.stores.Appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return apperr.Persistence(err)
	}
	return s.cancel(ctx, appointment)
}

// CancelOwned is Cancel restricted to the appointment's own user or doctor.
func (s *Service) CancelOwned(ctx context.Context, appointmentID, principalID primitive.ObjectID, role string) error {
	appointment, err := s.stores.Appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return apperr.Persistence(err)
	}
	switch role {
	case utils.RoleUser:
		if appointment.UserID != principalID {
			return ErrNotOwner
		}
	case utils.RoleDoctor:
		if appointment.DocID != principalID {
			return ErrNotOwner
		}
	default:
		return ErrNotOwner
	}
	return s.cancel(ctx, appointment)
}

func (s *Service) cancel(ctx context.Context, appointment *models.Appointment) error {
	if appointment.Cancelled {
		return ErrAlreadyCancelled
	}

	ok, err := s.stores.Appointments.MarkCancelled(ctx, appointment.ID)
	if err != nil {
		return apperr.Persistence(err)
	}
	if !ok {
		// Lost the race to another cancellation between the read and the
		// conditional update.
		return ErrAlreadyCancelled
	}

	if err := s.Release(ctx, appointment.DocID, appointment.SlotDate, appointment.SlotTime); err != nil {
		// Doctors are never hard-deleted, so a missing doctor here means an
		// out-of-band data repair. The appointment is already cancelled and
		// release is idempotent; log and let the flag stand.
		s.log.Error().Err(err).
			Str("appointmentId", appointment.ID.Hex()).
			Str("docId", appointment.DocID.Hex()).
			Msg("slot release after cancellation")
	}
	return nil
}

// Complete marks a doctor's own appointment as done. Cancelled appointments
// cannot be completed.
func (s *Service) Complete(ctx context.Context, appointmentID, docID primitive.ObjectID) error {
	appointment, err := s.stores.Appointments.FindByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrAppointmentNotFound
		}
		return apperr.Persistence(err)
	}
	if appointment.DocID != docID {
		return ErrNotOwner
	}

	ok, err := s.stores.Appointments.MarkCompleted(ctx, appointmentID)
	if err != nil {
		return apperr.Persistence(err)
	}
	if !ok {
		if appointment.Cancelled {
			return ErrAlreadyCancelled
		}
		return ErrAlreadyCompleted
	}
	return nil
}
