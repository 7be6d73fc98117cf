// Package scheduling owns the slot ledger, the appointment lifecycle and the
// reporting reads. All availability state lives in the doctor's slots_booked
// map and is mutated only through Reserve and Release.
package scheduling

import (
	"github.com/rs/zerolog"

	"github.com/imanrao90/doctor-appointment-backend/internal/apperr"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
)

// Typed failures surfaced by the service. Handlers map them to status codes
// through their apperr kind.
var (
	ErrDoctorNotFound      = apperr.NotFound("Doctor not found")
	ErrUserNotFound        = apperr.NotFound("User not found")
	ErrAppointmentNotFound = apperr.NotFound("Appointment not found")
	ErrSlotTaken           = apperr.Conflict("Slot not available")
	ErrAlreadyCancelled    = apperr.Conflict("Appointment already cancelled")
	ErrAlreadyCompleted    = apperr.Conflict("Appointment already completed")
	ErrDoctorUnavailable   = apperr.Conflict("Doctor not available")
	ErrNotOwner            = apperr.Forbidden("Not authorized for this appointment")
)

type Service struct {
	stores *store.Stores
	log    zerolog.Logger
}

func New(stores *store.Stores, log zerolog.Logger) *Service {
	return &Service{stores: stores, log: log}
}
