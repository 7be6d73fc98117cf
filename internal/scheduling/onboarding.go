package scheduling

import (
	"context"
	"errors"
	"net/mail"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/apperr"
	"github.com/imanrao90/doctor-appointment-backend/internal/models"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
	"github.com/imanrao90/doctor-appointment-backend/internal/utils"
)

// DoctorProfile is the onboarding input. ImageURL is produced by the image
// collaborator before the service is called.
type DoctorProfile struct {
	Name       string
	Email      string
	Password   string
	Speciality string
	Degree     string
	Experience string
	About      string
	Fees       float64
	Address    models.Address
	ImageURL   string
}

var (
	errMissingDetails = apperr.Validation("Missing Details")
	errBadEmail       = apperr.Validation("Please enter a valid email")
	errWeakPassword   = apperr.Validation("Please enter a strong password (min 8 chars)")
	// ErrDuplicateEmail reports an onboarding conflict on the email address.
	ErrDuplicateEmail = apperr.Conflict("Doctor with this email already exists")
)

// OnboardDoctor validates the profile, hashes the credential and persists a
// new doctor with an empty slot ledger. Onboarding only ever creates new
// records, so it carries no concurrency hazard.
func (s *Service) OnboardDoctor(ctx context.Context, p DoctorProfile) (primitive.ObjectID, error) {
	switch "" {
	case p.Name, p.Email, p.Password, p.Speciality, p.Degree, p.Experience, p.About, p.ImageURL:
		return primitive.NilObjectID, errMissingDetails
	}
	if p.Fees <= 0 || p.Address.Line1 == "" {
		return primitive.NilObjectID, errMissingDetails
	}
	if _, err := mail.ParseAddress(p.Email); err != nil {
		return primitive.NilObjectID, errBadEmail
	}
	if len(p.Password) < 8 {
		return primitive.NilObjectID, errWeakPassword
	}

	if _, err := s.stores.Doctors.FindByEmail(ctx, p.Email); err == nil {
		return primitive.NilObjectID, ErrDuplicateEmail
	} else if !errors.Is(err, store.ErrNotFound) {
		return primitive.NilObjectID, apperr.Persistence(err)
	}

	hashed, err := utils.HashPassword(p.Password)
	if err != nil {
		return primitive.NilObjectID, apperr.Wrap(apperr.KindUnknown, "Failed to hash password", err)
	}

	doctor := &models.Doctor{
		Name:        p.Name,
		Email:       p.Email,
		Password:    hashed,
		Image:       p.ImageURL,
		Speciality:  p.Speciality,
		Degree:      p.Degree,
		Experience:  p.Experience,
		About:       p.About,
		Fees:        p.Fees,
		Address:     p.Address,
		Available:   true,
		Date:        time.Now().UnixMilli(),
		SlotsBooked: map[string][]string{},
	}

	id, err := s.stores.Doctors.Insert(ctx, doctor)
	if err != nil {
		return primitive.NilObjectID, apperr.Persistence(err)
	}
	s.log.Info().Str("docId", id.Hex()).Str("speciality", p.Speciality).Msg("doctor onboarded")
	return id, nil
}

// ToggleAvailability flips the doctor's available flag.
func (s *Service) ToggleAvailability(ctx context.Context, docID primitive.ObjectID) (bool, error) {
	doctor, err := s.stores.Doctors.FindByID(ctx, docID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, ErrDoctorNotFound
		}
		return false, apperr.Persistence(err)
	}

	next := !doctor.Available
	ok, err := s.stores.Doctors.SetAvailability(ctx, docID, next)
	if err != nil {
		return false, apperr.Persistence(err)
	}
	if !ok {
		return false, ErrDoctorNotFound
	}
	return next, nil
}
