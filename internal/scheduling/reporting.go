package scheduling

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/apperr"
	"github.com/imanrao90/doctor-appointment-backend/internal/models"
)

// Dashboard is the admin panel summary. LatestAppointments holds the last
// five appointments by reverse storage-return order; that ordering is part of
// the contract, not a timestamp sort.
type Dashboard struct {
	Doctors            int                  `json:"doctors"`
	Appointments       int                  `json:"appointments"`
	Patients           int64                `json:"patients"`
	LatestAppointments []models.Appointment `json:"latestAppointments"`
}

// DoctorDashboard is the per-doctor panel summary.
type DoctorDashboard struct {
	Earnings           float64              `json:"earnings"`
	Appointments       int                  `json:"appointments"`
	Patients           int                  `json:"patients"`
	LatestAppointments []models.Appointment `json:"latestAppointments"`
}

// ListDoctors returns every doctor with the credential redacted.
func (s *Service) ListDoctors(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := s.stores.Doctors.List(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	for i := range doctors {
		doctors[i].Password = ""
	}
	if doctors == nil {
		doctors = []models.Doctor{}
	}
	return doctors, nil
}

// ListAppointments returns every appointment, unfiltered.
func (s *Service) ListAppointments(ctx context.Context) ([]models.Appointment, error) {
	appointments, err := s.stores.Appointments.List(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}

// AppointmentsForUser returns a user's appointments.
func (s *Service) AppointmentsForUser(ctx context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	appointments, err := s.stores.Appointments.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}

// AppointmentsForDoctor returns a doctor's appointments.
func (s *Service) AppointmentsForDoctor(ctx context.Context, docID primitive.ObjectID) ([]models.Appointment, error) {
	appointments, err := s.stores.Appointments.ListByDoctor(ctx, docID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}
	return appointments, nil
}

// Summary aggregates the admin dashboard counts and latest appointments.
func (s *Service) Summary(ctx context.Context) (*Dashboard, error) {
	doctors, err := s.stores.Doctors.List(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	appointments, err := s.stores.Appointments.List(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}
	patients, err := s.stores.Users.Count(ctx)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	return &Dashboard{
		Doctors:            len(doctors),
		Appointments:       len(appointments),
		Patients:           patients,
		LatestAppointments: latest(appointments, 5),
	}, nil
}

// DoctorSummary aggregates one doctor's dashboard. Earnings count completed
// appointments only.
func (s *Service) DoctorSummary(ctx context.Context, docID primitive.ObjectID) (*DoctorDashboard, error) {
	appointments, err := s.stores.Appointments.ListByDoctor(ctx, docID)
	if err != nil {
		return nil, apperr.Persistence(err)
	}

	var earnings float64
	patients := map[primitive.ObjectID]struct{}{}
	for _, a := range appointments {
		if a.IsCompleted {
			earnings += a.Amount
		}
		patients[a.UserID] = struct{}{}
	}

	return &DoctorDashboard{
		Earnings:           earnings,
		Appointments:       len(appointments),
		Patients:           len(patients),
		LatestAppointments: latest(appointments, 5),
	}, nil
}

// latest reverses storage-return order and truncates to n.
func latest(appointments []models.Appointment, n int) []models.Appointment {
	out := make([]models.Appointment, 0, n)
	for i := len(appointments) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, appointments[i])
	}
	return out
}
