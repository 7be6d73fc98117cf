package store

import (
	"context"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/models"
)

// NewMemory builds an in-process gateway with the same conditional-update
// semantics as the Mongo one. Used by tests; safe for concurrent use.
func NewMemory() *Stores {
	m := &memory{
		doctors: map[primitive.ObjectID]*models.Doctor{},
		users:   map[primitive.ObjectID]*models.User{},
	}
	return &Stores{
		Doctors:      &memDoctors{m},
		Appointments: &memAppointments{m},
		Users:        &memUsers{m},
	}
}

type memory struct {
	mu           sync.Mutex
	doctors      map[primitive.ObjectID]*models.Doctor
	doctorOrder  []primitive.ObjectID
	appointments []*models.Appointment
	users        map[primitive.ObjectID]*models.User
}

func cloneDoctor(d *models.Doctor) models.Doctor {
	out := *d
	out.SlotsBooked = map[string][]string{}
	for k, v := range d.SlotsBooked {
		out.SlotsBooked[k] = slices.Clone(v)
	}
	return out
}

type memDoctors struct{ m *memory }

func (s *memDoctors) Insert(_ context.Context, d *models.Doctor) (primitive.ObjectID, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if d.ID.IsZero() {
		d.ID = primitive.NewObjectID()
	}
	if d.SlotsBooked == nil {
		d.SlotsBooked = map[string][]string{}
	}
	copied := cloneDoctor(d)
	s.m.doctors[d.ID] = &copied
	s.m.doctorOrder = append(s.m.doctorOrder, d.ID)
	return d.ID, nil
}

func (s *memDoctors) FindByID(_ context.Context, id primitive.ObjectID) (*models.Doctor, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	d, ok := s.m.doctors[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneDoctor(d)
	return &out, nil
}

func (s *memDoctors) FindByEmail(_ context.Context, email string) (*models.Doctor, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, id := range s.m.doctorOrder {
		if d := s.m.doctors[id]; d.Email == email {
			out := cloneDoctor(d)
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memDoctors) List(_ context.Context) ([]models.Doctor, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	out := make([]models.Doctor, 0, len(s.m.doctorOrder))
	for _, id := range s.m.doctorOrder {
		out = append(out, cloneDoctor(s.m.doctors[id]))
	}
	return out, nil
}

func (s *memDoctors) SetAvailability(_ context.Context, id primitive.ObjectID, available bool) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	d, ok := s.m.doctors[id]
	if !ok {
		return false, nil
	}
	d.Available = available
	return true, nil
}

func (s *memDoctors) AddSlot(_ context.Context, id primitive.ObjectID, date, slot string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	d, ok := s.m.doctors[id]
	if !ok {
		return false, nil
	}
	if slices.Contains(d.SlotsBooked[date], slot) {
		return false, nil
	}
	d.SlotsBooked[date] = append(d.SlotsBooked[date], slot)
	return true, nil
}

func (s *memDoctors) RemoveSlot(_ context.Context, id primitive.ObjectID, date, slot string) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	d, ok := s.m.doctors[id]
	if !ok {
		return false, nil
	}
	set, ok := d.SlotsBooked[date]
	if !ok {
		return true, nil
	}
	if i := slices.Index(set, slot); i >= 0 {
		// Keep the date key even when the set empties.
		d.SlotsBooked[date] = slices.Delete(set, i, i+1)
	}
	return true, nil
}

type memAppointments struct{ m *memory }

func (s *memAppointments) Insert(_ context.Context, a *models.Appointment) (primitive.ObjectID, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	copied := *a
	s.m.appointments = append(s.m.appointments, &copied)
	return a.ID, nil
}

func (s *memAppointments) FindByID(_ context.Context, id primitive.ObjectID) (*models.Appointment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, a := range s.m.appointments {
		if a.ID == id {
			out := *a
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memAppointments) List(_ context.Context) ([]models.Appointment, error) {
	return s.filter(func(*models.Appointment) bool { return true })
}

func (s *memAppointments) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Appointment, error) {
	return s.filter(func(a *models.Appointment) bool { return a.UserID == userID })
}

func (s *memAppointments) ListByDoctor(_ context.Context, docID primitive.ObjectID) ([]models.Appointment, error) {
	return s.filter(func(a *models.Appointment) bool { return a.DocID == docID })
}

func (s *memAppointments) filter(keep func(*models.Appointment) bool) ([]models.Appointment, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	var out []models.Appointment
	for _, a := range s.m.appointments {
		if keep(a) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *memAppointments) MarkCancelled(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, a := range s.m.appointments {
		if a.ID == id && !a.Cancelled {
			a.Cancelled = true
			return true, nil
		}
	}
	return false, nil
}

func (s *memAppointments) MarkCompleted(_ context.Context, id primitive.ObjectID) (bool, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, a := range s.m.appointments {
		if a.ID == id && !a.Cancelled && !a.IsCompleted {
			a.IsCompleted = true
			return true, nil
		}
	}
	return false, nil
}

type memUsers struct{ m *memory }

func (s *memUsers) Insert(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	copied := *u
	s.m.users[u.ID] = &copied
	return u.ID, nil
}

func (s *memUsers) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	u, ok := s.m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *u
	return &out, nil
}

func (s *memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	for _, u := range s.m.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memUsers) Count(_ context.Context) (int64, error) {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()
	return int64(len(s.m.users)), nil
}
