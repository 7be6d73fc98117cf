package scheduling_test

import (
	"context"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/imanrao90/doctor-appointment-backend/internal/models"
	"github.com/imanrao90/doctor-appointment-backend/internal/scheduling"
	"github.com/imanrao90/doctor-appointment-backend/internal/store"
)

func newService(t *testing.T) (*scheduling.Service, *store.Stores) {
	t.Helper()
	stores := store.NewMemory()
	return scheduling.New(stores, zerolog.Nop()), stores
}

func seedDoctor(t *testing.T, stores *store.Stores, slots map[string][]string) primitive.ObjectID {
	t.Helper()
	id, err := stores.Doctors.Insert(context.Background(), &models.Doctor{
		Name:        "Dr. Test",
		Email:       "dr@test.com",
		Speciality:  "General physician",
		Available:   true,
		Fees:        50,
		SlotsBooked: slots,
	})
	require.NoError(t, err)
	return id
}

func seedUser(t *testing.T, stores *store.Stores) primitive.ObjectID {
	t.Helper()
	id, err := stores.Users.Insert(context.Background(), &models.User{
		Name:  "Pat",
		Email: "pat@test.com",
	})
	require.NoError(t, err)
	return id
}

func TestReserveAddsSlot(t *testing.T) {
	svc, stores := newService(t)
	docID := seedDoctor(t, stores, map[string][]string{"2024-05-01": {"10:00"}})

	err := svc.Reserve(context.Background(), docID, "2024-05-01", "10:30")
	require.NoError(t, err)

	d, err := stores.Doctors.FindByID(context.Background(), docID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"10:00", "10:30"}, d.SlotsBooked["2024-05-01"])
}

func TestReserveTakenSlot(t *testing.T) {
	svc, stores := newService(t)
	docID := seedDoctor(t, stores, map[string][]string{"2024-05-01": {"10:00"}})

	err := svc.Reserve(context.Background(), docID, "2024-05-01", "10:00")
	assert.ErrorIs(t, err, scheduling.ErrSlotTaken)

	d, _ := stores.Doctors.FindByID(context.Background(), docID)
	assert.Equal(t, []string{"10:00"}, d.SlotsBooked["2024-05-01"])
}

func TestReserveUnknownDoctor(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Reserve(context.Background(), primitive.NewObjectID(), "2024-05-01", "10:00")
	assert.ErrorIs(t, err, scheduling.ErrDoctorNotFound)
}

func TestReserveNewDate(t *testing.T) {
	svc, stores := newService(t)
	docID := seedDoctor(t, stores, nil)

	require.NoError(t, svc.Reserve(context.Background(), docID, "2024-06-10", "09:00"))

	d, _ := stores.Doctors.FindByID(context.Background(), docID)
	assert.Equal(t, []string{"09:00"}, d.SlotsBooked["2024-06-10"])
}

func TestReleaseIdempotent(t *testing.T) {
	svc, stores := newService(t)
	docID := seedDoctor(t, stores, map[string][]string{"2024-05-01": {"10:00", "10:30"}})

	ctx := context.Background()
	require.NoError(t, svc.Release(ctx, docID, "2024-05-01", "10:00"))
	d, _ := stores.Doctors.FindByID(ctx, docID)
	assert.Equal(t, []string{"10:30"}, d.SlotsBooked["2024-05-01"])

	// Second release of the same slot changes nothing.
	require.NoError(t, svc.Release(ctx, docID, "2024-05-01", "10:00"))
	d, _ = stores.Doctors.FindByID(ctx, docID)
	assert.Equal(t, []string{"10:30"}, d.SlotsBooked["2024-05-01"])

	// Releasing on a date with no entry is also a no-op.
	require.NoError(t, svc.Release(ctx, docID, "2099-01-01", "08:00"))
}

func TestReleaseKeepsDateKey(t *testing.T) {
	svc, stores := newService(t)
	docID := seedDoctor(t, stores, map[string][]string{"2024-05-01": {"10:00"}})

	require.NoError(t, svc.Release(context.Background(), docID, "2024-05-01", "10:00"))

	d, _ := stores.Doctors.FindByID(context.Background(), docID)
	set, ok := d.SlotsBooked["2024-05-01"]
	assert.True(t, ok, "date key should survive emptying")
	assert.Empty(t, set)
}

func TestReleaseUnknownDoctor(t *testing.T) {
	svc, _ := newService(t)

	err := svc.Release(context.Background(), primitive.NewObjectID(), "2024-05-01", "10:00")
	assert.ErrorIs(t, err, scheduling.ErrDoctorNotFound)
}

func TestConcurrentReserveSingleWinner(t *testing.T) {
	svc, stores := newService(t)
	docID := seedDoctor(t, stores, nil)

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.Reserve(context.Background(), docID, "2024-05-01", "10:00")
		}(i)
	}
	wg.Wait()

	var successes, taken int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case err == scheduling.ErrSlotTaken:
			taken++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, callers-1, taken)

	d, _ := stores.Doctors.FindByID(context.Background(), docID)
	assert.Equal(t, []string{"10:00"}, d.SlotsBooked["2024-05-01"])
}

func TestNoDuplicateSlotLabels(t *testing.T) {
	svc, stores := newService(t)
	docID := seedDoctor(t, stores, nil)

	ctx := context.Background()
	slots := []string{"09:00", "09:30", "10:00", "09:00", "09:30", "10:00"}
	for _, s := range slots {
		_ = svc.Reserve(ctx, docID, "2024-05-01", s)
	}

	d, _ := stores.Doctors.FindByID(ctx, docID)
	seen := map[string]bool{}
	for _, s := range d.SlotsBooked["2024-05-01"] {
		assert.False(t, seen[s], "duplicate slot label %q", s)
		seen[s] = true
	}
	assert.Len(t, d.SlotsBooked["2024-05-01"], 3)
}
