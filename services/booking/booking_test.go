package booking

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"clinicbook/apperrors"
	memoryRepo "clinicbook/database/repository/memory"
	"clinicbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCache struct {
	calls int32
}

func (c *countingCache) InvalidateList(context.Context) {
	atomic.AddInt32(&c.calls, 1)
}

type failingAppointments struct {
	*memoryRepo.AppointmentRepo
	err error
}

func (f *failingAppointments) Create(context.Context, *models.Appointment) error {
	return f.err
}

// flakyRelease fails the next `failures` ReleaseSlot calls.
type flakyRelease struct {
	*memoryRepo.DoctorRepo
	failures int
}

func (f *flakyRelease) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	if f.failures > 0 {
		f.failures--
		return apperrors.Persistence("release slot", errors.New("connection reset"))
	}
	return f.DoctorRepo.ReleaseSlot(ctx, doctorID, date, slotTime)
}

type fixture struct {
	store   *memoryRepo.Store
	svc     *DefaultBookingService
	cache   *countingCache
	doctor  *models.Doctor
	patient *models.User
	other   *models.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memoryRepo.NewStore()

	doctor := &models.Doctor{Name: "Dr. X", Email: "x@clinic.test", Speciality: "General physician", Fees: 500, Available: true}
	require.NoError(t, store.Doctors().Create(ctx, doctor))

	patient := &models.User{Name: "P1", Email: "p1@mail.test", Phone: "0700000001"}
	require.NoError(t, store.Users().Create(ctx, patient))
	other := &models.User{Name: "P2", Email: "p2@mail.test"}
	require.NoError(t, store.Users().Create(ctx, other))

	cache := &countingCache{}
	svc := NewBookingService(store.Doctors(), store.Users(), store.Appointments(), cache)
	return &fixture{store: store, svc: svc, cache: cache, doctor: doctor, patient: patient, other: other}
}

func (f *fixture) ledger(t *testing.T) models.SlotLedger {
	t.Helper()
	d, err := f.store.Doctors().GetByID(context.Background(), f.doctor.ID)
	require.NoError(t, err)
	return d.SlotsBooked
}

func TestBookCancelExample(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)
	assert.Equal(t, 500.0, appt.Amount)
	assert.False(t, appt.Cancelled)
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])
	assert.Equal(t, "P1", appt.UserData.Name)
	assert.Equal(t, "Dr. X", appt.DocData.Name)

	_, err = f.svc.Book(ctx, f.other.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindSlotUnavailable))
	assert.Equal(t, "Slot Not Available", apperrors.Message(err))

	cancelled, err := f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), appt.ID)
	require.NoError(t, err)
	assert.True(t, cancelled.Cancelled)
	assert.Empty(t, f.ledger(t)["2024-05-01"])
}

func TestBookValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		date     string
		slotTime string
	}{
		{"missing date", "", "10:00"},
		{"missing time", "2024-05-01", ""},
		{"bad date", "May 1st", "10:00"},
		{"dotted time", "2024-05-01", "10.00"},
		{"dollar time", "2024-05-01", "$set"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, tc.date, tc.slotTime)
			assert.True(t, apperrors.Is(err, apperrors.KindValidation), "got %v", err)
		})
	}
	assert.Empty(t, f.ledger(t))
}

func TestBookAcceptsUnderscoreDates(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Book(context.Background(), f.patient.ID, f.doctor.ID, "1_5_2024", "10:00 AM")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 AM"}, f.ledger(t)["1_5_2024"])
}

func TestBookUnknownParties(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, f.patient.ID, "missing", "2024-05-01", "10:00")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = f.svc.Book(ctx, "missing", f.doctor.ID, "2024-05-01", "10:00")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Empty(t, f.ledger(t)["2024-05-01"])
}

func TestBookUnavailableDoctor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Doctors().SetAvailability(ctx, f.doctor.ID, false))

	_, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	assert.True(t, apperrors.Is(err, apperrors.KindDoctorUnavailable))
	assert.Equal(t, "Doctor Not Available", apperrors.Message(err))
	assert.Empty(t, f.ledger(t)["2024-05-01"])
}

func TestBookReleasesSlotWhenInsertFails(t *testing.T) {
	f := newFixture(t)
	f.svc.Appointments = &failingAppointments{
		AppointmentRepo: f.store.Appointments(),
		err:             apperrors.Persistence("create appointment", errors.New("connection reset")),
	}

	_, err := f.svc.Book(context.Background(), f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	assert.True(t, apperrors.Is(err, apperrors.KindPersistence))
	assert.Empty(t, f.ledger(t)["2024-05-01"])
}

func TestBookKeepsSlotOnDuplicateInsert(t *testing.T) {
	f := newFixture(t)
	f.svc.Appointments = &failingAppointments{
		AppointmentRepo: f.store.Appointments(),
		err:             apperrors.SlotUnavailable(),
	}

	_, err := f.svc.Book(context.Background(), f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	assert.True(t, apperrors.Is(err, apperrors.KindSlotUnavailable))
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])
}

func TestCancelThenRebook(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), first.ID)
	require.NoError(t, err)

	second, err := f.svc.Book(ctx, f.other.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])

	// A repeated cancel of the old appointment must not free the rebooked slot.
	again, err := f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), first.ID)
	require.NoError(t, err)
	assert.True(t, again.Cancelled)
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])
}

func TestCancelRetryFreesSlotAfterFailedRelease(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	doctors := &flakyRelease{DoctorRepo: f.store.Doctors(), failures: 1}
	f.svc.Doctors = doctors

	appt, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), appt.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindPersistence), "got %v", err)
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])

	stored, err := f.store.Appointments().GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.True(t, stored.Cancelled)

	retried, err := f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), appt.ID)
	require.NoError(t, err)
	assert.True(t, retried.Cancelled)
	assert.Empty(t, f.ledger(t)["2024-05-01"])

	rebooked, err := f.svc.Book(ctx, f.other.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)
	assert.Equal(t, f.other.ID, rebooked.UserID)
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])
}

func TestCancelByNonOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, models.PatientActor(f.other.ID), appt.ID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	assert.Equal(t, "Unauthorized action", apperrors.Message(err))

	_, err = f.svc.Cancel(ctx, models.DoctorActor("someone-else"), appt.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	stored, err := f.store.Appointments().GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.False(t, stored.Cancelled)
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])
}

func TestCancelByDoctorAndAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a1, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)
	a2, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "11:00")
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, models.DoctorActor(f.doctor.ID), a1.ID)
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, models.AdminActor("admin"), a2.ID)
	require.NoError(t, err)
	assert.Empty(t, f.ledger(t)["2024-05-01"])
}

func TestCancelUnknownAppointment(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Cancel(context.Background(), models.PatientActor(f.patient.ID), "nope")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestCompleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		done, err := f.svc.Complete(ctx, models.DoctorActor(f.doctor.ID), appt.ID)
		require.NoError(t, err)
		assert.True(t, done.IsCompleted)
	}

	stored, err := f.store.Appointments().GetByID(ctx, appt.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsCompleted)
	// Completion keeps the ledger entry.
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])
}

func TestCompleteRules(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)

	t.Run("patients cannot complete", func(t *testing.T) {
		_, err := f.svc.Complete(ctx, models.PatientActor(f.patient.ID), appt.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	})

	t.Run("other doctor cannot complete", func(t *testing.T) {
		_, err := f.svc.Complete(ctx, models.DoctorActor("other-doctor"), appt.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
	})

	t.Run("completed cannot be cancelled", func(t *testing.T) {
		_, err := f.svc.Complete(ctx, models.AdminActor("admin"), appt.ID)
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), appt.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})

	t.Run("cancelled cannot be completed", func(t *testing.T) {
		other, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-02", "10:00")
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), other.ID)
		require.NoError(t, err)
		_, err = f.svc.Complete(ctx, models.DoctorActor(f.doctor.ID), other.ID)
		assert.True(t, apperrors.Is(err, apperrors.KindConflict))
	})
}

func TestMarkPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)

	_, err = f.svc.MarkPaid(ctx, f.other.ID, appt.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	paid, err := f.svc.MarkPaid(ctx, f.patient.ID, appt.ID)
	require.NoError(t, err)
	assert.True(t, paid.Payment)

	_, err = f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), appt.ID)
	require.NoError(t, err)
	_, err = f.svc.MarkPaid(ctx, f.patient.ID, appt.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))
}

func TestListsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		appt, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", fmt.Sprintf("1%d:00", i))
		require.NoError(t, err)
		ids = append(ids, appt.ID)
	}

	list, err := f.svc.ListForPatient(ctx, f.patient.ID)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, ids[2], list[0].ID)
	assert.Equal(t, ids[0], list[2].ID)

	byDoctor, err := f.svc.ListForDoctor(ctx, f.doctor.ID)
	require.NoError(t, err)
	assert.Len(t, byDoctor, 3)

	none, err := f.svc.ListForPatient(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookInvalidatesDoctorList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	appt, err := f.svc.Book(ctx, f.patient.ID, f.doctor.ID, "2024-05-01", "10:00")
	require.NoError(t, err)
	_, err = f.svc.Cancel(ctx, models.PatientActor(f.patient.ID), appt.ID)
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&f.cache.calls))
}

func TestConcurrentBookingsOfOneSlot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const n = 20
	patients := make([]string, n)
	for i := range patients {
		u := &models.User{Name: fmt.Sprintf("patient-%d", i), Email: fmt.Sprintf("p%d@race.test", i)}
		require.NoError(t, f.store.Users().Create(ctx, u))
		patients[i] = u.ID
	}

	var (
		wg        sync.WaitGroup
		successes int32
		conflicts int32
	)
	for _, id := range patients {
		wg.Add(1)
		go func(patientID string) {
			defer wg.Done()
			_, err := f.svc.Book(ctx, patientID, f.doctor.ID, "2024-05-01", "10:00")
			switch {
			case err == nil:
				atomic.AddInt32(&successes, 1)
			case apperrors.Is(err, apperrors.KindSlotUnavailable):
				atomic.AddInt32(&conflicts, 1)
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes)
	assert.Equal(t, int32(n-1), conflicts)
	assert.Equal(t, []string{"10:00"}, f.ledger(t)["2024-05-01"])

	all, err := f.svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
