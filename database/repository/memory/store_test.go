package memoryRepo

import (
	"context"
	"testing"

	"clinicbook/apperrors"
	"clinicbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReserveAndReleaseSlot(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	doctors := store.Doctors()

	d := &models.Doctor{Name: "Dr. A", Email: "a@clinic.test", Available: true}
	require.NoError(t, doctors.Create(ctx, d))
	require.NotEmpty(t, d.ID)

	require.NoError(t, doctors.ReserveSlot(ctx, d.ID, "15_3_2025", "10:30 AM"))
	err := doctors.ReserveSlot(ctx, d.ID, "15_3_2025", "10:30 AM")
	assert.True(t, apperrors.Is(err, apperrors.KindSlotUnavailable))

	require.NoError(t, doctors.ReserveSlot(ctx, d.ID, "15_3_2025", "11:00 AM"))
	got, err := doctors.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"10:30 AM", "11:00 AM"}, got.SlotsBooked["15_3_2025"])

	require.NoError(t, doctors.ReleaseSlot(ctx, d.ID, "15_3_2025", "10:30 AM"))
	require.NoError(t, doctors.ReleaseSlot(ctx, d.ID, "15_3_2025", "10:30 AM"))
	got, err = doctors.GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"11:00 AM"}, got.SlotsBooked["15_3_2025"])

	err = doctors.ReserveSlot(ctx, "missing", "15_3_2025", "10:30 AM")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	require.NoError(t, doctors.SetAvailability(ctx, d.ID, false))
	err = doctors.ReserveSlot(ctx, d.ID, "16_3_2025", "10:30 AM")
	assert.True(t, apperrors.Is(err, apperrors.KindDoctorUnavailable))
}

func TestGetByIDReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	d := &models.Doctor{Name: "Dr. A", Email: "a@clinic.test", Available: true}
	require.NoError(t, store.Doctors().Create(ctx, d))

	got, err := store.Doctors().GetByID(ctx, d.ID)
	require.NoError(t, err)
	got.SlotsBooked["1_1_2025"] = []string{"09:00 AM"}

	again, err := store.Doctors().GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, again.SlotsBooked["1_1_2025"])
}

func TestActiveSlotUniqueness(t *testing.T) {
	ctx := context.Background()
	appts := NewStore().Appointments()

	first := &models.Appointment{UserID: "u1", DocID: "d1", SlotDate: "15_3_2025", SlotTime: "10:30 AM", Date: 1}
	require.NoError(t, appts.Create(ctx, first))

	dup := &models.Appointment{UserID: "u2", DocID: "d1", SlotDate: "15_3_2025", SlotTime: "10:30 AM", Date: 2}
	assert.True(t, apperrors.Is(appts.Create(ctx, dup), apperrors.KindSlotUnavailable))

	changed, err := appts.MarkCancelled(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = appts.MarkCancelled(ctx, first.ID)
	require.NoError(t, err)
	assert.False(t, changed)

	require.NoError(t, appts.Create(ctx, dup))

	all, err := appts.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, dup.ID, all[0].ID)
}

func TestFlagTransitions(t *testing.T) {
	ctx := context.Background()
	appts := NewStore().Appointments()

	a := &models.Appointment{UserID: "u1", DocID: "d1", SlotDate: "15_3_2025", SlotTime: "10:30 AM"}
	require.NoError(t, appts.Create(ctx, a))

	changed, err := appts.MarkCompleted(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	changed, err = appts.MarkCancelled(ctx, a.ID)
	require.NoError(t, err)
	assert.False(t, changed, "completed appointments cannot be cancelled")

	changed, err = appts.MarkPaid(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	got, err := appts.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.IsCompleted)
	assert.True(t, got.Payment)
	assert.False(t, got.Cancelled)

	_, err = appts.GetByID(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUserEmailLookup(t *testing.T) {
	ctx := context.Background()
	users := NewStore().Users()

	u := &models.User{Name: "Ann", Email: "ann@mail.test"}
	require.NoError(t, users.Create(ctx, u))

	got, err := users.GetByEmail(ctx, "ann@mail.test")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)

	missing, err := users.GetByEmail(ctx, "nobody@mail.test")
	require.NoError(t, err)
	assert.Nil(t, missing)

	assert.Error(t, users.Create(ctx, &models.User{Name: "Ann 2", Email: "ann@mail.test"}))

	n, err := users.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestReleaseUnknownDateLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	doctors := NewStore().Doctors()
	d := &models.Doctor{Name: "Dr. A", Email: "a@clinic.test", Available: true}
	require.NoError(t, doctors.Create(ctx, d))

	require.NoError(t, doctors.ReleaseSlot(ctx, d.ID, "2_2_2025", "09:00 AM"))

	got, err := doctors.GetByID(ctx, d.ID)
	require.NoError(t, err)
	_, present := got.SlotsBooked["2_2_2025"]
	assert.False(t, present)
	assert.Empty(t, got.SlotsBooked)
}

func TestCompletedAppointmentStillHoldsSlot(t *testing.T) {
	ctx := context.Background()
	appts := NewStore().Appointments()

	a := &models.Appointment{UserID: "u1", DocID: "d1", SlotDate: "15_3_2025", SlotTime: "10:30 AM"}
	require.NoError(t, appts.Create(ctx, a))
	_, err := appts.MarkCompleted(ctx, a.ID)
	require.NoError(t, err)

	holder, err := appts.FindActiveBySlot(ctx, "d1", "15_3_2025", "10:30 AM")
	require.NoError(t, err)
	require.NotNil(t, holder)
	assert.Equal(t, a.ID, holder.ID)

	dup := &models.Appointment{UserID: "u2", DocID: "d1", SlotDate: "15_3_2025", SlotTime: "10:30 AM"}
	assert.True(t, apperrors.Is(appts.Create(ctx, dup), apperrors.KindSlotUnavailable))
}
