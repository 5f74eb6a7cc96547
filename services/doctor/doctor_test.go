package doctor

import (
	"context"
	"strings"
	"testing"

	"clinicbook/apperrors"
	memoryRepo "clinicbook/database/repository/memory"
	"clinicbook/models"
	"clinicbook/services/booking"
	userService "clinicbook/services/user"
	"clinicbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type setup struct {
	store   *memoryRepo.Store
	doctors *DefaultDoctorService
	admin   *DefaultAdminService
	booking *booking.DefaultBookingService
}

func newSetup(t *testing.T) *setup {
	t.Helper()
	store := memoryRepo.NewStore()
	// A nil Redis client keeps the cache disabled.
	cache := NewListCache(nil, 0)
	return &setup{
		store:   store,
		doctors: NewDoctorService(store.Doctors(), store.Appointments(), cache),
		admin:   NewAdminService(store.Doctors(), store.Users(), store.Appointments(), nil, cache, "admin@clinic.test", "admin-pass"),
		booking: booking.NewBookingService(store.Doctors(), store.Users(), store.Appointments(), cache),
	}
}

func validDoctor() AddDoctorRequest {
	return AddDoctorRequest{
		Name: "Dr. Mehta", Email: "mehta@clinic.test", Password: "doctorpass",
		Speciality: "Neurologist", Degree: "MBBS", Experience: "4 Years",
		About: "Neurology", Fees: 800, Address: models.Address{Line1: "Ward 3"},
	}
}

func TestAdminLogin(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()

	token, err := s.admin.Login(ctx, "Admin@Clinic.test", "admin-pass")
	require.NoError(t, err)
	claims, err := utils.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleAdmin), claims.Role)

	_, err = s.admin.Login(ctx, "admin@clinic.test", "wrong")
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	s.admin.AdminPassword = ""
	_, err = s.admin.Login(ctx, "admin@clinic.test", "")
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestAddDoctorAndLogin(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()

	d, err := s.admin.AddDoctor(ctx, validDoctor(), nil)
	require.NoError(t, err)
	assert.True(t, d.Available)
	assert.Empty(t, d.PasswordHash)

	stored, err := s.store.Doctors().GetByID(ctx, d.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.SlotsBooked)
	assert.NotEqual(t, "doctorpass", stored.PasswordHash)

	_, err = s.admin.AddDoctor(ctx, validDoctor(), nil)
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	resp, err := s.doctors.Login(ctx, "mehta@clinic.test", "doctorpass")
	require.NoError(t, err)
	claims, err := utils.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, string(models.RoleDoctor), claims.Role)
	assert.Equal(t, d.ID, claims.Subject)

	_, err = s.doctors.Login(ctx, "mehta@clinic.test", "nope")
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestAddDoctorValidation(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()

	missing := validDoctor()
	missing.Speciality = ""
	_, err := s.admin.AddDoctor(ctx, missing, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	badEmail := validDoctor()
	badEmail.Email = "mehta"
	_, err = s.admin.AddDoctor(ctx, badEmail, nil)
	require.Error(t, err)
	assert.Equal(t, "Please enter a valid email", apperrors.Message(err))

	weak := validDoctor()
	weak.Password = "123"
	_, err = s.admin.AddDoctor(ctx, weak, &userService.ImageInput{File: strings.NewReader("x"), Filename: "a.png"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
}

func TestChangeAvailabilityAndPublicList(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()

	d, err := s.admin.AddDoctor(ctx, validDoctor(), nil)
	require.NoError(t, err)

	available, err := s.doctors.ChangeAvailability(ctx, d.ID)
	require.NoError(t, err)
	assert.False(t, available)

	list, err := s.doctors.ListPublic(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.False(t, list[0].Available)
	assert.Empty(t, list[0].Email)
	assert.Empty(t, list[0].PasswordHash)

	_, err = s.doctors.ChangeAvailability(ctx, "missing")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestUpdateProfileKeepsLedger(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()

	d, err := s.admin.AddDoctor(ctx, validDoctor(), nil)
	require.NoError(t, err)
	patient := &models.User{Name: "P", Email: "p@mail.test"}
	require.NoError(t, s.store.Users().Create(ctx, patient))
	_, err = s.booking.Book(ctx, patient.ID, d.ID, "2024-05-01", "10:00")
	require.NoError(t, err)

	fees := 900.0
	require.NoError(t, s.doctors.UpdateProfile(ctx, d.ID, models.DoctorUpdate{Fees: &fees, Address: &models.Address{Line1: "Ward 9"}}))

	profile, err := s.doctors.GetProfile(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 900.0, profile.Fees)
	assert.Equal(t, "Ward 9", profile.Address.Line1)
	assert.Equal(t, []string{"10:00"}, profile.SlotsBooked["2024-05-01"])
	assert.Empty(t, profile.PasswordHash)
}

func TestUpdateProfileKeepsOmittedFees(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()

	d, err := s.admin.AddDoctor(ctx, validDoctor(), nil)
	require.NoError(t, err)

	off := false
	require.NoError(t, s.doctors.UpdateProfile(ctx, d.ID, models.DoctorUpdate{Available: &off}))

	profile, err := s.doctors.GetProfile(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 800.0, profile.Fees)
	assert.False(t, profile.Available)
	assert.Equal(t, "Ward 3", profile.Address.Line1)

	negative := -1.0
	err = s.doctors.UpdateProfile(ctx, d.ID, models.DoctorUpdate{Fees: &negative})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	err = s.doctors.UpdateProfile(ctx, "missing", models.DoctorUpdate{})
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestDashboards(t *testing.T) {
	s := newSetup(t)
	ctx := context.Background()

	d, err := s.admin.AddDoctor(ctx, validDoctor(), nil)
	require.NoError(t, err)
	p1 := &models.User{Name: "P1", Email: "p1@mail.test"}
	p2 := &models.User{Name: "P2", Email: "p2@mail.test"}
	require.NoError(t, s.store.Users().Create(ctx, p1))
	require.NoError(t, s.store.Users().Create(ctx, p2))

	slots := []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00"}
	var ids []string
	for i, slot := range slots {
		patient := p1
		if i%2 == 1 {
			patient = p2
		}
		appt, err := s.booking.Book(ctx, patient.ID, d.ID, "2024-05-01", slot)
		require.NoError(t, err)
		ids = append(ids, appt.ID)
	}

	_, err = s.booking.Complete(ctx, models.DoctorActor(d.ID), ids[0])
	require.NoError(t, err)
	_, err = s.booking.MarkPaid(ctx, p2.ID, ids[1])
	require.NoError(t, err)

	dash, err := s.doctors.Dashboard(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, dash.Earnings)
	assert.Equal(t, 6, dash.Appointments)
	assert.Equal(t, 2, dash.Patients)
	require.Len(t, dash.LatestAppointments, 5)
	assert.Equal(t, ids[5], dash.LatestAppointments[0].ID)

	admin, err := s.admin.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, admin.Doctors)
	assert.Equal(t, 6, admin.Appointments)
	assert.Equal(t, 2, admin.Patients)
	assert.Len(t, admin.LatestAppointments, 5)
}
