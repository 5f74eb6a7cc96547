package prescription

import (
	"context"
	"testing"

	"clinicbook/apperrors"
	memoryRepo "clinicbook/database/repository/memory"
	"clinicbook/models"
	"clinicbook/services/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	store   *memoryRepo.Store
	booking *booking.DefaultBookingService
	svc     *DefaultPrescriptionService
	doctor  *models.Doctor
	patient *models.User
}

func setup(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	store := memoryRepo.NewStore()

	doctor := &models.Doctor{Name: "Dr. Rao", Email: "rao@clinic.test", Speciality: "Dermatologist", Fees: 300, Available: true}
	require.NoError(t, store.Doctors().Create(ctx, doctor))
	patient := &models.User{Name: "Asha", Email: "asha@mail.test"}
	require.NoError(t, store.Users().Create(ctx, patient))

	return &env{
		store:   store,
		booking: booking.NewBookingService(store.Doctors(), store.Users(), store.Appointments(), nil),
		svc:     NewPrescriptionService(store.Prescriptions(), store.Appointments(), store.Doctors()),
		doctor:  doctor,
		patient: patient,
	}
}

func (e *env) book(t *testing.T, slotTime string) *models.Appointment {
	t.Helper()
	appt, err := e.booking.Book(context.Background(), e.patient.ID, e.doctor.ID, "2024-05-01", slotTime)
	require.NoError(t, err)
	return appt
}

var amoxicillin = []models.Medicine{{Name: "Amoxicillin", Dosage: "500mg", Frequency: "3x daily"}}

func TestAddPrescriptionRequiresCompletion(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	appt := e.book(t, "10:00")

	_, err := e.svc.AddPrescription(ctx, e.doctor.ID, appt.ID, amoxicillin, "after meals")
	assert.True(t, apperrors.Is(err, apperrors.KindConflict))

	_, err = e.booking.Complete(ctx, models.DoctorActor(e.doctor.ID), appt.ID)
	require.NoError(t, err)

	p, err := e.svc.AddPrescription(ctx, e.doctor.ID, appt.ID, amoxicillin, "after meals")
	require.NoError(t, err)
	assert.Equal(t, e.patient.ID, p.UserID)

	views, err := e.svc.ListForPatient(ctx, e.patient.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Dr. Rao", views[0].Doctor.Name)
	assert.Equal(t, "Dermatologist", views[0].Doctor.Speciality)
	assert.Equal(t, "after meals", views[0].Notes)
	assert.Equal(t, amoxicillin, views[0].Medicines)
}

func TestAddPrescriptionValidation(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	appt := e.book(t, "10:00")
	_, err := e.booking.Complete(ctx, models.DoctorActor(e.doctor.ID), appt.ID)
	require.NoError(t, err)

	_, err = e.svc.AddPrescription(ctx, e.doctor.ID, appt.ID, nil, "")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = e.svc.AddPrescription(ctx, e.doctor.ID, appt.ID, []models.Medicine{{Name: "  ", Dosage: "1"}}, "")
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))

	_, err = e.svc.AddPrescription(ctx, "another-doctor", appt.ID, amoxicillin, "")
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))

	_, err = e.svc.AddPrescription(ctx, e.doctor.ID, "missing", amoxicillin, "")
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestListForAppointmentNewestFirstWithDefaults(t *testing.T) {
	e := setup(t)
	ctx := context.Background()
	appt := e.book(t, "10:00")
	_, err := e.booking.Complete(ctx, models.DoctorActor(e.doctor.ID), appt.ID)
	require.NoError(t, err)

	first, err := e.svc.AddPrescription(ctx, e.doctor.ID, appt.ID, amoxicillin, "")
	require.NoError(t, err)
	second, err := e.svc.AddPrescription(ctx, e.doctor.ID, appt.ID, []models.Medicine{{Name: "Cetirizine"}}, "at night")
	require.NoError(t, err)

	views, err := e.svc.ListForAppointment(ctx, e.doctor.ID, appt.ID)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, second.ID, views[0].ID)
	assert.Equal(t, first.ID, views[1].ID)
	assert.Equal(t, "No additional notes", views[1].Notes)

	_, err = e.svc.ListForAppointment(ctx, "another-doctor", appt.ID)
	assert.True(t, apperrors.Is(err, apperrors.KindUnauthorized))
}

func TestListForPatientUnknownDoctor(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.store.Prescriptions().Create(ctx, &models.Prescription{
		AppointmentID: "legacy",
		DocID:         "deleted-doctor",
		UserID:        e.patient.ID,
		Medicines:     amoxicillin,
	})
	require.NoError(t, err)

	views, err := e.svc.ListForPatient(ctx, e.patient.ID)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Unknown Doctor", views[0].Doctor.Name)
	assert.Equal(t, "General", views[0].Doctor.Speciality)
}
