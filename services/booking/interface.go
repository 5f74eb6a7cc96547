package booking

import (
	"context"

	appointmentRepo "clinicbook/database/repository/appointment"
	doctorRepo "clinicbook/database/repository/doctor"
	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
)

// BookingService runs the appointment lifecycle: booking, cancellation, completion and payment.
type BookingService interface {
	Book(ctx context.Context, patientID, doctorID, slotDate, slotTime string) (*models.Appointment, error)
	Cancel(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error)
	Complete(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error)
	MarkPaid(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
}

// ListInvalidator drops cached views that embed the slot ledger.
type ListInvalidator interface {
	InvalidateList(ctx context.Context)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Doctors      doctorRepo.DoctorRepository
	Users        userRepo.UserRepository
	Appointments appointmentRepo.AppointmentRepository
	Cache        ListInvalidator
}

func NewBookingService(
	doctors doctorRepo.DoctorRepository,
	users userRepo.UserRepository,
	appointments appointmentRepo.AppointmentRepository,
	cache ListInvalidator,
) *DefaultBookingService {
	return &DefaultBookingService{
		Doctors:      doctors,
		Users:        users,
		Appointments: appointments,
		Cache:        cache,
	}
}

func (s *DefaultBookingService) invalidate(ctx context.Context) {
	if s.Cache != nil {
		s.Cache.InvalidateList(ctx)
	}
}
