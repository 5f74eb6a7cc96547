package appointmentRepo

import (
	"context"

	"clinicbook/models"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// Create inserts the appointment. A second active appointment for the same
	// doctor, date and time yields a SlotUnavailable error.
	Create(ctx context.Context, appt *models.Appointment) error
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	// FindActiveBySlot returns the non-cancelled appointment holding the slot, or nil.
	FindActiveBySlot(ctx context.Context, docID, slotDate, slotTime string) (*models.Appointment, error)
	// ListByUser, ListByDoctor and ListAll return appointments newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Appointment, error)
	ListByDoctor(ctx context.Context, docID string) ([]models.Appointment, error)
	ListAll(ctx context.Context) ([]models.Appointment, error)
	// MarkCancelled cancels an active appointment and reports whether this call changed it.
	MarkCancelled(ctx context.Context, id string) (bool, error)
	// MarkCompleted completes a non-cancelled appointment and reports whether it matched.
	MarkCompleted(ctx context.Context, id string) (bool, error)
	// MarkPaid flags a non-cancelled appointment as paid and reports whether it matched.
	MarkPaid(ctx context.Context, id string) (bool, error)
}
