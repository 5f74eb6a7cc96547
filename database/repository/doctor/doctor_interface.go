package doctorRepo

import (
	"context"

	"clinicbook/models"
)

// SlotLedger records which date/time slots of a doctor are taken.
type SlotLedger interface {
	// ReserveSlot atomically appends slotTime to the doctor's booked list for date.
	// It fails with SlotUnavailable when the time is already booked, with
	// DoctorUnavailable when the doctor stopped accepting bookings, and with
	// NotFound when the doctor does not exist.
	ReserveSlot(ctx context.Context, doctorID, date, slotTime string) error
	// ReleaseSlot removes slotTime from the doctor's booked list for date.
	// Releasing a slot that is not booked is not an error.
	ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error
}

// DoctorRepository defines methods for doctor data access.
type DoctorRepository interface {
	SlotLedger

	Create(ctx context.Context, doctor *models.Doctor) error
	// GetByID returns the full doctor record, credentials included.
	GetByID(ctx context.Context, id string) (*models.Doctor, error)
	// GetByEmail returns nil, nil when no doctor matches.
	GetByEmail(ctx context.Context, email string) (*models.Doctor, error)
	// GetByIDs returns the doctors whose ids are listed, in no particular order.
	GetByIDs(ctx context.Context, ids []string) ([]models.Doctor, error)
	// ListPublic returns every doctor without credentials or email.
	ListPublic(ctx context.Context) ([]models.Doctor, error)
	// ListAll returns every doctor without credentials.
	ListAll(ctx context.Context) ([]models.Doctor, error)
	// UpdateProfile applies a doctor's own profile changes.
	UpdateProfile(ctx context.Context, id string, update models.DoctorUpdate) error
	SetAvailability(ctx context.Context, id string, available bool) error
	Count(ctx context.Context) (int64, error)
}
