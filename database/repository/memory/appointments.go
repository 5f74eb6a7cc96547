package memoryRepo

import (
	"context"
	"sort"

	"clinicbook/apperrors"
	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"

	"github.com/google/uuid"
)

var _ appointmentRepo.AppointmentRepository = (*AppointmentRepo)(nil)

type AppointmentRepo struct {
	s *Store
}

// Create enforces the same uniqueness as the partial index on active slots.
func (r *AppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.s.appointments {
		a := rec.appt
		if !a.Cancelled && a.DocID == appt.DocID && a.SlotDate == appt.SlotDate && a.SlotTime == appt.SlotTime {
			return apperrors.SlotUnavailable()
		}
	}
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	r.s.appointments[appt.ID] = &apptRecord{seq: r.s.next(), appt: *appt}
	return nil
}

func (r *AppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.appointments[id]
	if !ok {
		return nil, apperrors.NotFound("Appointment not found")
	}
	out := rec.appt
	return &out, nil
}

func (r *AppointmentRepo) FindActiveBySlot(_ context.Context, docID, slotDate, slotTime string) (*models.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, rec := range r.s.appointments {
		a := rec.appt
		if !a.Cancelled && a.DocID == docID && a.SlotDate == slotDate && a.SlotTime == slotTime {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *AppointmentRepo) ListByUser(_ context.Context, userID string) ([]models.Appointment, error) {
	return r.list(func(a models.Appointment) bool { return a.UserID == userID }), nil
}

func (r *AppointmentRepo) ListByDoctor(_ context.Context, docID string) ([]models.Appointment, error) {
	return r.list(func(a models.Appointment) bool { return a.DocID == docID }), nil
}

func (r *AppointmentRepo) ListAll(_ context.Context) ([]models.Appointment, error) {
	return r.list(func(models.Appointment) bool { return true }), nil
}

func (r *AppointmentRepo) list(keep func(models.Appointment) bool) []models.Appointment {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	recs := make([]*apptRecord, 0, len(r.s.appointments))
	for _, rec := range r.s.appointments {
		if keep(rec.appt) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if recs[i].appt.Date != recs[j].appt.Date {
			return recs[i].appt.Date > recs[j].appt.Date
		}
		return recs[i].seq > recs[j].seq
	})

	out := make([]models.Appointment, len(recs))
	for i, rec := range recs {
		out[i] = rec.appt
	}
	return out
}

func (r *AppointmentRepo) MarkCancelled(_ context.Context, id string) (bool, error) {
	return r.flag(id, func(a *models.Appointment) bool {
		if a.Cancelled || a.IsCompleted {
			return false
		}
		a.Cancelled = true
		return true
	}), nil
}

func (r *AppointmentRepo) MarkCompleted(_ context.Context, id string) (bool, error) {
	return r.flag(id, func(a *models.Appointment) bool {
		if a.Cancelled {
			return false
		}
		a.IsCompleted = true
		return true
	}), nil
}

func (r *AppointmentRepo) MarkPaid(_ context.Context, id string) (bool, error) {
	return r.flag(id, func(a *models.Appointment) bool {
		if a.Cancelled {
			return false
		}
		a.Payment = true
		return true
	}), nil
}

func (r *AppointmentRepo) flag(id string, apply func(*models.Appointment) bool) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.appointments[id]
	if !ok {
		return false
	}
	return apply(&rec.appt)
}
