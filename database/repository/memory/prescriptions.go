package memoryRepo

import (
	"context"
	"sort"
	"time"

	prescriptionRepo "clinicbook/database/repository/prescription"
	"clinicbook/models"

	"github.com/google/uuid"
)

var _ prescriptionRepo.PrescriptionRepository = (*PrescriptionRepo)(nil)

type PrescriptionRepo struct {
	s *Store
}

func (r *PrescriptionRepo) Create(_ context.Context, p *models.Prescription) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	stored := *p
	stored.Medicines = append([]models.Medicine(nil), p.Medicines...)
	r.s.prescriptions[p.ID] = &prescriptionRecord{seq: r.s.next(), p: stored}
	return p.ID, nil
}

func (r *PrescriptionRepo) ListByUser(_ context.Context, userID string) ([]models.Prescription, error) {
	return r.list(func(p models.Prescription) bool { return p.UserID == userID }), nil
}

func (r *PrescriptionRepo) ListByAppointment(_ context.Context, appointmentID string) ([]models.Prescription, error) {
	return r.list(func(p models.Prescription) bool { return p.AppointmentID == appointmentID }), nil
}

func (r *PrescriptionRepo) list(keep func(models.Prescription) bool) []models.Prescription {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	recs := make([]*prescriptionRecord, 0)
	for _, rec := range r.s.prescriptions {
		if keep(rec.p) {
			recs = append(recs, rec)
		}
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].p.CreatedAt.Equal(recs[j].p.CreatedAt) {
			return recs[i].p.CreatedAt.After(recs[j].p.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	out := make([]models.Prescription, len(recs))
	for i, rec := range recs {
		out[i] = rec.p
	}
	return out
}
