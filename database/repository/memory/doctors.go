package memoryRepo

import (
	"context"
	"sort"
	"time"

	"clinicbook/apperrors"
	doctorRepo "clinicbook/database/repository/doctor"
	"clinicbook/models"

	"github.com/google/uuid"
)

var _ doctorRepo.DoctorRepository = (*DoctorRepo)(nil)

type DoctorRepo struct {
	s *Store
}

func (r *DoctorRepo) Create(_ context.Context, doctor *models.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.doctors {
		if d.Email == doctor.Email {
			return apperrors.Conflict("Doctor already exists")
		}
	}
	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}
	if doctor.SlotsBooked == nil {
		doctor.SlotsBooked = models.SlotLedger{}
	}
	if doctor.Date == 0 {
		doctor.Date = time.Now().UnixMilli()
	}
	stored := copyDoctor(doctor)
	r.s.doctors[doctor.ID] = &stored
	return nil
}

func (r *DoctorRepo) GetByID(_ context.Context, id string) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[id]
	if !ok {
		return nil, apperrors.NotFound("Doctor not found")
	}
	out := copyDoctor(d)
	return &out, nil
}

func (r *DoctorRepo) GetByEmail(_ context.Context, email string) (*models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, d := range r.s.doctors {
		if d.Email == email {
			out := copyDoctor(d)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *DoctorRepo) GetByIDs(_ context.Context, ids []string) ([]models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Doctor{}
	for _, id := range ids {
		if d, ok := r.s.doctors[id]; ok {
			c := copyDoctor(d)
			c.PasswordHash = ""
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *DoctorRepo) ListPublic(ctx context.Context) ([]models.Doctor, error) {
	doctors, err := r.ListAll(ctx)
	for i := range doctors {
		doctors[i].Email = ""
	}
	return doctors, err
}

func (r *DoctorRepo) ListAll(_ context.Context) ([]models.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]models.Doctor, 0, len(r.s.doctors))
	for _, d := range r.s.doctors {
		c := copyDoctor(d)
		c.PasswordHash = ""
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *DoctorRepo) UpdateProfile(_ context.Context, id string, update models.DoctorUpdate) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[id]
	if !ok {
		return apperrors.NotFound("Doctor not found")
	}
	if update.Fees != nil {
		d.Fees = *update.Fees
	}
	if update.Address != nil {
		d.Address = *update.Address
	}
	if update.Available != nil {
		d.Available = *update.Available
	}
	return nil
}

func (r *DoctorRepo) SetAvailability(_ context.Context, id string, available bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[id]
	if !ok {
		return apperrors.NotFound("Doctor not found")
	}
	d.Available = available
	return nil
}

func (r *DoctorRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.s.doctors)), nil
}

func (r *DoctorRepo) ReserveSlot(_ context.Context, doctorID, date, slotTime string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[doctorID]
	if !ok {
		return apperrors.NotFound("Doctor not found")
	}
	if !d.Available {
		return apperrors.DoctorUnavailable()
	}
	if d.SlotsBooked.Contains(date, slotTime) {
		return apperrors.SlotUnavailable()
	}
	d.SlotsBooked[date] = append(d.SlotsBooked[date], slotTime)
	return nil
}

func (r *DoctorRepo) ReleaseSlot(_ context.Context, doctorID, date, slotTime string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	d, ok := r.s.doctors[doctorID]
	if !ok {
		return nil
	}
	times, ok := d.SlotsBooked[date]
	if !ok {
		return nil
	}
	kept := times[:0]
	for _, t := range times {
		if t != slotTime {
			kept = append(kept, t)
		}
	}
	d.SlotsBooked[date] = kept
	return nil
}
