// Package memoryRepo keeps every collection in process memory. It backs STORE=memory
// and the service and handler tests. All repositories built from one Store share a
// single mutex, so every operation is serialized.
package memoryRepo

import (
	"sync"

	"clinicbook/models"
)

type Store struct {
	mu sync.Mutex

	seq           int64
	users         map[string]*models.User
	doctors       map[string]*models.Doctor
	appointments  map[string]*apptRecord
	prescriptions map[string]*prescriptionRecord
}

type apptRecord struct {
	seq  int64
	appt models.Appointment
}

type prescriptionRecord struct {
	seq int64
	p   models.Prescription
}

func NewStore() *Store {
	return &Store{
		users:         map[string]*models.User{},
		doctors:       map[string]*models.Doctor{},
		appointments:  map[string]*apptRecord{},
		prescriptions: map[string]*prescriptionRecord{},
	}
}

func (s *Store) next() int64 {
	s.seq++
	return s.seq
}

func (s *Store) Users() *UserRepo                 { return &UserRepo{s: s} }
func (s *Store) Doctors() *DoctorRepo             { return &DoctorRepo{s: s} }
func (s *Store) Appointments() *AppointmentRepo   { return &AppointmentRepo{s: s} }
func (s *Store) Prescriptions() *PrescriptionRepo { return &PrescriptionRepo{s: s} }

func copyLedger(l models.SlotLedger) models.SlotLedger {
	out := make(models.SlotLedger, len(l))
	for date, times := range l {
		out[date] = append([]string(nil), times...)
	}
	return out
}

func copyDoctor(d *models.Doctor) models.Doctor {
	out := *d
	out.SlotsBooked = copyLedger(d.SlotsBooked)
	return out
}
