package prescription

import (
	"context"
	"strings"

	"clinicbook/apperrors"
	appointmentRepo "clinicbook/database/repository/appointment"
	doctorRepo "clinicbook/database/repository/doctor"
	prescriptionRepo "clinicbook/database/repository/prescription"
	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

const (
	unknownDoctor     = "Unknown Doctor"
	defaultSpeciality = "General"
	defaultNotes      = "No additional notes"
)

type PrescriptionService interface {
	AddPrescription(ctx context.Context, doctorID, appointmentID string, medicines []models.Medicine, notes string) (*models.Prescription, error)
	ListForPatient(ctx context.Context, patientID string) ([]models.PrescriptionView, error)
	ListForAppointment(ctx context.Context, doctorID, appointmentID string) ([]models.PrescriptionView, error)
}

type DefaultPrescriptionService struct {
	Prescriptions prescriptionRepo.PrescriptionRepository
	Appointments  appointmentRepo.AppointmentRepository
	Doctors       doctorRepo.DoctorRepository
}

func NewPrescriptionService(
	prescriptions prescriptionRepo.PrescriptionRepository,
	appointments appointmentRepo.AppointmentRepository,
	doctors doctorRepo.DoctorRepository,
) *DefaultPrescriptionService {
	return &DefaultPrescriptionService{
		Prescriptions: prescriptions,
		Appointments:  appointments,
		Doctors:       doctors,
	}
}

// AddPrescription issues a prescription for a completed appointment of the doctor.
func (s *DefaultPrescriptionService) AddPrescription(ctx context.Context, doctorID, appointmentID string, medicines []models.Medicine, notes string) (*models.Prescription, error) {
	if appointmentID == "" {
		return nil, apperrors.Validation("Missing Details")
	}
	cleaned, err := cleanMedicines(medicines)
	if err != nil {
		return nil, err
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DocID != doctorID {
		return nil, apperrors.NotOwner()
	}
	if appt.Cancelled || !appt.IsCompleted {
		return nil, apperrors.Conflict("Prescriptions can only be added to completed appointments")
	}

	p := &models.Prescription{
		AppointmentID: appt.ID,
		DocID:         doctorID,
		UserID:        appt.UserID,
		Medicines:     cleaned,
		Notes:         strings.TrimSpace(notes),
	}
	if _, err := s.Prescriptions.Create(ctx, p); err != nil {
		return nil, err
	}

	utils.GetLogger().Info("Prescription added",
		zap.String("prescriptionId", p.ID),
		zap.String("appointmentId", appt.ID),
		zap.Int("medicines", len(cleaned)))
	return p, nil
}

func cleanMedicines(medicines []models.Medicine) ([]models.Medicine, error) {
	if len(medicines) == 0 {
		return nil, apperrors.Validation("At least one medicine is required")
	}
	out := make([]models.Medicine, 0, len(medicines))
	for _, m := range medicines {
		m.Name = strings.TrimSpace(m.Name)
		m.Dosage = strings.TrimSpace(m.Dosage)
		m.Frequency = strings.TrimSpace(m.Frequency)
		if m.Name == "" {
			return nil, apperrors.Validation("Medicine name is required")
		}
		out = append(out, m)
	}
	return out, nil
}

// ListForPatient returns the patient's prescriptions, newest first.
func (s *DefaultPrescriptionService) ListForPatient(ctx context.Context, patientID string) ([]models.PrescriptionView, error) {
	records, err := s.Prescriptions.ListByUser(ctx, patientID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, records)
}

// ListForAppointment returns the prescriptions of one of the doctor's appointments.
func (s *DefaultPrescriptionService) ListForAppointment(ctx context.Context, doctorID, appointmentID string) ([]models.PrescriptionView, error) {
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DocID != doctorID {
		return nil, apperrors.NotOwner()
	}
	records, err := s.Prescriptions.ListByAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, records)
}

func (s *DefaultPrescriptionService) enrich(ctx context.Context, records []models.Prescription) ([]models.PrescriptionView, error) {
	seen := map[string]bool{}
	ids := []string{}
	for _, p := range records {
		if !seen[p.DocID] {
			seen[p.DocID] = true
			ids = append(ids, p.DocID)
		}
	}

	doctors, err := s.Doctors.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Doctor, len(doctors))
	for _, d := range doctors {
		byID[d.ID] = d
	}

	views := make([]models.PrescriptionView, 0, len(records))
	for _, p := range records {
		doc := models.PrescribingDoctor{Name: unknownDoctor, Speciality: defaultSpeciality}
		if d, ok := byID[p.DocID]; ok {
			if d.Name != "" {
				doc.Name = d.Name
			}
			if d.Speciality != "" {
				doc.Speciality = d.Speciality
			}
		}
		notes := p.Notes
		if notes == "" {
			notes = defaultNotes
		}
		views = append(views, models.PrescriptionView{
			ID:            p.ID,
			AppointmentID: p.AppointmentID,
			Doctor:        doc,
			Medicines:     p.Medicines,
			Notes:         notes,
			CreatedAt:     p.CreatedAt,
		})
	}
	return views, nil
}
