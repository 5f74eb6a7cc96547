package booking

import (
	"context"
	"time"

	"clinicbook/apperrors"
	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// Book reserves the slot on the doctor's ledger and records the appointment.
// The reservation is a single conditional update, so of two concurrent requests
// for the same slot exactly one succeeds.
func (s *DefaultBookingService) Book(ctx context.Context, patientID, doctorID, slotDate, slotTime string) (*models.Appointment, error) {
	logger := utils.GetLogger()

	if err := validateBooking(patientID, doctorID, slotDate, slotTime); err != nil {
		return nil, err
	}

	doctor, err := s.Doctors.GetByID(ctx, doctorID)
	if err != nil {
		return nil, err
	}
	if !doctor.Available {
		return nil, apperrors.DoctorUnavailable()
	}

	patient, err := s.Users.GetByID(ctx, patientID)
	if err != nil {
		return nil, err
	}

	if err := s.Doctors.ReserveSlot(ctx, doctorID, slotDate, slotTime); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		UserID:   patient.ID,
		DocID:    doctor.ID,
		SlotDate: slotDate,
		SlotTime: slotTime,
		UserData: patient.Snapshot(),
		DocData:  doctor.Snapshot(),
		Amount:   doctor.Fees,
		Date:     time.Now().UnixMilli(),
	}

	if err := s.Appointments.Create(ctx, appt); err != nil {
		// A duplicate means an active appointment already owns the slot, so the ledger entry stays.
		if !apperrors.Is(err, apperrors.KindSlotUnavailable) {
			if relErr := s.Doctors.ReleaseSlot(ctx, doctorID, slotDate, slotTime); relErr != nil {
				logger.Error("failed to release slot after insert failure",
					zap.String("doctorId", doctorID),
					zap.String("slotDate", slotDate),
					zap.String("slotTime", slotTime),
					zap.Error(relErr))
			}
		}
		return nil, err
	}

	s.invalidate(ctx)
	logger.Info("Appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", doctorID),
		zap.String("patientId", patientID),
		zap.String("slotDate", slotDate),
		zap.String("slotTime", slotTime))
	return appt, nil
}
