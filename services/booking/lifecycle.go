package booking

import (
	"context"

	"clinicbook/apperrors"
	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// Cancel cancels an active appointment and frees its slot. Cancelling an appointment
// that is already cancelled succeeds, and frees the slot only if a previous release
// failed and no active appointment holds it.
func (s *DefaultBookingService) Cancel(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error) {
	if appointmentID == "" {
		return nil, apperrors.Validation("Missing Details")
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, appt); err != nil {
		return nil, err
	}
	if appt.Cancelled {
		if err := s.freeOrphanedSlot(ctx, appt); err != nil {
			return nil, err
		}
		return appt, nil
	}
	if appt.IsCompleted {
		return nil, apperrors.Conflict("Completed appointments cannot be cancelled")
	}

	changed, err := s.Appointments.MarkCancelled(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !changed {
		// Lost a race with another cancel or a completion.
		current, err := s.Appointments.GetByID(ctx, appointmentID)
		if err != nil {
			return nil, err
		}
		if current.Cancelled {
			return current, nil
		}
		return nil, apperrors.Conflict("Completed appointments cannot be cancelled")
	}

	if err := s.Doctors.ReleaseSlot(ctx, appt.DocID, appt.SlotDate, appt.SlotTime); err != nil {
		utils.GetLogger().Error("failed to release slot after cancellation",
			zap.String("appointmentId", appointmentID),
			zap.String("doctorId", appt.DocID),
			zap.Error(err))
		return nil, err
	}
	s.invalidate(ctx)

	appt.Cancelled = true
	utils.GetLogger().Info("Appointment cancelled",
		zap.String("appointmentId", appointmentID),
		zap.String("by", string(actor.Role)))
	return appt, nil
}

// freeOrphanedSlot releases the slot of a cancelled appointment when the ledger still
// lists it and no active appointment holds it.
func (s *DefaultBookingService) freeOrphanedSlot(ctx context.Context, appt *models.Appointment) error {
	doctor, err := s.Doctors.GetByID(ctx, appt.DocID)
	if err != nil {
		if apperrors.Is(err, apperrors.KindNotFound) {
			return nil
		}
		return err
	}
	if !doctor.SlotsBooked.Contains(appt.SlotDate, appt.SlotTime) {
		return nil
	}
	holder, err := s.Appointments.FindActiveBySlot(ctx, appt.DocID, appt.SlotDate, appt.SlotTime)
	if err != nil {
		return err
	}
	if holder != nil {
		return nil
	}

	if err := s.Doctors.ReleaseSlot(ctx, appt.DocID, appt.SlotDate, appt.SlotTime); err != nil {
		return err
	}
	s.invalidate(ctx)
	utils.GetLogger().Info("Released orphaned slot",
		zap.String("appointmentId", appt.ID),
		zap.String("doctorId", appt.DocID),
		zap.String("slotDate", appt.SlotDate),
		zap.String("slotTime", appt.SlotTime))
	return nil
}

// Complete marks the appointment as completed. Repeating it is harmless.
func (s *DefaultBookingService) Complete(ctx context.Context, actor models.Actor, appointmentID string) (*models.Appointment, error) {
	if appointmentID == "" {
		return nil, apperrors.Validation("Missing Details")
	}
	if actor.Role != models.RoleDoctor && actor.Role != models.RoleAdmin {
		return nil, apperrors.NotOwner()
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(actor, appt); err != nil {
		return nil, err
	}
	if appt.Cancelled {
		return nil, apperrors.Conflict("Cancelled appointments cannot be completed")
	}
	if appt.IsCompleted {
		return appt, nil
	}

	matched, err := s.Appointments.MarkCompleted(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperrors.Conflict("Cancelled appointments cannot be completed")
	}

	appt.IsCompleted = true
	utils.GetLogger().Info("Appointment completed", zap.String("appointmentId", appointmentID))
	return appt, nil
}

// MarkPaid records payment for one of the patient's appointments.
func (s *DefaultBookingService) MarkPaid(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	if appointmentID == "" {
		return nil, apperrors.Validation("Missing Details")
	}

	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if err := authorize(models.PatientActor(patientID), appt); err != nil {
		return nil, err
	}
	if appt.Cancelled {
		return nil, apperrors.Conflict("Appointment Cancelled")
	}
	if appt.Payment {
		return appt, nil
	}

	matched, err := s.Appointments.MarkPaid(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, apperrors.Conflict("Appointment Cancelled")
	}
	appt.Payment = true
	return appt, nil
}

func (s *DefaultBookingService) ListForPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.Appointments.ListByUser(ctx, patientID)
}

func (s *DefaultBookingService) ListForDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.Appointments.ListByDoctor(ctx, doctorID)
}

func (s *DefaultBookingService) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return s.Appointments.ListAll(ctx)
}
