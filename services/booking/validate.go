package booking

import (
	"regexp"
	"strings"

	"clinicbook/apperrors"
	"clinicbook/models"
)

var (
	isoDate        = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	underscoreDate = regexp.MustCompile(`^\d{1,2}_\d{1,2}_\d{4}$`)
)

// validSlotDate accepts YYYY-MM-DD and the D_M_YYYY form used by the booking UI.
func validSlotDate(date string) bool {
	return isoDate.MatchString(date) || underscoreDate.MatchString(date)
}

// validSlotTime rejects characters that would break the ledger's document paths.
func validSlotTime(t string) bool {
	t = strings.TrimSpace(t)
	return t != "" && !strings.ContainsAny(t, ".$")
}

func validateBooking(patientID, doctorID, slotDate, slotTime string) error {
	if patientID == "" || doctorID == "" || slotDate == "" || slotTime == "" {
		return apperrors.Validation("Missing Details")
	}
	if !validSlotDate(slotDate) {
		return apperrors.Validation("Invalid slot date")
	}
	if !validSlotTime(slotTime) {
		return apperrors.Validation("Invalid slot time")
	}
	return nil
}

// authorize checks that actor may act on appt.
func authorize(actor models.Actor, appt *models.Appointment) error {
	switch actor.Role {
	case models.RoleAdmin:
		return nil
	case models.RoleUser:
		if actor.ID != "" && appt.UserID == actor.ID {
			return nil
		}
	case models.RoleDoctor:
		if actor.ID != "" && appt.DocID == actor.ID {
			return nil
		}
	}
	return apperrors.NotOwner()
}
