package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/apperrors"
	"clinicbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

func ledgerField(date string) string {
	return "slots_booked." + date
}

// ReserveSlot pushes slotTime onto the ledger only when the doctor is available and the
// time is not already present. The check and the write are one document update.
func (r *MongoDoctorRepo) ReserveSlot(ctx context.Context, doctorID, date, slotTime string) error {
	opCtx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	field := ledgerField(date)
	filter := bson.M{
		"id":        doctorID,
		"available": true,
		field:       bson.M{"$ne": slotTime},
	}
	update := bson.M{"$push": bson.M{field: slotTime}}

	result, err := r.coll.UpdateOne(opCtx, filter, update)
	if err != nil {
		return apperrors.Persistence("reserve slot", fmt.Errorf("failed to reserve slot %s %s for doctor %s: %w", date, slotTime, doctorID, err))
	}
	if result.MatchedCount == 1 {
		return nil
	}

	// Nothing matched: find out which condition failed.
	doctor, err := r.GetByID(ctx, doctorID)
	if err != nil {
		return err
	}
	if !doctor.Available {
		return apperrors.DoctorUnavailable()
	}
	return apperrors.SlotUnavailable()
}

// ReleaseSlot pulls slotTime from the ledger. Absence of the entry is not an error.
func (r *MongoDoctorRepo) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	opCtx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$pull": bson.M{ledgerField(date): slotTime}}
	result, err := r.coll.UpdateOne(opCtx, bson.M{"id": doctorID}, update)
	if err != nil {
		return apperrors.Persistence("release slot", fmt.Errorf("failed to release slot %s %s for doctor %s: %w", date, slotTime, doctorID, err))
	}
	if result.ModifiedCount == 0 {
		utils.GetLogger().Debug("release found no ledger entry",
			zap.String("doctorId", doctorID), zap.String("slotDate", date), zap.String("slotTime", slotTime))
	}
	return nil
}
