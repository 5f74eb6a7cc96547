package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicbook/apperrors"
	"clinicbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *MongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.SlotUnavailable()
		}
		return apperrors.Persistence("create appointment", fmt.Errorf("failed to create appointment: %w", err))
	}
	return nil
}

func (r *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Appointment not found")
		}
		return nil, apperrors.Persistence("fetch appointment", fmt.Errorf("failed to fetch appointment %s: %w", id, err))
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) FindActiveBySlot(ctx context.Context, docID, slotDate, slotTime string) (*models.Appointment, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"docId": docID, "slotDate": slotDate, "slotTime": slotTime, "cancelled": false}
	var appt models.Appointment
	if err := r.coll.FindOne(ctx, filter).Decode(&appt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperrors.Persistence("fetch appointment", fmt.Errorf("failed to look up slot %s %s for doctor %s: %w", slotDate, slotTime, docID, err))
	}
	return &appt, nil
}

func (r *MongoAppointmentRepo) ListByUser(ctx context.Context, userID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *MongoAppointmentRepo) ListByDoctor(ctx context.Context, docID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"docId": docID})
}

func (r *MongoAppointmentRepo) ListAll(ctx context.Context) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoAppointmentRepo) find(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Persistence("list appointments", fmt.Errorf("failed to retrieve appointments: %w", err))
	}
	defer cursor.Close(ctx)

	appts := []models.Appointment{}
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, apperrors.Persistence("list appointments", fmt.Errorf("failed to decode appointments: %w", err))
	}
	return appts, nil
}

func (r *MongoAppointmentRepo) MarkCancelled(ctx context.Context, id string) (bool, error) {
	return r.flag(ctx, bson.M{"id": id, "cancelled": false, "isCompleted": false}, "cancelled")
}

func (r *MongoAppointmentRepo) MarkCompleted(ctx context.Context, id string) (bool, error) {
	return r.flag(ctx, bson.M{"id": id, "cancelled": false}, "isCompleted")
}

func (r *MongoAppointmentRepo) MarkPaid(ctx context.Context, id string) (bool, error) {
	return r.flag(ctx, bson.M{"id": id, "cancelled": false}, "payment")
}

// flag sets field to true on the document matching filter. For MarkCancelled the
// filter includes cancelled=false, so a match means this call made the transition.
func (r *MongoAppointmentRepo) flag(ctx context.Context, filter bson.M, field string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{field: true}})
	if err != nil {
		return false, apperrors.Persistence("update appointment", fmt.Errorf("failed to set %s on appointment %v: %w", field, filter["id"], err))
	}
	return result.MatchedCount == 1, nil
}
