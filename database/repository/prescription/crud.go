package prescriptionRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/apperrors"
	"clinicbook/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoPrescriptionRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new prescription and returns its ID.
func (r *mongoPrescriptionRepo) Create(ctx context.Context, p *models.Prescription) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}

	if _, err := r.coll.InsertOne(ctx, p); err != nil {
		return "", apperrors.Persistence("create prescription", fmt.Errorf("failed to create prescription: %w", err))
	}
	return p.ID, nil
}

func (r *mongoPrescriptionRepo) ListByUser(ctx context.Context, userID string) ([]models.Prescription, error) {
	return r.find(ctx, bson.M{"userId": userID})
}

func (r *mongoPrescriptionRepo) ListByAppointment(ctx context.Context, appointmentID string) ([]models.Prescription, error) {
	return r.find(ctx, bson.M{"appointmentId": appointmentID})
}

func (r *mongoPrescriptionRepo) find(ctx context.Context, filter bson.M) ([]models.Prescription, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, apperrors.Persistence("list prescriptions", fmt.Errorf("failed to retrieve prescriptions: %w", err))
	}
	defer cursor.Close(ctx)

	records := []models.Prescription{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, apperrors.Persistence("list prescriptions", fmt.Errorf("failed to decode prescriptions: %w", err))
	}
	return records, nil
}
