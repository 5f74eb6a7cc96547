package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/database"
	"clinicbook/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

func NewMongoAppointmentRepo() AppointmentRepository {
	return NewMongoAppointmentRepoWithDB(database.DB())
}

func NewMongoAppointmentRepoWithDB(db *mongo.Database) AppointmentRepository {
	repo := &MongoAppointmentRepo{coll: db.Collection("appointments")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create appointment indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

// ensureIndexes creates lookup indexes plus the partial unique index that allows
// at most one active appointment per doctor slot.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "docId", Value: 1}, {Key: "date", Value: -1}}},
		{
			Keys: bson.D{
				{Key: "docId", Value: 1},
				{Key: "slotDate", Value: 1},
				{Key: "slotTime", Value: 1},
			},
			Options: options.Index().
				SetName("active_slot_unique").
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"cancelled": false}),
		},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
