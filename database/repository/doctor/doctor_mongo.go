package doctorRepo

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

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	return NewMongoDoctorRepoWithDB(database.DB())
}

// NewMongoDoctorRepoWithDB builds the repository on an explicit database handle.
func NewMongoDoctorRepoWithDB(db *mongo.Database) DoctorRepository {
	repo := &MongoDoctorRepo{coll: db.Collection("doctors")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create doctor indexes", zap.Error(err))
	}
	return repo
}

func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}

func (r *MongoDoctorRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "speciality", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Projections used by list queries.
var (
	publicProjection = bson.M{"passwordHash": 0, "email": 0}
	adminProjection  = bson.M{"passwordHash": 0}
)
