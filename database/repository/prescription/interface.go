package prescriptionRepo

import (
	"context"

	"clinicbook/database"
	"clinicbook/models"
	"clinicbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type PrescriptionRepository interface {
	// Create inserts a new prescription and returns its ID.
	Create(ctx context.Context, p *models.Prescription) (string, error)
	// ListByUser returns a patient's prescriptions newest first.
	ListByUser(ctx context.Context, userID string) ([]models.Prescription, error)
	// ListByAppointment returns the prescriptions issued for one appointment newest first.
	ListByAppointment(ctx context.Context, appointmentID string) ([]models.Prescription, error)
}

type mongoPrescriptionRepo struct {
	coll *mongo.Collection
}

// NewMongoPrescriptionRepo returns a new PrescriptionRepository instance using MongoDB.
func NewMongoPrescriptionRepo() PrescriptionRepository {
	return NewMongoPrescriptionRepoWithDB(database.DB())
}

func NewMongoPrescriptionRepoWithDB(db *mongo.Database) PrescriptionRepository {
	repo := &mongoPrescriptionRepo{coll: db.Collection("prescriptions")}
	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create prescription indexes", zap.Error(err))
	}
	return repo
}
