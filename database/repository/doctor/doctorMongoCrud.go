package doctorRepo

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

// Create inserts a new doctor document with an empty slot ledger.
func (r *MongoDoctorRepo) Create(ctx context.Context, doctor *models.Doctor) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	if doctor.ID == "" {
		doctor.ID = uuid.New().String()
	}

	if doctor.SlotsBooked == nil {
		doctor.SlotsBooked = models.SlotLedger{}
	}
	if doctor.Date == 0 {
		doctor.Date = time.Now().UnixMilli()
	}

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperrors.Conflict("Doctor already exists")
		}
		return apperrors.Persistence("create doctor", fmt.Errorf("failed to create doctor: %w", err))
	}
	return nil
}

// UpdateProfile sets only the fields a doctor may edit. The slot ledger is never overwritten here.
func (r *MongoDoctorRepo) UpdateProfile(ctx context.Context, id string, update models.DoctorUpdate) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	set := bson.M{}
	if update.Fees != nil {
		set["fees"] = *update.Fees
	}
	if update.Address != nil {
		set["address"] = *update.Address
	}
	if update.Available != nil {
		set["available"] = *update.Available
	}

	if len(set) == 0 {
		_, err := r.GetByID(ctx, id)
		return err
	}

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		return apperrors.Persistence("update doctor", fmt.Errorf("failed to update doctor with id %s: %w", id, err))
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("Doctor not found")
	}
	return nil
}

// SetAvailability flips the booking availability flag.
func (r *MongoDoctorRepo) SetAvailability(ctx context.Context, id string, available bool) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"available": available}})
	if err != nil {
		return apperrors.Persistence("update doctor", fmt.Errorf("failed to set availability for doctor %s: %w", id, err))
	}
	if result.MatchedCount == 0 {
		return apperrors.NotFound("Doctor not found")
	}
	return nil
}

// GetByID retrieves the full doctor document.
func (r *MongoDoctorRepo) GetByID(ctx context.Context, id string) (*models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NotFound("Doctor not found")
		}
		return nil, apperrors.Persistence("fetch doctor", fmt.Errorf("failed to fetch doctor with id %s: %w", id, err))
	}
	return &doctor, nil
}

// GetByEmail retrieves a doctor by login email.
func (r *MongoDoctorRepo) GetByEmail(ctx context.Context, email string) (*models.Doctor, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doctor); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, apperrors.Persistence("fetch doctor", fmt.Errorf("failed to fetch doctor with email %s: %w", email, err))
	}
	return &doctor, nil
}

func (r *MongoDoctorRepo) GetByIDs(ctx context.Context, ids []string) ([]models.Doctor, error) {
	if len(ids) == 0 {
		return []models.Doctor{}, nil
	}
	return r.find(ctx, bson.M{"id": bson.M{"$in": ids}}, adminProjection)
}

func (r *MongoDoctorRepo) ListPublic(ctx context.Context) ([]models.Doctor, error) {
	return r.find(ctx, bson.M{}, publicProjection)
}

func (r *MongoDoctorRepo) ListAll(ctx context.Context) ([]models.Doctor, error) {
	return r.find(ctx, bson.M{}, adminProjection)
}

func (r *MongoDoctorRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	n, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, apperrors.Persistence("count doctors", fmt.Errorf("failed to count doctors: %w", err))
	}
	return n, nil
}

func (r *MongoDoctorRepo) find(ctx context.Context, filter bson.M, projection bson.M) ([]models.Doctor, error) {
	ctx, cancel := newContext(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetProjection(projection).SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, apperrors.Persistence("list doctors", fmt.Errorf("failed to retrieve doctors: %w", err))
	}
	defer cursor.Close(ctx)

	doctors := []models.Doctor{}
	for cursor.Next(ctx) {
		var d models.Doctor
		if err := cursor.Decode(&d); err != nil {
			return nil, apperrors.Persistence("list doctors", fmt.Errorf("failed to decode doctor: %w", err))
		}
		doctors = append(doctors, d)
	}
	if err := cursor.Err(); err != nil {
		return nil, apperrors.Persistence("list doctors", fmt.Errorf("cursor error: %w", err))
	}
	return doctors, nil
}
