package userRepo

import (
	"context"
	"time"

	"clinicbook/database"
	"clinicbook/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// MongoUserRepo implements UserRepository using MongoDB.
type MongoUserRepo struct {
	coll *mongo.Collection
}

// NewMongoUserRepo creates a new instance of UserRepository using MongoDB.
func NewMongoUserRepo() UserRepository {
	return NewMongoUserRepoWithDB(database.DB())
}

// NewMongoUserRepoWithDB builds the repository on an explicit database handle.
func NewMongoUserRepoWithDB(db *mongo.Database) UserRepository {
	repo := &MongoUserRepo{coll: db.Collection("users")}

	if err := repo.ensureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to create user indexes", zap.Error(err))
	}
	return repo
}

// newContext derives a context with the given timeout from parent.
func newContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, timeout)
}
