package userrepo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hr-assistant-api/internal/domain/user"
	"hr-assistant-api/internal/infrastructure/database"
	"hr-assistant-api/internal/infrastructure/database/dbschema"
	"hr-assistant-api/internal/utils/platformerrors"
)

type UserMongoRepository struct {
	coll *mongo.Collection
}

var _ user.Repository = (*UserMongoRepository)(nil)

func NewUserMongoRepository(db *database.Database) *UserMongoRepository {
	return &UserMongoRepository{coll: db.Collection(database.UsersCollection)}
}

func (repo *UserMongoRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return repo.findOne(ctx, bson.D{{Key: "username", Value: username}})
}

func (repo *UserMongoRepository) FindByID(ctx context.Context, id string) (*user.User, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, userNotFound(ctx, err)
	}
	return repo.findOne(ctx, bson.D{{Key: "_id", Value: oid}})
}

func (repo *UserMongoRepository) Insert(ctx context.Context, u user.User) (string, error) {
	res, err := repo.coll.InsertOne(ctx, dbschema.NewSchemaUser(u))
	if mongo.IsDuplicateKeyError(err) {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "username already exists", err, "2e4a6c8e-0a2c-4e6a-8c0e-2a4c6e8a0c2e")
	}
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to insert user", err, "4a6c8e0a-2c4e-4a8c-9e2a-4c6e8a0c2e4a")
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "unexpected inserted id type", nil, "6c8e0a2c-4e6a-4c0e-a4c6-e8a0c2e4a6c8")
	}
	return id.Hex(), nil
}

func (repo *UserMongoRepository) findOne(ctx context.Context, filter bson.D) (*user.User, error) {
	var doc dbschema.User
	err := repo.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, userNotFound(ctx, err)
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find user", err, "8e0a2c4e-6a8c-4e2a-b6e8-a0c2e4a6c8e0")
	}
	return doc.EtoD(), nil
}

func userNotFound(ctx context.Context, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "user not found", err, "0c2e4a6c-8e0a-4c4e-a8a0-c2e4a6c8e0a2")
}
