package promptrepo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"hr-assistant-api/internal/domain/prompt"
	"hr-assistant-api/internal/infrastructure/database"
	"hr-assistant-api/internal/infrastructure/database/dbschema"
	"hr-assistant-api/internal/utils/platformerrors"
)

type PromptMongoRepository struct {
	coll *mongo.Collection
}

var _ prompt.Repository = (*PromptMongoRepository)(nil)

func NewPromptMongoRepository(db *database.Database) prompt.Repository {
	return &PromptMongoRepository{coll: db.Collection(database.PromptsCollection)}
}

func (repo *PromptMongoRepository) List(ctx context.Context) ([]prompt.Prompt, error) {
	cursor, err := repo.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list prompts", err, "3b5d7f9a-1c3e-4b5d-9f1a-3c5e7b9d1f3a")
	}

	var docs []dbschema.Prompt
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to decode prompts", err, "5d7f9a1c-3e5b-4d7f-a1c3-e5b7d9f1a3c5")
	}

	prompts := make([]prompt.Prompt, 0, len(docs))
	for i := range docs {
		prompts = append(prompts, docs[i].EtoD())
	}
	return prompts, nil
}

func (repo *PromptMongoRepository) SeedIfEmpty(ctx context.Context, prompts []prompt.Prompt) (int, error) {
	count, err := repo.coll.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to count prompts", err, "7f9a1c3e-5b7d-4f9a-83e5-b7d9f1a3c5e7")
	}
	if count > 0 || len(prompts) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(prompts))
	for _, p := range prompts {
		docs = append(docs, dbschema.NewSchemaPrompt(p))
	}
	res, err := repo.coll.InsertMany(ctx, docs)
	if err != nil {
		// Another replica seeding concurrently trips the unique key index.
		if mongo.IsDuplicateKeyError(err) {
			return 0, nil
		}
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to seed prompts", err, "9a1c3e5b-7d9f-4a1c-b5e7-d9f1a3c5e7b9")
	}
	return len(res.InsertedIDs), nil
}
