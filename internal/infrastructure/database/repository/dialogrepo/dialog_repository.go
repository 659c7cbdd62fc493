package dialogrepo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/infrastructure/database"
	"hr-assistant-api/internal/infrastructure/database/dbschema"
	"hr-assistant-api/internal/utils/platformerrors"
)

type DialogMongoRepository struct {
	coll *mongo.Collection
}

var _ dialog.Repository = (*DialogMongoRepository)(nil)

func NewDialogMongoRepository(db *database.Database) dialog.Repository {
	return &DialogMongoRepository{coll: db.Collection(database.DialogsCollection)}
}

func (repo *DialogMongoRepository) Insert(ctx context.Context, record dialog.Session) (string, error) {
	res, err := repo.coll.InsertOne(ctx, dbschema.NewSchemaDialog(record))
	if err != nil {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to insert dialog", err, "9b1d3f5a-7c9e-4b1d-8f3a-5c7e9b1d3f5a")
	}
	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "unexpected inserted id type", nil, "1d3f5a7c-9e1b-4d3f-a5c7-e9b1d3f5a7c9")
	}
	return id.Hex(), nil
}

func (repo *DialogMongoRepository) FindByID(ctx context.Context, id, ownerID string) (*dialog.Session, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, dialogNotFound(ctx, err)
	}

	var doc dbschema.Dialog
	err = repo.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}, {Key: "user_id", Value: ownerID}}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, dialogNotFound(ctx, err)
	}
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to find dialog", err, "3f5a7c9e-1b3d-4f5a-87c9-e1b3d5f7a9c1")
	}
	return doc.EtoD(), nil
}

// UpdateChat replaces the chat only while the stored version still equals
// expectedVersion, and bumps the version on success.
func (repo *DialogMongoRepository) UpdateChat(ctx context.Context, id, ownerID string, chat []dialog.Message, lastMsg time.Time, expectedVersion int64) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return dialogNotFound(ctx, err)
	}

	filter := bson.D{
		{Key: "_id", Value: oid},
		{Key: "user_id", Value: ownerID},
		{Key: "version", Value: expectedVersion},
	}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "chat", Value: dbschema.NewSchemaMessages(chat)},
			{Key: "last_msg", Value: lastMsg},
		}},
		{Key: "$inc", Value: bson.D{{Key: "version", Value: 1}}},
	}

	res, err := repo.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to update dialog", err, "5a7c9e1b-3d5f-4a7c-9e1b-3d5f7a9c1e3b")
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Distinguish a lost race from a dialog that is gone or foreign.
	count, err := repo.coll.CountDocuments(ctx, bson.D{{Key: "_id", Value: oid}, {Key: "user_id", Value: ownerID}})
	if err != nil {
		return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to check dialog", err, "7c9e1b3d-5f7a-4c9e-b1d3-f5a7c9e1b3d5")
	}
	if count == 0 {
		return dialogNotFound(ctx, nil)
	}
	return platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict, "dialog was modified concurrently, retry", nil, "e1b3d5f7-a9c1-4e3b-95f7-a9c1e3b5d7f9", map[string]any{
		"dialog_id":        id,
		"expected_version": expectedVersion,
	})
}

func (repo *DialogMongoRepository) DeleteMany(ctx context.Context, ids []string, ownerID string) (int64, error) {
	oids := make([]bson.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := bson.ObjectIDFromHex(id)
		if err != nil {
			return 0, platformerrors.NewErrorWithContext(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeValidation, "invalid dialog id", err, "b3d5f7a9-c1e3-4b5d-a7f9-c1e3b5d7f9a1", map[string]any{"dialog_id": id})
		}
		oids = append(oids, oid)
	}

	filter := bson.D{
		{Key: "_id", Value: bson.D{{Key: "$in", Value: oids}}},
		{Key: "user_id", Value: ownerID},
	}
	res, err := repo.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to delete dialogs", err, "d5f7a9c1-e3b5-4d7f-89c1-e3b5d7f9a1c3")
	}
	return res.DeletedCount, nil
}

func (repo *DialogMongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]dialog.Summary, error) {
	cursor, err := repo.coll.Aggregate(ctx, listPipeline(ownerID))
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to list dialogs", err, "f7a9c1e3-b5d7-4f9a-b1c3-e5d7f9a1c3e5")
	}

	var docs []dbschema.DialogSummary
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeDatabaseError, "failed to decode dialogs", err, "a9c1e3b5-d7f9-4a1c-83e5-d7f9a1c3e5b7")
	}

	summaries := make([]dialog.Summary, 0, len(docs))
	for i := range docs {
		summaries = append(summaries, docs[i].EtoD())
	}
	return summaries, nil
}

// listPipeline matches the owner's dialogs, oldest first, projected to the list view.
func listPipeline(ownerID string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "user_id", Value: ownerID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: 1}}}},
		{{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "id", Value: bson.D{{Key: "$toString", Value: "$_id"}}},
			{Key: "title", Value: 1},
			{Key: "last_msg", Value: 1},
			{Key: "chat_color", Value: 1},
		}}},
	}
}

func dialogNotFound(ctx context.Context, err error) error {
	return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeNotFound, "dialog not found", err, "c1e3b5d7-f9a1-4c3e-b5d7-f9a1c3e5b7d9")
}
