package dialogrepo

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"hr-assistant-api/internal/domain/dialog"
	"hr-assistant-api/internal/infrastructure/database"
	"hr-assistant-api/internal/utils/platformerrors"
)

func TestListPipeline(t *testing.T) {
	pipeline := listPipeline("user-1")
	require.Len(t, pipeline, 3)
	assert.Equal(t, "$match", pipeline[0][0].Key)
	assert.Equal(t, bson.D{{Key: "user_id", Value: "user-1"}}, pipeline[0][0].Value)
	assert.Equal(t, "$sort", pipeline[1][0].Key)
	assert.Equal(t, bson.D{{Key: "created_at", Value: 1}}, pipeline[1][0].Value)
	assert.Equal(t, "$project", pipeline[2][0].Key)
}

// newTestRepository connects to MONGO_TEST_URI and skips when it is unset.
func newTestRepository(t *testing.T) dialog.Repository {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, database.Config{
		URI:      uri,
		Database: "hr_assistant_test_" + bson.NewObjectID().Hex(),
		Timeout:  5 * time.Second,
	}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db.EnsureIndexes(ctx))
	t.Cleanup(func() {
		_ = db.Collection(database.DialogsCollection).Database().Drop(context.Background())
		_ = db.Close(context.Background())
	})
	return NewDialogMongoRepository(db)
}

func newRecord(t *testing.T, owner, title string, at time.Time) dialog.Session {
	t.Helper()
	s, err := dialog.NewSession(title, owner, func() time.Time { return at })
	require.NoError(t, err)
	require.NoError(t, s.Seed("You are an HR assistant.", "How can I help you today?"))
	return s.Record()
}

func TestDialogMongoRepository_Lifecycle(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	firstID, err := repo.Insert(ctx, newRecord(t, "alice", "Vacation", base))
	require.NoError(t, err)
	secondID, err := repo.Insert(ctx, newRecord(t, "alice", "Payroll", base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = repo.Insert(ctx, newRecord(t, "bob", "Bob's dialog", base))
	require.NoError(t, err)

	list, err := repo.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, firstID, list[0].ID)
	assert.Equal(t, "Payroll", list[1].Title)

	found, err := repo.FindByID(ctx, firstID, "alice")
	require.NoError(t, err)
	assert.Len(t, found.Chat, 2)

	_, err = repo.FindByID(ctx, firstID, "bob")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))
	_, err = repo.FindByID(ctx, "not-hex", "alice")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	chat := append(found.Chat, dialog.Message{Role: dialog.RoleUser, Content: "Hi", CreatedAt: base.Add(2 * time.Minute)})
	require.NoError(t, repo.UpdateChat(ctx, firstID, "alice", chat, base.Add(2*time.Minute), 0))

	err = repo.UpdateChat(ctx, firstID, "alice", chat, base.Add(3*time.Minute), 0)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeConflict))

	err = repo.UpdateChat(ctx, firstID, "bob", chat, base.Add(3*time.Minute), 1)
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeNotFound))

	deleted, err := repo.DeleteMany(ctx, []string{firstID, secondID}, "bob")
	require.NoError(t, err)
	assert.Zero(t, deleted)

	deleted, err = repo.DeleteMany(ctx, []string{firstID, secondID}, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	_, err = repo.DeleteMany(ctx, []string{"zzz"}, "alice")
	assert.True(t, platformerrors.IsErrorType(err, platformerrors.ErrorTypeValidation))
}
