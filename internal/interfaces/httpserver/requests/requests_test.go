package requests

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_Register(t *testing.T) {
	req := &RegisterRequest{Name: " Alice ", Username: " alice ", Password: "secret1"}
	require.NoError(t, Validate(req))
	assert.Equal(t, "Alice", req.Name)
	assert.Equal(t, "alice", req.Username)

	err := Validate(&RegisterRequest{Name: "Alice", Username: "alice", Password: "12345"})
	require.Error(t, err)
	assert.Equal(t, "password is too short (min 6)", err.Error())

	err = Validate(&RegisterRequest{Name: "   ", Username: "alice", Password: "secret1"})
	assert.EqualError(t, err, "name is required")
}

func TestValidate_Chat(t *testing.T) {
	assert.NoError(t, Validate(&StartChatRequest{Question: "How many vacation days?", AnswerLength: 100}))
	assert.EqualError(t, Validate(&StartChatRequest{Question: "  ", AnswerLength: 100}), "question is required")
	assert.EqualError(t, Validate(&StartChatRequest{Question: "hi", AnswerLength: 0}), "answer_length must be at least 1")
	assert.EqualError(t, Validate(&ContinueChatRequest{Question: "hi", AnswerLength: 5}), "dialog is required")
}

func TestValidate_Delete(t *testing.T) {
	assert.EqualError(t, Validate(&DeleteDialogsRequest{}), "dialogs_ids is required")
	assert.Error(t, Validate(&DeleteDialogsRequest{DialogsIDs: []string{}}))
	assert.NoError(t, Validate(&DeleteDialogsRequest{DialogsIDs: []string{"665f1c2e8b3a4d5e6f708192"}}))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	type lookupRequest struct {
		DialogID string `json:"dialog_id,omitempty" validate:"required"`
		Internal string `json:"-" validate:"required"`
	}

	assert.EqualError(t, Validate(&lookupRequest{Internal: "x"}), "dialog_id is required")
	assert.EqualError(t, Validate(&lookupRequest{DialogID: "x"}), "Internal is required")
}
