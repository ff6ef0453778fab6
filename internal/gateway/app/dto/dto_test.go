package dto_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentities "notekeeper/internal/auth/domain/entities"
	"notekeeper/internal/gateway/app/dto"
	"notekeeper/internal/notes/domain/entities"
)

func TestEditNoteRequestPatch(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		hasTags bool
		empty   bool
	}{
		{name: "absent tags", body: `{"isPinned":true}`, empty: true},
		{name: "null tags", body: `{"tags":null}`, empty: true},
		{name: "empty tags are present", body: `{"tags":[]}`, hasTags: true},
		{name: "title only", body: `{"title":"T"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req dto.EditNoteRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			patch := req.Patch()
			assert.Equal(t, tt.hasTags, patch.HasTags)
			assert.Equal(t, tt.empty, patch.Empty())
		})
	}
}

func TestNoteJSONShape(t *testing.T) {
	created := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	raw, err := json.Marshal(dto.NewNote(&entities.Note{
		ID: "n1", Title: "T", Content: "C", UserID: "u1", CreatedOn: created,
	}))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"_id":"n1","title":"T","content":"C","tags":[],"isPinned":false,
		"userId":"u1","createdOn":"2025-01-01T00:00:00Z"
	}`, string(raw))

	list, err := json.Marshal(dto.NewNotes(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(list))
}

func TestUserJSONHasNoPassword(t *testing.T) {
	raw, err := json.Marshal(dto.NewUser(&authentities.User{
		ID: "u1", FullName: "Ann", Email: "ann@x.io", PasswordHash: "secret-hash",
	}))
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret-hash")
	assert.NotContains(t, string(raw), "password")
	assert.Contains(t, string(raw), `"_id":"u1"`)
}
