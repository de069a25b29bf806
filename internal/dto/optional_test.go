package dto

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateNoteRequest_FieldPresence(t *testing.T) {
	folderId := uuid.MustParse("0b7f3f5c-3c1a-4a43-8e8c-0c7a4a0b9d21")

	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, req UpdateNoteRequest)
	}{
		{
			name: "absent fields stay absent",
			body: `{}`,
			check: func(t *testing.T, req UpdateNoteRequest) {
				assert.False(t, req.Title.Present)
				assert.False(t, req.Favorite.Present)
				assert.False(t, req.FolderId.Present)
			},
		},
		{
			name: "null folder clears",
			body: `{"folder_id": null}`,
			check: func(t *testing.T, req UpdateNoteRequest) {
				assert.True(t, req.FolderId.Present)
				assert.True(t, req.FolderId.IsNull())
			},
		},
		{
			name: "values are captured",
			body: `{"title": "New", "favorite": false, "folder_id": "0b7f3f5c-3c1a-4a43-8e8c-0c7a4a0b9d21"}`,
			check: func(t *testing.T, req UpdateNoteRequest) {
				require.NotNil(t, req.Title.Value)
				assert.Equal(t, "New", *req.Title.Value)
				require.NotNil(t, req.Favorite.Value)
				assert.False(t, *req.Favorite.Value)
				require.NotNil(t, req.FolderId.Value)
				assert.Equal(t, folderId, *req.FolderId.Value)
				assert.False(t, req.Description.Present)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateNoteRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			tt.check(t, req)
		})
	}
}

func TestOptional_RejectsWrongType(t *testing.T) {
	var req UpdateNoteRequest
	assert.Error(t, json.Unmarshal([]byte(`{"favorite": "yes"}`), &req))
}
