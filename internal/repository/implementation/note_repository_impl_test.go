package implementation

import (
	"context"
	"testing"
	"time"

	"notepad-be/internal/entity"
	"notepad-be/internal/repository/specification"
	"notepad-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedNote(t *testing.T, repo *NoteRepositoryImpl, title string, folderId *uuid.UUID, createdAt time.Time) *entity.Note {
	t.Helper()
	note := &entity.Note{
		Title:       title,
		Description: "body",
		FolderId:    folderId,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
	require.NoError(t, repo.Create(context.Background(), note))
	return note
}

func TestNoteRepository_CreateAssignsId(t *testing.T) {
	repo := NewNoteRepository(testutil.NewTestDB(t)).(*NoteRepositoryImpl)

	note := seedNote(t, repo, "Fresh", nil, time.Now().UTC())

	assert.NotEqual(t, uuid.Nil, note.Id)
	assert.False(t, note.Favorite)
}

func TestNoteRepository_UpdateFields(t *testing.T) {
	repo := NewNoteRepository(testutil.NewTestDB(t)).(*NoteRepositoryImpl)
	ctx := context.Background()
	folderId := uuid.New()
	note := seedNote(t, repo, "Before", &folderId, time.Now().UTC())

	updated, err := repo.UpdateFields(ctx, note.Id, map[string]interface{}{
		"title":     "After",
		"folder_id": nil,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "After", updated.Title)
	assert.Nil(t, updated.FolderId)

	missing, err := repo.UpdateFields(ctx, uuid.New(), map[string]interface{}{"title": "x"})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestNoteRepository_UpdateAllAndCount(t *testing.T) {
	repo := NewNoteRepository(testutil.NewTestDB(t)).(*NoteRepositoryImpl)
	ctx := context.Background()
	target, other := uuid.New(), uuid.New()
	now := time.Now().UTC()

	seedNote(t, repo, "a", &target, now)
	seedNote(t, repo, "b", &target, now)
	seedNote(t, repo, "c", &other, now)

	n, err := repo.UpdateAll(ctx, map[string]interface{}{"folder_id": nil}, specification.ByFolderID{FolderID: target})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	again, err := repo.UpdateAll(ctx, map[string]interface{}{"folder_id": nil}, specification.ByFolderID{FolderID: target})
	require.NoError(t, err)
	assert.Zero(t, again, "orphaning is idempotent")

	unfiled, err := repo.Count(ctx, specification.WithoutFolder{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), unfiled)
}

func TestNoteRepository_FindAllAppliesFilterAndOrder(t *testing.T) {
	repo := NewNoteRepository(testutil.NewTestDB(t)).(*NoteRepositoryImpl)
	ctx := context.Background()
	folderId := uuid.New()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedNote(t, repo, "old", &folderId, base)
	seedNote(t, repo, "new", &folderId, base.Add(time.Minute))
	seedNote(t, repo, "elsewhere", nil, base.Add(2*time.Minute))

	filter := entity.NoteFilter{Folder: entity.ScopeFolder(folderId)}
	specs := append(specification.ForNoteFilter(filter), specification.NewestFirst{})

	notes, err := repo.FindAll(ctx, specs...)
	require.NoError(t, err)
	require.Len(t, notes, 2)
	assert.Equal(t, "new", notes[0].Title)
	assert.Equal(t, "old", notes[1].Title)
}

func TestNoteRepository_DeleteAndFindOne(t *testing.T) {
	repo := NewNoteRepository(testutil.NewTestDB(t)).(*NoteRepositoryImpl)
	ctx := context.Background()
	note := seedNote(t, repo, "gone", nil, time.Now().UTC())

	deleted, err := repo.Delete(ctx, note.Id)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, note.Id)
	require.NoError(t, err)
	assert.False(t, deleted)

	found, err := repo.FindOne(ctx, specification.ByID{ID: note.Id})
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestNoteRepository_CanceledContextIsTransient(t *testing.T) {
	repo := NewNoteRepository(testutil.NewTestDB(t)).(*NoteRepositoryImpl)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.FindAll(ctx)
	require.Error(t, err)
	assert.True(t, isTransient(err))
}
