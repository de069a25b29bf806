package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"notepad-be/internal/dto"
	"notepad-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFolderService_Create(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain name", input: "Work", want: "Work"},
		{name: "surrounding whitespace trimmed", input: "  Home  ", want: "Home"},
		{name: "long name is not capped", input: strings.Repeat("f", 300), want: strings.Repeat("f", 300)},
		{name: "empty name", input: "", wantErr: true},
		{name: "blank name", input: "   \t", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			folder, err := env.folders.Create(context.Background(), &dto.CreateFolderRequest{Name: tt.input})
			if tt.wantErr {
				assert.ErrorIs(t, err, apperror.ErrValidation)
				assert.Nil(t, folder)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, folder.Name)
			assert.NotEqual(t, uuid.Nil, folder.Id)
			assert.False(t, folder.CreatedAt.IsZero())
		})
	}
}

func TestFolderService_DuplicateNamesAllowed(t *testing.T) {
	env := newTestEnv(t)

	first := env.createFolder(t, "Ideas")
	second := env.createFolder(t, "Ideas")

	assert.NotEqual(t, first.Id, second.Id)
}

func TestFolderService_GetAll_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.createFolder(t, "Oldest")
	env.createFolder(t, "Middle")
	env.createFolder(t, "Newest")

	folders, err := env.folders.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, folders, 3)

	assert.Equal(t, "Newest", folders[0].Name)
	assert.Equal(t, "Middle", folders[1].Name)
	assert.Equal(t, "Oldest", folders[2].Name)
}

func TestFolderService_Rename(t *testing.T) {
	env := newTestEnv(t)
	folder := env.createFolder(t, "Drafts")

	t.Run("renames existing folder", func(t *testing.T) {
		renamed, err := env.folders.Rename(context.Background(), &dto.RenameFolderRequest{Id: folder.Id, Name: " Final "})
		require.NoError(t, err)
		assert.Equal(t, "Final", renamed.Name)
		assert.Equal(t, folder.Id, renamed.Id)
		assert.True(t, renamed.CreatedAt.Equal(folder.CreatedAt))
	})

	t.Run("blank name rejected", func(t *testing.T) {
		_, err := env.folders.Rename(context.Background(), &dto.RenameFolderRequest{Id: folder.Id, Name: "  "})
		assert.ErrorIs(t, err, apperror.ErrValidation)
	})

	t.Run("unknown folder", func(t *testing.T) {
		_, err := env.folders.Rename(context.Background(), &dto.RenameFolderRequest{Id: uuid.New(), Name: "Anything"})
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}

func TestFolderService_Delete_OrphansEveryNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	doomed := env.createFolder(t, "Doomed")
	kept := env.createFolder(t, "Kept")

	var doomedNotes []uuid.UUID
	for _, title := range []string{"a", "b", "c"} {
		doomedNotes = append(doomedNotes, env.createNote(t, title, &doomed.Id).Id)
	}
	keptNote := env.createNote(t, "stays", &kept.Id)
	env.createNote(t, "loose", nil)

	res, err := env.folders.Delete(ctx, doomed.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.OrphanedNotes)

	all, err := env.notes.List(ctx, &dto.ListNotesRequest{})
	require.NoError(t, err)
	require.Len(t, all, 5)

	byId := make(map[uuid.UUID]*dto.NoteResponse, len(all))
	for _, n := range all {
		byId[n.Id] = n
	}
	for _, id := range doomedNotes {
		require.Contains(t, byId, id)
		assert.Nil(t, byId[id].FolderId)
		assert.Nil(t, byId[id].FolderName)
	}
	require.NotNil(t, byId[keptNote.Id].FolderId)
	assert.Equal(t, kept.Id, *byId[keptNote.Id].FolderId)

	assert.Zero(t, env.countInFolder(t, doomed.Id))
}

func TestFolderService_Delete_UnknownFolderLeavesNotes(t *testing.T) {
	env := newTestEnv(t)

	// a note may reference an id that never belonged to a folder
	ghost := uuid.New()
	env.createNote(t, "dangling", &ghost)

	_, err := env.folders.Delete(context.Background(), ghost)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Equal(t, int64(1), env.countInFolder(t, ghost))
}

func TestFolderService_Delete_CommitFailures(t *testing.T) {
	commitErr := errors.New("connection reset during commit")

	t.Run("rolled back commit reports transient error", func(t *testing.T) {
		base := newTestEnv(t)
		faulty := &faultyFactory{inner: base.factory, commitErr: commitErr}
		env := newTestEnvWithFactory(t, base.db, faulty)

		folder := env.createFolder(t, "Inbox")
		env.createNote(t, "kept", &folder.Id)

		_, err := env.folders.Delete(context.Background(), folder.Id)
		assert.ErrorIs(t, err, apperror.ErrTransient)

		folders, err := env.folders.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, folders, 1)
		assert.Equal(t, int64(1), env.countInFolder(t, folder.Id))
	})

	t.Run("applied commit re-orphans dangling notes", func(t *testing.T) {
		base := newTestEnv(t)
		faulty := &faultyFactory{
			inner:           base.factory,
			commitErr:       commitErr,
			applyCommit:     true,
			skipTxOrphaning: true,
		}
		env := newTestEnvWithFactory(t, base.db, faulty)

		folder := env.createFolder(t, "Inbox")
		env.createNote(t, "one", &folder.Id)
		env.createNote(t, "two", &folder.Id)

		res, err := env.folders.Delete(context.Background(), folder.Id)
		require.NoError(t, err)
		assert.Equal(t, int64(2), res.OrphanedNotes)
		assert.Zero(t, env.countInFolder(t, folder.Id))
	})

	t.Run("exhausted retries surface consistency error", func(t *testing.T) {
		base := newTestEnv(t)
		faulty := &faultyFactory{
			inner:           base.factory,
			commitErr:       commitErr,
			applyCommit:     true,
			skipTxOrphaning: true,
			orphanErr:       apperror.NewTransientStorageError("update notes", errors.New("timeout")),
		}
		env := newTestEnvWithFactory(t, base.db, faulty)

		folder := env.createFolder(t, "Inbox")
		env.createNote(t, "stuck", &folder.Id)

		_, err := env.folders.Delete(context.Background(), folder.Id)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrConsistency)

		var consistencyErr *apperror.ConsistencyError
		require.ErrorAs(t, err, &consistencyErr)
		assert.Equal(t, 500, consistencyErr.StatusCode())
		assert.Equal(t, testDBConfig().OrphanRetryAttempts, faulty.orphanCalls)
	})
}

func TestFolderService_Delete_ConsistencyFailureDropsOverviewSnapshot(t *testing.T) {
	base := newTestEnv(t)
	faulty := &faultyFactory{
		inner:           base.factory,
		commitErr:       errors.New("connection reset during commit"),
		applyCommit:     true,
		skipTxOrphaning: true,
		orphanErr:       apperror.NewTransientStorageError("update notes", errors.New("timeout")),
	}
	env := newTestEnvWithFactory(t, base.db, faulty)

	folder := env.createFolder(t, "Inbox")
	env.createNote(t, "stuck", &folder.Id)

	before, err := env.overview.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, before.Folders, 1)

	_, err = env.folders.Delete(context.Background(), folder.Id)
	require.ErrorIs(t, err, apperror.ErrConsistency)

	after, err := env.overview.Overview(context.Background())
	require.NoError(t, err)
	assert.Empty(t, after.Folders)
}

func TestFolderService_Delete_DropsOverviewSnapshot(t *testing.T) {
	env := newTestEnv(t)
	folder := env.createFolder(t, "Temp")

	before, err := env.overview.Overview(context.Background())
	require.NoError(t, err)
	require.Len(t, before.Folders, 1)

	_, err = env.folders.Delete(context.Background(), folder.Id)
	require.NoError(t, err)

	after, err := env.overview.Overview(context.Background())
	require.NoError(t, err)
	assert.Empty(t, after.Folders)
}
