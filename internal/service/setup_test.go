package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"notepad-be/internal/config"
	"notepad-be/internal/dto"
	"notepad-be/internal/pkg/logger"
	"notepad-be/internal/repository/contract"
	"notepad-be/internal/repository/memory"
	"notepad-be/internal/repository/specification"
	"notepad-be/internal/repository/unitofwork"
	"notepad-be/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testStart = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type testEnv struct {
	db       *gorm.DB
	factory  unitofwork.RepositoryFactory
	cache    *memory.OverviewCache
	folders  *folderService
	notes    *noteService
	overview *folderOverviewService
}

func testDBConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		QueryTimeout:        5 * time.Second,
		OrphanRetryAttempts: 3,
		OrphanRetryBackoff:  time.Millisecond,
	}
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewTestDB(t)
	return newTestEnvWithFactory(t, db, unitofwork.NewRepositoryFactory(db))
}

func newTestEnvWithFactory(t *testing.T, db *gorm.DB, factory unitofwork.RepositoryFactory) *testEnv {
	t.Helper()

	log := logger.NewNopLogger()
	cache := memory.NewOverviewCache(time.Minute)
	notifier := NewChangeNotifier(nil, cache, log)
	clock := testutil.NewStepClock(testStart, time.Second)

	folders := NewFolderService(factory, notifier, log, testDBConfig()).(*folderService)
	folders.now = clock.Now
	notes := NewNoteService(factory, notifier, log, testDBConfig()).(*noteService)
	notes.now = clock.Now
	overview := NewFolderOverviewService(factory, cache, testDBConfig(), config.OverviewConfig{Concurrency: 2}).(*folderOverviewService)

	return &testEnv{
		db:       db,
		factory:  factory,
		cache:    cache,
		folders:  folders,
		notes:    notes,
		overview: overview,
	}
}

func (e *testEnv) createFolder(t *testing.T, name string) *dto.FolderResponse {
	t.Helper()
	folder, err := e.folders.Create(context.Background(), &dto.CreateFolderRequest{Name: name})
	require.NoError(t, err)
	return folder
}

func (e *testEnv) createNote(t *testing.T, title string, folderId *uuid.UUID) *dto.NoteResponse {
	t.Helper()
	note, err := e.notes.Create(context.Background(), &dto.CreateNoteRequest{
		Title:       title,
		Description: title + " body",
		FolderId:    folderId,
	})
	require.NoError(t, err)
	return note
}

func (e *testEnv) countInFolder(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	n, err := e.factory.NewUnitOfWork(context.Background()).NoteRepository().Count(context.Background(),
		specification.ByFolderID{FolderID: id})
	require.NoError(t, err)
	return n
}

// faultyFactory wraps real units of work and injects failures into the
// folder delete path.
type faultyFactory struct {
	inner unitofwork.RepositoryFactory

	commitErr       error // returned by Commit when set
	applyCommit     bool  // commit for real before reporting commitErr
	skipTxOrphaning bool  // UpdateAll inside the transaction does nothing
	orphanErr       error // UpdateAll outside a transaction fails

	mu          sync.Mutex
	orphanCalls int
}

func (f *faultyFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &faultyUnitOfWork{UnitOfWork: f.inner.NewUnitOfWork(ctx), f: f}
}

type faultyUnitOfWork struct {
	unitofwork.UnitOfWork
	f    *faultyFactory
	inTx bool
}

func (u *faultyUnitOfWork) Begin(ctx context.Context) error {
	u.inTx = true
	return u.UnitOfWork.Begin(ctx)
}

func (u *faultyUnitOfWork) Commit() error {
	if u.f.commitErr == nil {
		return u.UnitOfWork.Commit()
	}
	if u.f.applyCommit {
		if err := u.UnitOfWork.Commit(); err != nil {
			return err
		}
	} else {
		_ = u.UnitOfWork.Rollback()
	}
	return u.f.commitErr
}

func (u *faultyUnitOfWork) NoteRepository() contract.NoteRepository {
	return &faultyNoteRepository{NoteRepository: u.UnitOfWork.NoteRepository(), u: u}
}

type faultyNoteRepository struct {
	contract.NoteRepository
	u *faultyUnitOfWork
}

func (r *faultyNoteRepository) UpdateAll(ctx context.Context, fields map[string]interface{}, specs ...specification.Specification) (int64, error) {
	f := r.u.f
	if r.u.inTx && f.skipTxOrphaning {
		return 0, nil
	}
	if !r.u.inTx && f.orphanErr != nil {
		f.mu.Lock()
		f.orphanCalls++
		f.mu.Unlock()
		return 0, f.orphanErr
	}
	return r.NoteRepository.UpdateAll(ctx, fields, specs...)
}
