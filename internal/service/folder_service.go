package service

import (
	"context"
	"strings"
	"time"

	"notepad-be/internal/config"
	"notepad-be/internal/dto"
	"notepad-be/internal/entity"
	"notepad-be/internal/mapper"
	"notepad-be/internal/pkg/apperror"
	"notepad-be/internal/pkg/logger"
	"notepad-be/internal/repository/specification"
	"notepad-be/internal/repository/unitofwork"
	"notepad-be/pkg/events"

	"github.com/cenkalti/backoff/v5"
	"github.com/google/uuid"
)

type IFolderService interface {
	GetAll(ctx context.Context) ([]*dto.FolderResponse, error)
	Create(ctx context.Context, req *dto.CreateFolderRequest) (*dto.FolderResponse, error)
	Rename(ctx context.Context, req *dto.RenameFolderRequest) (*dto.FolderResponse, error)
	// Delete removes the folder and unfiles every note that referenced it.
	Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteFolderResponse, error)
}

type folderService struct {
	uowFactory    unitofwork.RepositoryFactory
	notifier      *ChangeNotifier
	logger        logger.ILogger
	queryTimeout  time.Duration
	retryAttempts int
	retryBackoff  time.Duration
	now           func() time.Time
}

func NewFolderService(
	uowFactory unitofwork.RepositoryFactory,
	notifier *ChangeNotifier,
	log logger.ILogger,
	dbCfg config.DatabaseConfig,
) IFolderService {
	attempts := dbCfg.OrphanRetryAttempts
	if attempts < 1 {
		attempts = 1
	}
	return &folderService{
		uowFactory:    uowFactory,
		notifier:      notifier,
		logger:        log,
		queryTimeout:  dbCfg.QueryTimeout,
		retryAttempts: attempts,
		retryBackoff:  dbCfg.OrphanRetryBackoff,
		now:           systemClock,
	}
}

func (s *folderService) GetAll(ctx context.Context) ([]*dto.FolderResponse, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx, specification.NewestFirst{})
	if err != nil {
		return nil, err
	}
	return mapper.ToFolderResponses(folders), nil
}

func (s *folderService) Create(ctx context.Context, req *dto.CreateFolderRequest) (*dto.FolderResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateRequiredText("name", name); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	now := s.now()
	folder := &entity.Folder{
		Id:        uuid.New(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: &now,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.FolderRepository().Create(ctx, folder); err != nil {
		return nil, err
	}

	s.notifier.Notify(ctx, dto.ChangeMessage{
		Type:       events.FolderCreated,
		FolderId:   &folder.Id,
		OccurredAt: now,
	})
	s.logger.Info("FOLDER", "Folder created", map[string]interface{}{"folder_id": folder.Id.String()})

	return mapper.ToFolderResponse(folder), nil
}

func (s *folderService) Rename(ctx context.Context, req *dto.RenameFolderRequest) (*dto.FolderResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := validateRequiredText("name", name); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folder, err := uow.FolderRepository().UpdateFields(ctx, req.Id, map[string]interface{}{
		"name":       name,
		"updated_at": now,
	})
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, apperror.NewNotFoundError("folder", req.Id)
	}

	s.notifier.Notify(ctx, dto.ChangeMessage{
		Type:       events.FolderRenamed,
		FolderId:   &folder.Id,
		OccurredAt: now,
	})

	return mapper.ToFolderResponse(folder), nil
}

func (s *folderService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteFolderResponse, error) {
	opCtx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	now := s.now()
	uow := s.uowFactory.NewUnitOfWork(opCtx)
	if err := uow.Begin(opCtx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	deleted, err := uow.FolderRepository().Delete(opCtx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperror.NewNotFoundError("folder", id)
	}

	orphaned, err := uow.NoteRepository().UpdateAll(opCtx, orphanFields(now), specification.ByFolderID{FolderID: id})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		reapplied, gone, rerr := s.reconcileFolderDelete(ctx, id, now, err)
		if rerr != nil {
			if gone {
				s.notifier.Notify(ctx, dto.ChangeMessage{
					Type:       events.FolderDeleted,
					FolderId:   &id,
					OccurredAt: now,
				})
			}
			return nil, rerr
		}
		orphaned += reapplied
	}

	s.notifier.Notify(ctx, dto.ChangeMessage{
		Type:       events.FolderDeleted,
		FolderId:   &id,
		Affected:   orphaned,
		OccurredAt: now,
	})
	s.logger.Info("FOLDER", "Folder deleted", map[string]interface{}{
		"folder_id":      id.String(),
		"orphaned_notes": orphaned,
	})

	return &dto.DeleteFolderResponse{
		Id:            id,
		OrphanedNotes: orphaned,
	}, nil
}

func orphanFields(now time.Time) map[string]interface{} {
	return map[string]interface{}{
		"folder_id":  nil,
		"updated_at": now,
	}
}

// reconcileFolderDelete runs when the commit outcome is unknown. A folder that
// still exists means nothing was applied. A folder that is gone means the
// orphaning update is re-applied until it succeeds or attempts run out; gone
// reports whether the folder row was seen to be deleted.
func (s *folderService) reconcileFolderDelete(ctx context.Context, id uuid.UUID, now time.Time, commitErr error) (reapplied int64, gone bool, err error) {
	ctx = context.WithoutCancel(ctx)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retryBackoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0

	stillExists := false
	reapplied, err = backoff.Retry(ctx, func() (int64, error) {
		opCtx, cancel := withTimeout(ctx, s.queryTimeout)
		defer cancel()

		uow := s.uowFactory.NewUnitOfWork(opCtx)
		folder, err := uow.FolderRepository().FindOne(opCtx, specification.ByID{ID: id})
		if err != nil {
			return 0, err
		}
		if folder != nil {
			stillExists = true
			return 0, backoff.Permanent(commitErr)
		}
		gone = true
		return uow.NoteRepository().UpdateAll(opCtx, orphanFields(now), specification.ByFolderID{FolderID: id})
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(s.retryAttempts)),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn("FOLDER", "Orphaning retry failed", map[string]interface{}{
				"folder_id": id.String(),
				"retry_in":  next.String(),
				"error":     err.Error(),
			})
		}),
	)
	if stillExists {
		return 0, false, apperror.NewTransientStorageError("delete folder", commitErr)
	}
	if err == nil {
		return reapplied, true, nil
	}

	consistencyErr := apperror.NewConsistencyError("folder deleted but its notes may still reference it", err)
	s.logger.Error("FOLDER", "Folder delete left dangling note references", map[string]interface{}{
		"folder_id": id.String(),
		"error":     consistencyErr,
	})
	return 0, gone, consistencyErr
}
