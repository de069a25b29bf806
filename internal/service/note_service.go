package service

import (
	"context"
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
	"notepad-be/pkg/search"

	"github.com/google/uuid"
)

type INoteService interface {
	Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error)
	Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error)
	Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteNoteResponse, error)
	List(ctx context.Context, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error)
	Search(ctx context.Context, req *dto.ListNotesRequest) ([]*dto.NoteSearchResult, error)
}

type noteService struct {
	uowFactory   unitofwork.RepositoryFactory
	notifier     *ChangeNotifier
	logger       logger.ILogger
	queryTimeout time.Duration
	now          func() time.Time
}

func NewNoteService(
	uowFactory unitofwork.RepositoryFactory,
	notifier *ChangeNotifier,
	log logger.ILogger,
	dbCfg config.DatabaseConfig,
) INoteService {
	return &noteService{
		uowFactory:   uowFactory,
		notifier:     notifier,
		logger:       log,
		queryTimeout: dbCfg.QueryTimeout,
		now:          systemClock,
	}
}

func (c *noteService) Create(ctx context.Context, req *dto.CreateNoteRequest) (*dto.NoteResponse, error) {
	if err := validateRequiredText("title", req.Title); err != nil {
		return nil, err
	}
	if err := validateRequiredText("description", req.Description); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, c.queryTimeout)
	defer cancel()

	now := c.now()
	note := &entity.Note{
		Id:          uuid.New(),
		Title:       req.Title,
		Description: req.Description,
		Favorite:    false,
		FolderId:    req.FolderId,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)
	if err := uow.NoteRepository().Create(ctx, note); err != nil {
		return nil, err
	}

	// folder_id is not checked on write; a missing folder reads back as a nil name.
	joined, err := attachFolderNames(ctx, uow.FolderRepository(), []*entity.Note{note})
	if err != nil {
		return nil, err
	}

	c.notifier.Notify(ctx, dto.ChangeMessage{
		Type:       events.NoteCreated,
		NoteId:     &note.Id,
		FolderId:   note.FolderId,
		OccurredAt: now,
	})

	return mapper.ToNoteResponse(joined[0]), nil
}

func (c *noteService) Show(ctx context.Context, id uuid.UUID) (*dto.NoteResponse, error) {
	ctx, cancel := withTimeout(ctx, c.queryTimeout)
	defer cancel()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	note, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("note", id)
	}

	joined, err := attachFolderNames(ctx, uow.FolderRepository(), []*entity.Note{note})
	if err != nil {
		return nil, err
	}
	return mapper.ToNoteResponse(joined[0]), nil
}

func (c *noteService) Update(ctx context.Context, req *dto.UpdateNoteRequest) (*dto.NoteResponse, error) {
	fields, err := noteUpdateFields(req)
	if err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, c.queryTimeout)
	defer cancel()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	current, err := uow.NoteRepository().FindOne(ctx, specification.ByID{ID: req.Id})
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperror.NewNotFoundError("note", req.Id)
	}

	updatedAt := nextUpdatedAt(c.now(), current.UpdatedAt)
	fields["updated_at"] = updatedAt

	note, err := uow.NoteRepository().UpdateFields(ctx, req.Id, fields)
	if err != nil {
		return nil, err
	}
	if note == nil {
		// deleted between the read and the write
		return nil, apperror.NewNotFoundError("note", req.Id)
	}

	joined, err := attachFolderNames(ctx, uow.FolderRepository(), []*entity.Note{note})
	if err != nil {
		return nil, err
	}

	c.notifier.Notify(ctx, dto.ChangeMessage{
		Type:       events.NoteUpdated,
		NoteId:     &note.Id,
		FolderId:   note.FolderId,
		OccurredAt: updatedAt,
	})

	return mapper.ToNoteResponse(joined[0]), nil
}

// noteUpdateFields turns the present fields of a patch into a column map.
// Only folder_id accepts null.
func noteUpdateFields(req *dto.UpdateNoteRequest) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, 5)

	if req.Title.Present {
		if req.Title.IsNull() {
			return nil, apperror.NewValidationError("title", "cannot be null")
		}
		if err := validateRequiredText("title", *req.Title.Value); err != nil {
			return nil, err
		}
		fields["title"] = *req.Title.Value
	}

	if req.Description.Present {
		if req.Description.IsNull() {
			return nil, apperror.NewValidationError("description", "cannot be null")
		}
		if err := validateRequiredText("description", *req.Description.Value); err != nil {
			return nil, err
		}
		fields["description"] = *req.Description.Value
	}

	if req.Favorite.Present {
		if req.Favorite.IsNull() {
			return nil, apperror.NewValidationError("favorite", "cannot be null")
		}
		fields["favorite"] = *req.Favorite.Value
	}

	if req.FolderId.Present {
		if req.FolderId.IsNull() {
			fields["folder_id"] = nil
		} else {
			fields["folder_id"] = *req.FolderId.Value
		}
	}

	return fields, nil
}

func (c *noteService) Delete(ctx context.Context, id uuid.UUID) (*dto.DeleteNoteResponse, error) {
	ctx, cancel := withTimeout(ctx, c.queryTimeout)
	defer cancel()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	deleted, err := uow.NoteRepository().Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, apperror.NewNotFoundError("note", id)
	}

	c.notifier.Notify(ctx, dto.ChangeMessage{
		Type:       events.NoteDeleted,
		NoteId:     &id,
		OccurredAt: c.now(),
	})

	return &dto.DeleteNoteResponse{Id: id}, nil
}

// List returns notes matching the filter, newest first, narrowed by the
// free-text query when one is given.
func (c *noteService) List(ctx context.Context, req *dto.ListNotesRequest) ([]*dto.NoteResponse, error) {
	notes, err := c.findWithFolders(ctx, req.Filter)
	if err != nil {
		return nil, err
	}
	return mapper.ToNoteResponses(search.FilterNotes(notes, req.Query)), nil
}

// Search applies /in: and /title: directives and the remaining term, then
// computes highlight spans for title and description.
func (c *noteService) Search(ctx context.Context, req *dto.ListNotesRequest) ([]*dto.NoteSearchResult, error) {
	notes, err := c.findWithFolders(ctx, req.Filter)
	if err != nil {
		return nil, err
	}

	query := search.ParseQuery(req.Query)
	matched := query.Apply(notes)

	res := make([]*dto.NoteSearchResult, len(matched))
	for i, n := range matched {
		res[i] = &dto.NoteSearchResult{
			Note:             mapper.ToNoteResponse(n),
			TitleSpans:       search.HighlightSpans(n.Title, query.Term),
			DescriptionSpans: search.HighlightSpans(n.Description, query.Term),
		}
	}
	return res, nil
}

func (c *noteService) findWithFolders(ctx context.Context, filter entity.NoteFilter) ([]*entity.NoteWithFolder, error) {
	ctx, cancel := withTimeout(ctx, c.queryTimeout)
	defer cancel()

	uow := c.uowFactory.NewUnitOfWork(ctx)
	specs := append(specification.ForNoteFilter(filter), specification.NewestFirst{})
	notes, err := uow.NoteRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	return attachFolderNames(ctx, uow.FolderRepository(), notes)
}
