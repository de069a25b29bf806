package service

import (
	"context"
	"time"

	"notepad-be/internal/config"
	"notepad-be/internal/dto"
	"notepad-be/internal/entity"
	"notepad-be/internal/mapper"
	"notepad-be/internal/repository/memory"
	"notepad-be/internal/repository/specification"
	"notepad-be/internal/repository/unitofwork"

	"golang.org/x/sync/errgroup"
)

type IFolderOverviewService interface {
	// FoldersWithNotes returns every folder, newest first, with its notes
	// (newest first) and their count.
	FoldersWithNotes(ctx context.Context) ([]*dto.FolderWithNotesResponse, error)
	TotalNoteCount(ctx context.Context) (int64, error)
	// Overview combines both, served from the snapshot cache when fresh.
	Overview(ctx context.Context) (*dto.FoldersOverviewResponse, error)
}

type folderOverviewService struct {
	uowFactory   unitofwork.RepositoryFactory
	cache        *memory.OverviewCache
	queryTimeout time.Duration
	concurrency  int
}

func NewFolderOverviewService(
	uowFactory unitofwork.RepositoryFactory,
	cache *memory.OverviewCache,
	dbCfg config.DatabaseConfig,
	overviewCfg config.OverviewConfig,
) IFolderOverviewService {
	concurrency := overviewCfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	return &folderOverviewService{
		uowFactory:   uowFactory,
		cache:        cache,
		queryTimeout: dbCfg.QueryTimeout,
		concurrency:  concurrency,
	}
}

func (s *folderOverviewService) FoldersWithNotes(ctx context.Context) ([]*dto.FolderWithNotesResponse, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	folders, err := s.uowFactory.NewUnitOfWork(ctx).FolderRepository().FindAll(ctx, specification.NewestFirst{})
	if err != nil {
		return nil, err
	}

	results := make([]*dto.FolderWithNotesResponse, len(folders))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, folder := range folders {
		g.Go(func() error {
			notes, err := s.uowFactory.NewUnitOfWork(gctx).NoteRepository().FindAll(gctx,
				specification.ByFolderID{FolderID: folder.Id},
				specification.NewestFirst{},
			)
			if err != nil {
				return err
			}
			results[i] = mapper.ToFolderWithNotesResponse(&entity.FolderWithNotes{
				Folder:    *folder,
				Notes:     notes,
				NoteCount: len(notes),
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *folderOverviewService) TotalNoteCount(ctx context.Context) (int64, error) {
	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	return s.uowFactory.NewUnitOfWork(ctx).NoteRepository().Count(ctx)
}

func (s *folderOverviewService) Overview(ctx context.Context) (*dto.FoldersOverviewResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(); ok {
			return cached, nil
		}
	}

	var gen uint64
	if s.cache != nil {
		gen = s.cache.Generation()
	}

	folders, err := s.FoldersWithNotes(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.TotalNoteCount(ctx)
	if err != nil {
		return nil, err
	}

	overview := &dto.FoldersOverviewResponse{
		Folders:        folders,
		TotalNoteCount: total,
	}
	if s.cache != nil {
		s.cache.SaveIfCurrent(gen, overview)
	}
	return overview, nil
}
