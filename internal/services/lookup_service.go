package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yellowsense/jobswipe/internal/models"
)

// LookupService resolves a job ID for the detail view from what is already
// loaded instead of refetching a page per view.
type LookupService struct {
	Jobs      *Reconciler
	Bookmarks *BookmarkService
}

func NewLookupService(jobs *Reconciler, bookmarks *BookmarkService) *LookupService {
	return &LookupService{Jobs: jobs, Bookmarks: bookmarks}
}

// Find checks the loaded list, then the bookmarks. If nothing has been loaded
// yet (a deep link) it loads the first page once and checks again. A load
// already running is reported as ErrLoadInProgress rather than a miss.
func (s *LookupService) Find(ctx context.Context, id int) (models.JobRecord, error) {
	job, ok, err := s.find(ctx, id)
	if err != nil || ok {
		return job, err
	}

	if !s.Jobs.Snapshot().Loaded {
		if _, err := s.Jobs.LoadNext(ctx); err != nil && !errors.Is(err, ErrNoMorePages) {
			return models.JobRecord{}, err
		}
		if job, ok := s.Jobs.Get(id); ok {
			return job, nil
		}
	}
	return models.JobRecord{}, ErrJobNotFound
}

func (s *LookupService) find(ctx context.Context, id int) (models.JobRecord, bool, error) {
	if job, ok := s.Jobs.Get(id); ok {
		return job, true, nil
	}
	job, ok, err := s.Bookmarks.Get(ctx, id)
	if err != nil {
		return models.JobRecord{}, false, fmt.Errorf("look up job %d: %w", id, err)
	}
	return job, ok, nil
}
