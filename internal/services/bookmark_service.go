package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/yellowsense/jobswipe/internal/models"
	"github.com/yellowsense/jobswipe/internal/storage"
)

// BookmarksKey is the storage key holding the JSON array of bookmarked jobs.
const BookmarksKey = "bookmarkedJobs"

// BookmarkService keeps the bookmark set in a storage.Adapter. Each mutation
// reads, modifies and writes the whole set under one lock.
type BookmarkService struct {
	Store storage.Adapter
	mu    sync.Mutex
}

func NewBookmarkService(store storage.Adapter) *BookmarkService {
	return &BookmarkService{Store: store}
}

// List returns the bookmarks in the order they were added. A missing key is
// an empty set; an unparsable value is ErrStorageCorrupt.
func (s *BookmarkService) List(ctx context.Context) ([]models.JobRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add appends job unless a bookmark with the same ID exists, in which case
// it returns ErrAlreadyBookmarked and changes nothing.
func (s *BookmarkService) Add(ctx context.Context, job models.JobRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.load(ctx)
	if err != nil {
		return err
	}
	if indexOf(jobs, job.ID) >= 0 {
		return ErrAlreadyBookmarked
	}
	return s.save(ctx, append(jobs, job))
}

// Remove filters id out of the set. Removing an absent ID is a no-op.
func (s *BookmarkService) Remove(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	jobs, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(jobs, id)
	if i < 0 {
		return nil
	}
	return s.save(ctx, append(jobs[:i], jobs[i+1:]...))
}

func (s *BookmarkService) Get(ctx context.Context, id int) (models.JobRecord, bool, error) {
	jobs, err := s.List(ctx)
	if err != nil {
		return models.JobRecord{}, false, err
	}
	if i := indexOf(jobs, id); i >= 0 {
		return jobs[i], true, nil
	}
	return models.JobRecord{}, false, nil
}

func (s *BookmarkService) Contains(ctx context.Context, id int) (bool, error) {
	_, ok, err := s.Get(ctx, id)
	return ok, err
}

func (s *BookmarkService) load(ctx context.Context) ([]models.JobRecord, error) {
	raw, found, err := s.Store.Get(ctx, BookmarksKey)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks: %w", err)
	}
	jobs := []models.JobRecord{}
	if !found {
		return jobs, nil
	}
	if err := json.Unmarshal([]byte(raw), &jobs); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageCorrupt, err)
	}
	if jobs == nil {
		// a stored "null"
		jobs = []models.JobRecord{}
	}
	return jobs, nil
}

func (s *BookmarkService) save(ctx context.Context, jobs []models.JobRecord) error {
	b, err := json.Marshal(jobs)
	if err != nil {
		return err
	}
	if err := s.Store.Set(ctx, BookmarksKey, string(b)); err != nil {
		return fmt.Errorf("write bookmarks: %w", err)
	}
	return nil
}

func indexOf(jobs []models.JobRecord, id int) int {
	for i, j := range jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}
