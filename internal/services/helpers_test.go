package services

import (
	"context"
	"sync"

	"github.com/yellowsense/jobswipe/internal/models"
)

// pagesFetcher serves fixed pages; pages past the map are empty.
type pagesFetcher struct {
	mu    sync.Mutex
	pages map[int][]models.JobRecord
	calls []int
}

func (f *pagesFetcher) FetchPage(_ context.Context, page int) ([]models.JobRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, page)
	return f.pages[page], nil
}

func ids(jobs []models.JobRecord) []int {
	out := make([]int, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func sameIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
