package services

import (
	"context"
	"log"
	"sync"

	"github.com/yellowsense/jobswipe/internal/models"
)

// State is a point-in-time copy of the reconciler.
type State struct {
	Jobs    []models.JobRecord
	Page    int
	HasMore bool
	Loading bool
	// Loaded is true once any page fetch has completed successfully.
	Loaded bool
	Err    string
}

// Reconciler owns the in-memory job list and the pagination cursor. At most
// one page fetch runs at a time.
type Reconciler struct {
	fetcher  PageFetcher
	trigger  LoadTrigger
	maxPages int

	mu      sync.Mutex
	jobs    []models.JobRecord
	seen    map[int]struct{}
	page    int
	hasMore bool
	loading bool
	loaded  bool
	lastErr error
	// gen changes on Reset so a fetch started before it is discarded.
	gen int
}

// NewReconciler creates an empty list positioned at page 1. maxPages <= 0
// means pagination ends only when the API returns an empty page.
func NewReconciler(fetcher PageFetcher, trigger LoadTrigger, maxPages int) *Reconciler {
	if trigger == nil {
		trigger = SwipeStackTrigger{}
	}
	return &Reconciler{
		fetcher:  fetcher,
		trigger:  trigger,
		maxPages: maxPages,
		seen:     make(map[int]struct{}),
		page:     1,
		hasMore:  true,
	}
}

// LoadNext fetches the page under the cursor and merges it. It returns how
// many new jobs were appended.
func (r *Reconciler) LoadNext(ctx context.Context) (int, error) {
	r.mu.Lock()
	if r.loading {
		r.mu.Unlock()
		return 0, ErrLoadInProgress
	}
	if !r.hasMore {
		r.mu.Unlock()
		return 0, ErrNoMorePages
	}
	r.loading = true
	page, gen := r.page, r.gen
	r.mu.Unlock()

	jobs, err := r.fetcher.FetchPage(ctx, page)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading = false

	if gen != r.gen {
		log.Printf("↩️  Discarding page %d fetched before a refresh", page)
		return 0, nil
	}
	if err != nil {
		r.lastErr = err
		log.Printf("❌ Failed to load jobs page %d: %v", page, err)
		return 0, err
	}

	r.lastErr = nil
	r.loaded = true
	added := r.mergeLocked(jobs)

	switch {
	case len(jobs) == 0:
		r.hasMore = false
	case r.maxPages > 0 && page >= r.maxPages:
		r.page++
		r.hasMore = false
	default:
		r.page++
	}

	log.Printf("📥 Page %d: %d jobs received, %d new (has_more=%v)", page, len(jobs), added, r.hasMore)
	return added, nil
}

// MaybeLoad asks the trigger policy whether the viewport warrants loading the
// next page and loads it if so. It is a no-op when the list is finished or a
// fetch is already running.
func (r *Reconciler) MaybeLoad(ctx context.Context, distanceFromBottom int) (bool, error) {
	r.mu.Lock()
	v := Viewport{DistanceFromBottom: distanceFromBottom, Remaining: len(r.jobs)}
	idle := !r.loading && r.hasMore
	r.mu.Unlock()

	if !idle || !r.trigger.ShouldLoad(v) {
		return false, nil
	}
	if _, err := r.LoadNext(ctx); err != nil {
		if IsBenignLoadError(err) {
			return false, nil
		}
		return true, err
	}
	return true, nil
}

// Merge appends records whose ID has not been seen, in order, and returns the
// number appended. Merging the same records twice is a no-op.
func (r *Reconciler) Merge(jobs []models.JobRecord) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mergeLocked(jobs)
}

func (r *Reconciler) mergeLocked(jobs []models.JobRecord) int {
	added := 0
	for _, job := range jobs {
		// records without an identifier cannot be addressed by any route
		if job.ID == 0 {
			continue
		}
		if _, ok := r.seen[job.ID]; ok {
			continue
		}
		r.seen[job.ID] = struct{}{}
		r.jobs = append(r.jobs, job)
		added++
	}
	return added
}

// Remove drops the job from the list. Removed IDs stay seen, so a later
// merge does not bring a dismissed job back.
func (r *Reconciler) Remove(id int) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, job := range r.jobs {
		if job.ID == id {
			r.jobs = append(r.jobs[:i], r.jobs[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Reconciler) Get(id int) (models.JobRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, job := range r.jobs {
		if job.ID == id {
			return job, true
		}
	}
	return models.JobRecord{}, false
}

func (r *Reconciler) Snapshot() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := State{
		Jobs:    append([]models.JobRecord(nil), r.jobs...),
		Page:    r.page,
		HasMore: r.hasMore,
		Loading: r.loading,
		Loaded:  r.loaded,
	}
	if r.lastErr != nil {
		s.Err = r.lastErr.Error()
	}
	return s
}

// Reset empties the list and rewinds the cursor to page 1. A fetch already
// in flight keeps the loading flag until it returns and its page is dropped.
func (r *Reconciler) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = nil
	r.seen = make(map[int]struct{})
	r.page = 1
	r.hasMore = true
	r.loaded = false
	r.lastErr = nil
	r.gen++
}

func (r *Reconciler) Trigger() LoadTrigger { return r.trigger }
