package services

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/yellowsense/jobswipe/internal/models"
)

type Direction string

const (
	SwipeLeft  Direction = "left"
	SwipeRight Direction = "right"
)

// ParseDirection accepts "left" or "right".
func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case SwipeLeft, SwipeRight:
		return Direction(s), nil
	}
	return "", ErrInvalidDirection
}

// Feedback is the short-lived indicator shown after a swipe.
type Feedback struct {
	JobID     int       `json:"job_id"`
	Action    string    `json:"action"` // bookmark | dismiss
	Message   string    `json:"message"`
	Notice    string    `json:"notice,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SwipeService turns card swipes into bookmark and list changes.
type SwipeService struct {
	Bookmarks *BookmarkService
	Jobs      *Reconciler

	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	current *Feedback
}

func NewSwipeService(bookmarks *BookmarkService, jobs *Reconciler, feedbackTTL time.Duration) *SwipeService {
	return &SwipeService{
		Bookmarks: bookmarks,
		Jobs:      jobs,
		ttl:       feedbackTTL,
		now:       time.Now,
	}
}

// OnSwipe bookmarks (right) and then removes the job from the list; left only
// removes it. A job that is already bookmarked is still removed, with a notice
// in the feedback.
func (s *SwipeService) OnSwipe(ctx context.Context, dir Direction, job models.JobRecord) (Feedback, error) {
	fb := Feedback{JobID: job.ID, ExpiresAt: s.now().Add(s.ttl)}

	switch dir {
	case SwipeRight:
		if err := s.Bookmarks.Add(ctx, job); err != nil {
			if !errors.Is(err, ErrAlreadyBookmarked) {
				return Feedback{}, err
			}
			fb.Notice = "Job already bookmarked"
		}
		s.Jobs.Remove(job.ID)
		fb.Action, fb.Message = "bookmark", "Bookmarked!"
		log.Printf("🔖 Swiped right on job %d", job.ID)
	case SwipeLeft:
		s.Jobs.Remove(job.ID)
		fb.Action, fb.Message = "dismiss", "Dismissed!"
		log.Printf("👋 Swiped left on job %d", job.ID)
	default:
		return Feedback{}, ErrInvalidDirection
	}

	s.mu.Lock()
	s.current = &fb
	s.mu.Unlock()
	return fb, nil
}

// CurrentFeedback returns the last swipe feedback while it has not expired.
func (s *SwipeService) CurrentFeedback() (Feedback, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || !s.now().Before(s.current.ExpiresAt) {
		s.current = nil
		return Feedback{}, false
	}
	return *s.current, true
}
