package services

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedResponse = errors.New("jobs response is not in the expected format")
	ErrJobNotFound       = errors.New("job not found")
	ErrAlreadyBookmarked = errors.New("job already bookmarked")
	ErrStorageCorrupt    = errors.New("stored bookmarks are corrupt")
	ErrLoadInProgress    = errors.New("jobs are already loading")
	ErrNoMorePages       = errors.New("no more jobs to load")
	ErrInvalidDirection  = errors.New("swipe direction must be left or right")
)

// FetchError is any failure to get a usable page out of the jobs API.
type FetchError struct {
	Page   int
	Reason string
	Err    error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch jobs page %d: %s: %v", e.Page, e.Reason, e.Err)
	}
	return fmt.Sprintf("fetch jobs page %d: %s", e.Page, e.Reason)
}

func (e *FetchError) Unwrap() error { return e.Err }

// IsBenignLoadError reports load outcomes that only mean "nothing to do".
func IsBenignLoadError(err error) bool {
	return errors.Is(err, ErrLoadInProgress) || errors.Is(err, ErrNoMorePages)
}
