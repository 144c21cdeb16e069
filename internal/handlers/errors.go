package handlers

import (
	"errors"
	"net/http"

	"github.com/yellowsense/jobswipe/internal/services"
)

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	var fetchErr *services.FetchError
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrAlreadyBookmarked), errors.Is(err, services.ErrLoadInProgress):
		return http.StatusConflict
	case errors.Is(err, services.ErrInvalidDirection):
		return http.StatusBadRequest
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// userMessage is what a person sees for err.
func userMessage(err error) string {
	var fetchErr *services.FetchError
	switch {
	case errors.Is(err, services.ErrJobNotFound):
		return "Job not found"
	case errors.Is(err, services.ErrAlreadyBookmarked):
		return "Job already bookmarked"
	case errors.Is(err, services.ErrStorageCorrupt):
		return "Error fetching bookmarked jobs"
	case errors.Is(err, services.ErrLoadInProgress):
		return "Jobs are already loading"
	case errors.Is(err, services.ErrNoMorePages):
		return "No more jobs to load."
	case errors.Is(err, services.ErrInvalidDirection):
		return "Swipe left or right"
	case errors.As(err, &fetchErr):
		return "Error fetching jobs"
	default:
		return "Something went wrong"
	}
}
