package dtos

import (
	"github.com/yellowsense/jobswipe/internal/models"
	"github.com/yellowsense/jobswipe/internal/services"
)

type SwipeRequest struct {
	Direction string `json:"direction" form:"direction" binding:"required,oneof=left right"`
}

type BookmarkRequest struct {
	JobID int `json:"job_id" binding:"required,min=1"`
}

type JobsResponse struct {
	Jobs    []models.JobView `json:"jobs"`
	Page    int              `json:"page"`
	HasMore bool             `json:"has_more"`
	Loading bool             `json:"loading"`
	Error   string           `json:"error,omitempty"`
	Trigger string           `json:"trigger"`
}

type LoadMoreResponse struct {
	Added int `json:"added"`
	JobsResponse
}

type BookmarksResponse struct {
	Jobs  []models.JobView `json:"jobs"`
	Count int              `json:"count"`
}

type SwipeResponse struct {
	Feedback services.Feedback `json:"feedback"`
}

// NewJobsResponse flattens a reconciler snapshot for the API.
func NewJobsResponse(s services.State, trigger string) JobsResponse {
	return JobsResponse{
		Jobs:    models.Views(s.Jobs),
		Page:    s.Page,
		HasMore: s.HasMore,
		Loading: s.Loading,
		Error:   s.Err,
		Trigger: trigger,
	}
}
