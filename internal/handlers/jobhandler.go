package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yellowsense/jobswipe/internal/dtos"
	"github.com/yellowsense/jobswipe/internal/services"
)

// JobHandler serves the job list over the JSON API.
type JobHandler struct {
	Jobs   *services.Reconciler
	Swipes *services.SwipeService
	Lookup *services.LookupService
}

func NewJobHandler(jobs *services.Reconciler, swipes *services.SwipeService, lookup *services.LookupService) *JobHandler {
	return &JobHandler{Jobs: jobs, Swipes: swipes, Lookup: lookup}
}

// ListJobs is GET /jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	c.JSON(http.StatusOK, h.state())
}

// LoadMore is POST /jobs/more
func (h *JobHandler) LoadMore(c *gin.Context) {
	added, err := h.Jobs.LoadNext(c.Request.Context())
	if err != nil && !errors.Is(err, services.ErrNoMorePages) {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	c.JSON(http.StatusOK, dtos.LoadMoreResponse{Added: added, JobsResponse: h.state()})
}

// GetJob is GET /jobs/:id
func (h *JobHandler) GetJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	job, err := h.Lookup.Find(c.Request.Context(), id)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	c.JSON(http.StatusOK, job.View())
}

// DismissJob is DELETE /jobs/:id
func (h *JobHandler) DismissJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "removed": h.Jobs.Remove(id)})
}

// SwipeJob is POST /jobs/:id/swipe
func (h *JobHandler) SwipeJob(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	var req dtos.SwipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	job, found := h.Jobs.Get(id)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": userMessage(services.ErrJobNotFound)})
		return
	}

	fb, err := h.Swipes.OnSwipe(c.Request.Context(), services.Direction(req.Direction), job)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	c.JSON(http.StatusOK, dtos.SwipeResponse{Feedback: fb})
}

func (h *JobHandler) state() dtos.JobsResponse {
	return dtos.NewJobsResponse(h.Jobs.Snapshot(), h.Jobs.Trigger().Name())
}

func jobID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}
