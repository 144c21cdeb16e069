package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yellowsense/jobswipe/internal/dtos"
	"github.com/yellowsense/jobswipe/internal/models"
	"github.com/yellowsense/jobswipe/internal/services"
)

type BookmarkHandler struct {
	Bookmarks *services.BookmarkService
	Lookup    *services.LookupService
}

func NewBookmarkHandler(bookmarks *services.BookmarkService, lookup *services.LookupService) *BookmarkHandler {
	return &BookmarkHandler{Bookmarks: bookmarks, Lookup: lookup}
}

// ListBookmarks is GET /bookmarks
func (h *BookmarkHandler) ListBookmarks(c *gin.Context) {
	jobs, err := h.Bookmarks.List(c.Request.Context())
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	c.JSON(http.StatusOK, dtos.BookmarksResponse{Jobs: models.Views(jobs), Count: len(jobs)})
}

// AddBookmark is POST /bookmarks
func (h *BookmarkHandler) AddBookmark(c *gin.Context) {
	var req dtos.BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	ctx := c.Request.Context()
	job, err := h.Lookup.Find(ctx, req.JobID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	if err := h.Bookmarks.Add(ctx, job); err != nil {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	c.JSON(http.StatusCreated, job.View())
}

// RemoveBookmark is DELETE /bookmarks/:id
func (h *BookmarkHandler) RemoveBookmark(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid job id"})
		return
	}
	if err := h.Bookmarks.Remove(c.Request.Context(), id); err != nil {
		c.JSON(statusFor(err), gin.H{"error": userMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "removed": true})
}
