package handlers

import (
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yellowsense/jobswipe/internal/dtos"
	"github.com/yellowsense/jobswipe/internal/models"
	"github.com/yellowsense/jobswipe/internal/services"
	"github.com/yellowsense/jobswipe/internal/web"
)

// PageHandler serves the server-rendered pages.
type PageHandler struct {
	Renderer        *web.Renderer
	Jobs            *services.Reconciler
	Bookmarks       *services.BookmarkService
	Swipes          *services.SwipeService
	Lookup          *services.LookupService
	ScrollThreshold int
}

type homePage struct {
	Title string
}

type jobsPage struct {
	Title     string
	Jobs      []models.JobView
	Loading   bool
	HasMore   bool
	Error     string
	Notice    string
	Feedback  *services.Feedback
	Scroll    bool
	Threshold int
}

type jobDetailPage struct {
	Title  string
	Job    models.JobView
	Notice string
}

type bookmarksPage struct {
	Title  string
	Jobs   []models.JobView
	Error  string
	Notice string
}

type errorPage struct {
	Title   string
	Message string
}

func (h *PageHandler) Home(c *gin.Context) {
	h.Renderer.Render(c.Writer, http.StatusOK, "home.tmpl", homePage{Title: "Home"})
}

// JobList renders the list, loading the first page on the first visit.
func (h *PageHandler) JobList(c *gin.Context) {
	s := h.Jobs.Snapshot()
	if !s.Loaded && !s.Loading && s.HasMore && s.Err == "" {
		if _, err := h.Jobs.LoadNext(c.Request.Context()); err != nil && !services.IsBenignLoadError(err) {
			log.Printf("⚠️  Initial jobs load failed: %v", err)
		}
		s = h.Jobs.Snapshot()
	}

	page := jobsPage{
		Title:     "Jobs",
		Jobs:      models.Views(s.Jobs),
		Loading:   s.Loading,
		HasMore:   s.HasMore,
		Notice:    c.Query("notice"),
		Scroll:    h.Jobs.Trigger().Name() == "scroll",
		Threshold: h.ScrollThreshold,
	}
	if s.Err != "" {
		page.Error = "Error fetching jobs"
	}
	if fb, ok := h.Swipes.CurrentFeedback(); ok {
		page.Feedback = &fb
	}
	h.Renderer.Render(c.Writer, http.StatusOK, "jobs.tmpl", page)
}

// LoadMore is the "Load more" button.
func (h *PageHandler) LoadMore(c *gin.Context) {
	notice := ""
	if _, err := h.Jobs.LoadNext(c.Request.Context()); err != nil {
		notice = userMessage(err)
	}
	redirectWithNotice(c, "/jobs", notice)
}

// ScrollProbe is polled by the page script with the distance to the bottom
// of the page; the load trigger decides whether to fetch.
func (h *PageHandler) ScrollProbe(c *gin.Context) {
	distance := services.NoScroll
	if d, err := strconv.Atoi(c.Query("distance")); err == nil && d >= 0 {
		distance = d
	}
	loaded, err := h.Jobs.MaybeLoad(c.Request.Context(), distance)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"loaded": false, "error": userMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"loaded": loaded})
}

func (h *PageHandler) Swipe(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		h.renderError(c, http.StatusBadRequest, "Invalid job id")
		return
	}
	var req dtos.SwipeRequest
	if err := c.ShouldBind(&req); err != nil {
		redirectWithNotice(c, "/jobs", userMessage(services.ErrInvalidDirection))
		return
	}
	job, found := h.Jobs.Get(id)
	if !found {
		redirectWithNotice(c, "/jobs", userMessage(services.ErrJobNotFound))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.Swipes.OnSwipe(ctx, services.Direction(req.Direction), job); err != nil {
		redirectWithNotice(c, "/jobs", userMessage(err))
		return
	}
	// refill the stack once the last card is gone
	if _, err := h.Jobs.MaybeLoad(ctx, services.NoScroll); err != nil {
		log.Printf("⚠️  Loading after swipe failed: %v", err)
	}
	c.Redirect(http.StatusSeeOther, "/jobs")
}

func (h *PageHandler) Bookmark(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		h.renderError(c, http.StatusBadRequest, "Invalid job id")
		return
	}
	ctx := c.Request.Context()
	back := "/job/" + strconv.Itoa(id)

	job, err := h.Lookup.Find(ctx, id)
	if err != nil {
		h.renderError(c, statusFor(err), userMessage(err))
		return
	}
	if err := h.Bookmarks.Add(ctx, job); err != nil {
		redirectWithNotice(c, back, userMessage(err))
		return
	}
	redirectWithNotice(c, back, "Bookmarked!")
}

func (h *PageHandler) Dismiss(c *gin.Context) {
	if id, ok := jobID(c); ok {
		h.Jobs.Remove(id)
	}
	c.Redirect(http.StatusSeeOther, "/jobs")
}

func (h *PageHandler) Refresh(c *gin.Context) {
	h.Jobs.Reset()
	c.Redirect(http.StatusSeeOther, "/jobs")
}

func (h *PageHandler) JobDetail(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		h.renderError(c, http.StatusBadRequest, "Invalid job id")
		return
	}
	job, err := h.Lookup.Find(c.Request.Context(), id)
	if err != nil {
		msg := userMessage(err)
		if statusFor(err) == http.StatusBadGateway {
			msg = "Error fetching job details"
		}
		h.renderError(c, statusFor(err), msg)
		return
	}
	h.Renderer.Render(c.Writer, http.StatusOK, "job_detail.tmpl", jobDetailPage{
		Title:  job.View().Title,
		Job:    job.View(),
		Notice: c.Query("notice"),
	})
}

func (h *PageHandler) BookmarkList(c *gin.Context) {
	jobs, err := h.Bookmarks.List(c.Request.Context())
	if err != nil {
		log.Printf("❌ Error fetching bookmarked jobs: %v", err)
		h.Renderer.Render(c.Writer, statusFor(err), "bookmarks.tmpl", bookmarksPage{
			Title: "Bookmarks",
			Error: userMessage(err),
		})
		return
	}
	h.Renderer.Render(c.Writer, http.StatusOK, "bookmarks.tmpl", bookmarksPage{
		Title:  "Bookmarks",
		Jobs:   models.Views(jobs),
		Notice: c.Query("notice"),
	})
}

func (h *PageHandler) RemoveBookmark(c *gin.Context) {
	id, ok := jobID(c)
	if !ok {
		h.renderError(c, http.StatusBadRequest, "Invalid job id")
		return
	}
	if err := h.Bookmarks.Remove(c.Request.Context(), id); err != nil {
		log.Printf("❌ Removing bookmark %d failed: %v", id, err)
		redirectWithNotice(c, "/bookmarks", userMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/bookmarks")
}

func (h *PageHandler) renderError(c *gin.Context, status int, msg string) {
	h.Renderer.Render(c.Writer, status, "error.tmpl", errorPage{Title: "Error", Message: msg})
}

func redirectWithNotice(c *gin.Context, path, notice string) {
	if notice != "" {
		path += "?notice=" + url.QueryEscape(notice)
	}
	c.Redirect(http.StatusSeeOther, path)
}
