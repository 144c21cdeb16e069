package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yellowsense/jobswipe/internal/services"
	"github.com/yellowsense/jobswipe/internal/web"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	Jobs            *services.Reconciler
	Bookmarks       *services.BookmarkService
	Swipes          *services.SwipeService
	Lookup          *services.LookupService
	Renderer        *web.Renderer
	ScrollThreshold int
	CORSOrigins     []string
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()
	r.Use(RequestID())

	config := cors.DefaultConfig()
	if len(d.CORSOrigins) > 0 {
		config.AllowOrigins = d.CORSOrigins
	} else {
		config.AllowAllOrigins = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", requestIDHeader}
	config.ExposeHeaders = []string{requestIDHeader}
	r.Use(cors.New(config))

	pages := &PageHandler{
		Renderer:        d.Renderer,
		Jobs:            d.Jobs,
		Bookmarks:       d.Bookmarks,
		Swipes:          d.Swipes,
		Lookup:          d.Lookup,
		ScrollThreshold: d.ScrollThreshold,
	}
	r.GET("/", pages.Home)
	r.GET("/jobs", pages.JobList)
	r.GET("/jobs/more", pages.ScrollProbe)
	r.POST("/jobs/more", pages.LoadMore)
	r.POST("/jobs/refresh", pages.Refresh)
	r.POST("/jobs/:id/swipe", pages.Swipe)
	r.POST("/jobs/:id/bookmark", pages.Bookmark)
	r.POST("/jobs/:id/dismiss", pages.Dismiss)
	r.GET("/job/:id", pages.JobDetail)
	r.GET("/bookmarks", pages.BookmarkList)
	r.POST("/bookmarks/:id/remove", pages.RemoveBookmark)

	jobHandler := NewJobHandler(d.Jobs, d.Swipes, d.Lookup)
	bookmarkHandler := NewBookmarkHandler(d.Bookmarks, d.Lookup)

	api := r.Group("/api/v1")
	{
		api.GET("/health", HealthCheck)

		api.GET("/jobs", jobHandler.ListJobs)
		api.POST("/jobs/more", jobHandler.LoadMore)
		api.GET("/jobs/:id", jobHandler.GetJob)
		api.DELETE("/jobs/:id", jobHandler.DismissJob)
		api.POST("/jobs/:id/swipe", jobHandler.SwipeJob)

		api.GET("/bookmarks", bookmarkHandler.ListBookmarks)
		api.POST("/bookmarks", bookmarkHandler.AddBookmark)
		api.DELETE("/bookmarks/:id", bookmarkHandler.RemoveBookmark)
	}

	return r
}
