package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yellowsense/jobswipe/internal/app"
	"github.com/yellowsense/jobswipe/internal/config"
	"github.com/yellowsense/jobswipe/internal/handlers"
	"github.com/yellowsense/jobswipe/internal/web"
)

func main() {
	// 1. Load configuration
	cfg := config.Load()
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	// 2. Storage and services
	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize: %v", err)
	}
	defer a.Close()

	// 3. Templates
	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("❌ Failed to parse templates: %v", err)
	}

	// 4. Router
	r := handlers.NewRouter(handlers.Deps{
		Jobs:            a.Jobs,
		Bookmarks:       a.Bookmarks,
		Swipes:          a.Swipes,
		Lookup:          a.Lookup,
		Renderer:        renderer,
		ScrollThreshold: cfg.ScrollThreshold,
		CORSOrigins:     cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("🚀 Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start:", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("⚠️  Forced shutdown: %v", err)
	}
}
