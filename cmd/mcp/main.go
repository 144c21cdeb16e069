package main

import (
	"fmt"
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/yellowsense/jobswipe/internal/app"
	"github.com/yellowsense/jobswipe/internal/config"
)

func main() {
	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	a, err := app.New(config.Load())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer a.Close()

	s := newServer(a)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

func newServer(a *app.App) *server.MCPServer {
	s := server.NewMCPServer("jobswipe", "1.0.0")
	registerJobTools(s, a)
	registerBookmarkTools(s, a)
	return s
}
