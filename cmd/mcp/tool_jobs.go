package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yellowsense/jobswipe/internal/app"
	"github.com/yellowsense/jobswipe/internal/dtos"
	"github.com/yellowsense/jobswipe/internal/services"
)

func registerJobTools(s *server.MCPServer, a *app.App) {
	loadTool := mcp.NewTool("load_more_jobs",
		mcp.WithDescription("Fetch the next page of job postings and append the new ones to the list"),
	)
	loadTool.InputSchema = mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}}
	s.AddTool(loadTool, loadMoreJobs(a))

	listTool := mcp.NewTool("list_jobs",
		mcp.WithDescription("List the jobs currently loaded, with pagination state"),
	)
	listTool.InputSchema = mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}}
	s.AddTool(listTool, listJobs(a))

	getTool := mcp.NewTool("get_job",
		mcp.WithDescription("Show one job from the loaded list or the bookmarks"),
	)
	getTool.InputSchema = mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{"id": idSchema},
		Required:   []string{"id"},
	}
	s.AddTool(getTool, getJob(a))

	swipeTool := mcp.NewTool("swipe_job",
		mcp.WithDescription("Swipe a loaded job: right bookmarks it, left dismisses it. Either way it leaves the list"),
	)
	swipeTool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"id":        idSchema,
			"direction": map[string]interface{}{"type": "string", "enum": []string{"left", "right"}, "description": "left or right"},
		},
		Required: []string{"id", "direction"},
	}
	s.AddTool(swipeTool, swipeJob(a))
}

func loadMoreJobs(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		added, err := a.Jobs.LoadNext(ctx)
		switch {
		case errors.Is(err, services.ErrNoMorePages):
			return mcp.NewToolResultText("No more jobs to load."), nil
		case err != nil:
			return mcp.NewToolResultError(fmt.Sprintf("Failed to load jobs: %v", err)), nil
		}
		s := a.Jobs.Snapshot()
		return mcp.NewToolResultText(fmt.Sprintf("Loaded %d new jobs (%d in list, has_more=%v).", added, len(s.Jobs), s.HasMore)), nil
	}
}

func listJobs(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(dtos.NewJobsResponse(a.Jobs.Snapshot(), a.Jobs.Trigger().Name()))
	}
}

func getJob(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := jobIDArg(arguments(request))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		job, err := a.Lookup.Find(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Job %d: %v", id, err)), nil
		}
		return jsonResult(job.View())
	}
}

func swipeJob(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := arguments(request)
		id, err := jobIDArg(args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, _ := args["direction"].(string)
		dir, err := services.ParseDirection(raw)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		job, ok := a.Jobs.Get(id)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("Job %d is not in the loaded list", id)), nil
		}

		fb, err := a.Swipes.OnSwipe(ctx, dir, job)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Swipe failed: %v", err)), nil
		}
		msg := fmt.Sprintf("%s (job %d)", fb.Message, id)
		if fb.Notice != "" {
			msg += ": " + fb.Notice
		}
		return mcp.NewToolResultText(msg), nil
	}
}
