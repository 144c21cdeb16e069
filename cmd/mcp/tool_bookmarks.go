package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/yellowsense/jobswipe/internal/app"
	"github.com/yellowsense/jobswipe/internal/dtos"
	"github.com/yellowsense/jobswipe/internal/models"
)

func registerBookmarkTools(s *server.MCPServer, a *app.App) {
	listTool := mcp.NewTool("list_bookmarks",
		mcp.WithDescription("List bookmarked jobs in the order they were saved"),
	)
	listTool.InputSchema = mcp.ToolInputSchema{Type: "object", Properties: map[string]interface{}{}}
	s.AddTool(listTool, listBookmarks(a))

	removeTool := mcp.NewTool("remove_bookmark",
		mcp.WithDescription("Remove a job from the bookmarks"),
	)
	removeTool.InputSchema = mcp.ToolInputSchema{
		Type:       "object",
		Properties: map[string]interface{}{"id": idSchema},
		Required:   []string{"id"},
	}
	s.AddTool(removeTool, removeBookmark(a))
}

func listBookmarks(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jobs, err := a.Bookmarks.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Error fetching bookmarked jobs: %v", err)), nil
		}
		return jsonResult(dtos.BookmarksResponse{Jobs: models.Views(jobs), Count: len(jobs)})
	}
}

func removeBookmark(a *app.App) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := jobIDArg(arguments(request))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if err := a.Bookmarks.Remove(ctx, id); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to remove bookmark: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Removed job %d from bookmarks.", id)), nil
	}
}
