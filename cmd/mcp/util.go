package main

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return map[string]interface{}{}
	}
	return args
}

// jobIDArg reads a positive integer "id"; JSON numbers arrive as float64.
func jobIDArg(args map[string]interface{}) (int, error) {
	v, ok := args["id"].(float64)
	if !ok {
		return 0, fmt.Errorf("missing required field: id")
	}
	if v < 1 || v != float64(int(v)) {
		return 0, fmt.Errorf("invalid job id %v", v)
	}
	return int(v), nil
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

var idSchema = map[string]interface{}{"type": "integer", "description": "The job id"}
