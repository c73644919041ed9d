package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// ToolDefinition describes a callable tool.
type ToolDefinition struct {
	Name        string
	Description string
	InputSchema map[string]any
}

// buildToolCatalog returns all available MCP tools
func buildToolCatalog() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        "list_projects",
			Description: "List index entries of the curated portfolio, optionally filtered by status and owner",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"status": map[string]any{
						"type":        "string",
						"description": "Lifecycle status",
						"enum":        []string{"discovery", "decision", "develop", "pilot", "complete"},
					},
					"owner_id": map[string]any{
						"type":        "string",
						"description": "Owning user ID",
					},
				},
			},
		},
		{
			Name:        "get_project",
			Description: "Get the full manifest of one project, including media references",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"id": map[string]any{
						"type":        "string",
						"description": "Project ID",
					},
				},
				"required": []string{"id"},
			},
		},
		{
			Name:        "get_stats",
			Description: "Get project counts in total and per lifecycle status",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "list_users",
			Description: "List portfolio users without credentials",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "get_recent_activity",
			Description: "Get recent pipeline journal entries, newest first",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"run_id": map[string]any{
						"type":        "string",
						"description": "Only entries of this run",
					},
					"type": map[string]any{
						"type":        "string",
						"description": "Only entries of this type",
						"enum":        []string{"seed_written", "store_reused", "scan_persisted", "scan_empty", "project_skipped", "run_failed"},
					},
					"limit": map[string]any{
						"type":        "integer",
						"description": "Maximum number of entries (default 50)",
					},
				},
			},
		},
		{
			Name:        "reinitialize",
			Description: "Run the initialization pipeline again. An existing curated store is kept; folders are only scanned when it is empty",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

func registerTools(server *sdkmcp.Server, handler *Handler, logger *slog.Logger) {
	for _, def := range buildToolCatalog() {
		name := def.Name
		server.AddTool(&sdkmcp.Tool{
			Name:        def.Name,
			Description: def.Description,
			InputSchema: def.InputSchema,
		}, func(ctx context.Context, req *sdkmcp.CallToolRequest) (*sdkmcp.CallToolResult, error) {
			var args json.RawMessage
			if req != nil && req.Params != nil {
				args = req.Params.Arguments
			}
			result, err := handler.Handle(ctx, name, args)
			if err != nil {
				logger.Debug("tool call failed", "tool", name, "error", err)
				return toolError(err), nil
			}
			data, err := json.Marshal(result)
			if err != nil {
				return toolError(err), nil
			}
			return &sdkmcp.CallToolResult{
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
			}, nil
		})
	}
}

// toolError reports err as a tool-level error carrying the mapped code.
func toolError(err error) *sdkmcp.CallToolResult {
	apiErr := MapError(err)
	if apiErr == nil {
		apiErr = &APIError{Code: "INTERNAL", Message: err.Error()}
	}
	data, _ := json.Marshal(apiErr)
	return &sdkmcp.CallToolResult{
		IsError: true,
		Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: string(data)}},
	}
}
