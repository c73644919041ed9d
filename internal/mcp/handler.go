package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ganot/dx-portfolio/internal/domain/activity"
	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/domain/user"
	"github.com/ganot/dx-portfolio/internal/pipeline"
)

// ProjectService defines project queries needed by MCP.
type ProjectService interface {
	List(ctx context.Context, opts project.ListOptions) ([]project.IndexEntry, error)
	Get(ctx context.Context, id string) (*project.Manifest, error)
	Stats(ctx context.Context) (project.Stats, error)
}

// UserDirectory exposes the loaded roster.
type UserDirectory interface {
	Users() []user.User
}

// ActivityService defines journal queries needed by MCP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Pipeline runs one initialization pass.
type Pipeline interface {
	Run(ctx context.Context) (*pipeline.Outcome, error)
}

// Handler dispatches tool calls to domain services.
type Handler struct {
	projects ProjectService
	users    UserDirectory
	activity ActivityService
	pipeline Pipeline
}

// NewHandler creates a new MCP handler.
func NewHandler(projects ProjectService, users UserDirectory, activitySvc ActivityService, runner Pipeline) *Handler {
	return &Handler{
		projects: projects,
		users:    users,
		activity: activitySvc,
		pipeline: runner,
	}
}

// Handle dispatches one tool call by name.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "list_projects":
		var req ListProjectsParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		entries, err := h.projects.List(ctx, project.ListOptions{
			Status:  project.Status(req.Status),
			OwnerID: req.OwnerID,
		})
		if err != nil {
			return nil, mapError(err)
		}
		return ListProjectsResponse{Projects: entries, Count: len(entries)}, nil
	case "get_project":
		var req GetProjectParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		m, err := h.projects.Get(ctx, req.ID)
		if err != nil {
			return nil, mapError(err)
		}
		return m, nil
	case "get_stats":
		stats, err := h.projects.Stats(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return StatsResponse{Stats: stats, Unclassified: stats.Total - stats.Classified()}, nil
	case "list_users":
		users := h.users.Users()
		profiles := make([]user.Profile, 0, len(users))
		for _, u := range users {
			profiles = append(profiles, u.Profile())
		}
		return ListUsersResponse{Users: profiles}, nil
	case "get_recent_activity":
		var req GetRecentActivityParams
		if err := decodeParams(params, &req); err != nil {
			return nil, err
		}
		opts := activity.ListOptions{RunID: req.RunID, Limit: req.Limit}
		if req.Type != "" {
			typ := activity.Type(req.Type)
			opts.Type = &typ
		}
		if opts.Limit <= 0 {
			opts.Limit = defaultActivityLimit
		}
		entries, err := h.activity.GetRecentActivity(ctx, opts)
		if err != nil {
			return nil, mapError(err)
		}
		return GetRecentActivityResponse{Entries: entries}, nil
	case "reinitialize":
		out, err := h.pipeline.Run(ctx)
		if err != nil {
			return nil, mapError(err)
		}
		return newRunResponse(out), nil
	default:
		return nil, fmt.Errorf("unknown method: %s", method)
	}
}

const defaultActivityLimit = 50

func decodeParams(params json.RawMessage, out any) error {
	if len(params) == 0 {
		return nil
	}
	if err := json.Unmarshal(params, out); err != nil {
		return &APIError{Code: "INVALID_INPUT", Message: fmt.Sprintf("invalid arguments: %v", err)}
	}
	return nil
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

func newRunResponse(out *pipeline.Outcome) RunResponse {
	resp := RunResponse{
		RunID:     out.RunID,
		Phase:     out.State.Phase.String(),
		Rescanned: out.State.Rescanned,
		Persisted: out.Persisted,
		Projects:  len(out.Manifests),
		Stats:     out.Index.Stats,
		Skipped:   make([]SkippedProject, 0, len(out.Skipped)),
	}
	for _, s := range out.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedProject{
			UserID:    s.Target.UserID,
			ProjectID: s.Target.ProjectID,
			Reason:    s.Err.Error(),
		})
	}
	return resp
}
