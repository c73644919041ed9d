package mcp

import (
	"github.com/ganot/dx-portfolio/internal/domain/activity"
	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/domain/user"
)

// Request types

type ListProjectsParams struct {
	Status  string `json:"status,omitempty"`
	OwnerID string `json:"owner_id,omitempty"`
}

type GetProjectParams struct {
	ID string `json:"id"`
}

type GetRecentActivityParams struct {
	RunID string `json:"run_id,omitempty"`
	Type  string `json:"type,omitempty"`
	Limit int    `json:"limit,omitempty"`
}

// Response types

type ListProjectsResponse struct {
	Projects []project.IndexEntry `json:"projects"`
	Count    int                  `json:"count"`
}

// StatsResponse carries the index counters. Unclassified counts projects
// whose status is outside the lifecycle enumeration.
type StatsResponse struct {
	project.Stats
	Unclassified int `json:"unclassified"`
}

type ListUsersResponse struct {
	Users []user.Profile `json:"users"`
}

type GetRecentActivityResponse struct {
	Entries []activity.Entry `json:"entries"`
}

type RunResponse struct {
	RunID     string           `json:"run_id"`
	Phase     string           `json:"phase"`
	Rescanned bool             `json:"rescanned"`
	Persisted bool             `json:"persisted"`
	Projects  int              `json:"projects"`
	Stats     project.Stats    `json:"stats"`
	Skipped   []SkippedProject `json:"skipped"`
}

type SkippedProject struct {
	UserID    string `json:"user_id"`
	ProjectID string `json:"project_id"`
	Reason    string `json:"reason"`
}
