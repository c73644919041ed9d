package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/dx-portfolio/internal/domain/activity"
	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/pipeline"
)

// APIError represents an MCP tool error.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, project.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Call list_projects for valid IDs"}
	case errors.Is(err, project.ErrInvalidInput), errors.Is(err, activity.ErrInvalidInput):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, pipeline.ErrRunInProgress):
		return &APIError{Code: "RUN_IN_PROGRESS", Message: "a pipeline run is already in progress", RecoveryHint: "Retry once it finishes"}
	case errors.Is(err, pipeline.ErrScanFailed):
		return &APIError{Code: "SCAN_FAILED", Message: err.Error(), RecoveryHint: "Check that the users folder is readable"}
	case errors.Is(err, pipeline.ErrPersistence):
		return &APIError{Code: "PERSISTENCE_FAILED", Message: err.Error()}
	default:
		return nil
	}
}
