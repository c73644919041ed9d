package repository

import (
	"context"

	"github.com/ganot/dx-portfolio/internal/domain/activity"
)

// Storage is the contract the pipeline consumes for all data-root I/O.
// Paths are slash-separated and relative to the application data root.
type Storage interface {
	// Exists reports whether a file or directory is present at path.
	Exists(ctx context.Context, path string) (bool, error)
	// ReadJSON decodes the JSON document at path into v. A missing file
	// yields ErrNotFound.
	ReadJSON(ctx context.Context, path string, v any) error
	// WriteJSON replaces the document at path with v, creating parent
	// directories as needed.
	WriteJSON(ctx context.Context, path string, v any) error
	// ListDir returns the entry names directly under path in the order the
	// backend reports them.
	ListDir(ctx context.Context, path string) ([]string, error)
}

// ActivityRepository manages run journal persistence
type ActivityRepository interface {
	Log(ctx context.Context, entry *activity.Entry) error
	List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}
