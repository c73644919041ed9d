package pipeline

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"path"
	"strings"

	"github.com/ganot/dx-portfolio/internal/datastore"
	"github.com/ganot/dx-portfolio/internal/repository"
)

const projectsDir = "projects"

// Entries under the users root that are never user folders.
var reservedUserEntries = map[string]bool{
	"README_ESTRUCTURA.md": true,
	"EXAMPLE_project.json": true,
}

// Target locates one candidate project folder.
type Target struct {
	UserID    string
	ProjectID string
	BasePath  string
}

// Scanner enumerates project folders under the users root.
type Scanner struct {
	storage repository.Storage
	logger  *slog.Logger
}

// NewScanner creates a Scanner.
func NewScanner(storage repository.Storage, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scanner{storage: storage, logger: logger}
}

// Targets lazily yields every project folder in listing order. A missing
// users root yields nothing. An unreadable users root yields one
// ErrScanFailed and ends the sequence; an unreadable projects folder only
// drops that user.
func (s *Scanner) Targets(ctx context.Context) iter.Seq2[Target, error] {
	return func(yield func(Target, error) bool) {
		ok, err := s.storage.Exists(ctx, datastore.UsersRoot)
		if err != nil {
			yield(Target{}, fmt.Errorf("%w: checking %s: %w", ErrScanFailed, datastore.UsersRoot, err))
			return
		}
		if !ok {
			return
		}
		users, err := s.storage.ListDir(ctx, datastore.UsersRoot)
		if err != nil {
			yield(Target{}, fmt.Errorf("%w: listing %s: %w", ErrScanFailed, datastore.UsersRoot, err))
			return
		}

		for _, userID := range users {
			if isHidden(userID) || reservedUserEntries[userID] {
				continue
			}
			for _, projectID := range s.projectIDs(ctx, userID) {
				target := Target{
					UserID:    userID,
					ProjectID: projectID,
					BasePath:  path.Join(datastore.UsersRoot, userID, projectsDir, projectID),
				}
				if !yield(target, nil) {
					return
				}
			}
		}
	}
}

func (s *Scanner) projectIDs(ctx context.Context, userID string) []string {
	dir := path.Join(datastore.UsersRoot, userID, projectsDir)
	ok, err := s.storage.Exists(ctx, dir)
	if err != nil {
		s.logger.Warn("cannot check projects folder", "user_id", userID, "path", dir, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	names, err := s.storage.ListDir(ctx, dir)
	if err != nil {
		s.logger.Warn("cannot list projects folder", "user_id", userID, "path", dir, "error", err)
		return nil
	}
	ids := names[:0:0]
	for _, name := range names {
		if !isHidden(name) {
			ids = append(ids, name)
		}
	}
	return ids
}

// Collect drains Targets. On failure it returns the targets seen so far
// alongside the error.
func (s *Scanner) Collect(ctx context.Context) ([]Target, error) {
	var targets []Target
	for target, err := range s.Targets(ctx) {
		if err != nil {
			return targets, err
		}
		targets = append(targets, target)
	}
	return targets, nil
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}
