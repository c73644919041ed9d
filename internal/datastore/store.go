// Package datastore holds the in-memory view of the curated data and fans
// out data-ready notifications to consumers.
package datastore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/domain/settings"
	"github.com/ganot/dx-portfolio/internal/domain/user"
	"github.com/ganot/dx-portfolio/internal/repository"
)

// Persisted document locations, relative to the data root.
const (
	UsersPath        = "data/users.json"
	SettingsPath     = "config.json"
	ProjectsPath     = "data/projects.json"
	ProjectIndexPath = "data/projects-index.json"
	UsersRoot        = "users"
)

// Store is the explicit handle consumers read curated data through. It is
// refreshed with Reload and announces fresh data with NotifyReady.
type Store struct {
	storage repository.Storage
	logger  *slog.Logger

	mu        sync.RWMutex
	users     []user.User
	manifests []project.Manifest
	index     project.Index
	settings  *settings.Settings

	subMu       sync.Mutex
	subscribers []chan struct{}
}

// New creates an empty Store backed by storage.
func New(storage repository.Storage, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		storage: storage,
		logger:  logger,
		index:   project.BuildIndex(nil),
	}
}

// Reload re-reads users, settings and the curated project collection.
// Missing documents load as empty; unreadable ones fail the reload and
// leave the previous view in place.
func (s *Store) Reload(ctx context.Context) error {
	var roster user.Roster
	if err := s.readOptional(ctx, UsersPath, &roster); err != nil {
		return err
	}
	var collection project.Collection
	if err := s.readOptional(ctx, ProjectsPath, &collection); err != nil {
		return err
	}
	var cfg settings.Settings
	cfgPtr := &cfg
	found, err := s.readOptionalFound(ctx, SettingsPath, &cfg)
	if err != nil {
		return err
	}
	if !found {
		cfgPtr = nil
	}

	idx := project.BuildIndex(collection.Projects)

	s.mu.Lock()
	s.users = roster.Users
	s.manifests = collection.Projects
	s.index = idx
	s.settings = cfgPtr
	s.mu.Unlock()

	s.logger.Debug("data store reloaded", "users", len(roster.Users), "projects", len(collection.Projects))
	return nil
}

func (s *Store) readOptional(ctx context.Context, path string, v any) error {
	_, err := s.readOptionalFound(ctx, path, v)
	return err
}

func (s *Store) readOptionalFound(ctx context.Context, path string, v any) (bool, error) {
	err := s.storage.ReadJSON(ctx, path, v)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reloading %s: %w", path, err)
	}
	return true, nil
}

// Users returns the loaded roster.
func (s *Store) Users() []user.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]user.User, len(s.users))
	copy(out, s.users)
	return out
}

// Manifests returns the loaded curated projects.
func (s *Store) Manifests() []project.Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]project.Manifest, len(s.manifests))
	copy(out, s.manifests)
	return out
}

// Index returns the index derived from the loaded curated projects.
func (s *Store) Index() project.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.index
	idx.Projects = append([]project.IndexEntry(nil), s.index.Projects...)
	return idx
}

// Settings returns the loaded config.json, or nil when none exists.
func (s *Store) Settings() *settings.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.settings == nil {
		return nil
	}
	cfg := *s.settings
	return &cfg
}
