package project

import (
	"context"
	"log/slog"
	"strings"
)

// Service answers read queries over the loaded curated store.
type Service struct {
	source Source
	logger *slog.Logger
}

// NewService creates a new project service.
func NewService(source Source, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{source: source, logger: logger}
}

// List returns index entries matching opts in index order.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]IndexEntry, error) {
	if opts.Status != "" && !opts.Status.Valid() {
		return nil, ErrInvalidInput
	}
	idx := s.source.Index()
	entries := make([]IndexEntry, 0, len(idx.Projects))
	for _, e := range idx.Projects {
		if opts.Status != "" && e.Status != opts.Status {
			continue
		}
		if opts.OwnerID != "" && e.OwnerID != opts.OwnerID {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Get fetches a full manifest by ID.
func (s *Service) Get(ctx context.Context, id string) (*Manifest, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}
	for _, m := range s.source.Manifests() {
		if m.ID == id {
			if m.GanttImage == "" {
				m.GanttImage = m.GanttImagePath
			}
			return &m, nil
		}
	}
	return nil, ErrProjectNotFound
}

// Stats returns the summary counts of the loaded index.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.source.Index().Stats, nil
}
