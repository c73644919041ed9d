package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"path"

	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/repository"
)

// ManifestFile is the per-project manifest name inside a project folder.
const ManifestFile = "project.json"

var errNoMatch = fmt.Errorf("%w: no matching file", ErrEnrichmentGap)

// Hydrator loads a project manifest and fills in media references the
// manifest leaves out.
type Hydrator struct {
	storage repository.Storage
	logger  *slog.Logger
}

// NewHydrator creates a Hydrator.
func NewHydrator(storage repository.Storage, logger *slog.Logger) *Hydrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Hydrator{storage: storage, logger: logger}
}

// Hydrate reads <base>/project.json and runs the image, video and schedule
// enrichments independently. It returns ErrProjectSkipped when the
// manifest is unreadable, malformed or not a JSON object.
func (h *Hydrator) Hydrate(ctx context.Context, t Target) (*project.Manifest, error) {
	m, err := h.load(ctx, t)
	if err != nil {
		return nil, err
	}

	if len(m.Images) == 0 {
		images, err := h.deriveAssets(ctx, t, project.ImagesDir, project.ImageKind)
		m.Images = h.foldAssets(t, images, err)
	}
	if len(m.Videos) == 0 {
		videos, err := h.deriveAssets(ctx, t, project.VideosDir, project.VideoKind)
		m.Videos = h.foldAssets(t, videos, err)
	}
	if m.ScheduleImage() == "" {
		schedule, err := h.deriveSchedule(ctx, t)
		m.GanttImage = h.foldSchedule(t, schedule, err)
	}
	return m, nil
}

func (h *Hydrator) load(ctx context.Context, t Target) (*project.Manifest, error) {
	manifestPath := path.Join(t.BasePath, ManifestFile)

	var raw json.RawMessage
	if err := h.storage.ReadJSON(ctx, manifestPath, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProjectSkipped, manifestPath, err)
	}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: %s: manifest is not a JSON object", ErrProjectSkipped, manifestPath)
	}

	var m project.Manifest
	if err := json.Unmarshal(trimmed, &m); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProjectSkipped, manifestPath, err)
	}
	if m.ID == "" {
		m.ID = t.ProjectID
	}
	if m.OwnerID == "" {
		m.OwnerID = t.UserID
	}
	return &m, nil
}

// deriveAssets lists <base>/<dir> and builds one asset per file of kind.
func (h *Hydrator) deriveAssets(ctx context.Context, t Target, dir string, kind project.MediaKind) ([]project.MediaAsset, error) {
	folder := path.Join(t.BasePath, dir)
	names, err := h.storage.ListDir(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %w", ErrEnrichmentGap, folder, err)
	}
	matched := kind.Filter(names)
	assets := make([]project.MediaAsset, 0, len(matched))
	for _, name := range matched {
		assets = append(assets, project.NewMediaAsset(folder, name))
	}
	return assets, nil
}

// deriveSchedule returns the first image in <base>/gantt in listing order.
func (h *Hydrator) deriveSchedule(ctx context.Context, t Target) (string, error) {
	folder := path.Join(t.BasePath, project.GanttDir)
	names, err := h.storage.ListDir(ctx, folder)
	if err != nil {
		return "", fmt.Errorf("%w: listing %s: %w", ErrEnrichmentGap, folder, err)
	}
	matched := project.ImageKind.Filter(names)
	if len(matched) == 0 {
		return "", fmt.Errorf("%w in %s", errNoMatch, folder)
	}
	return path.Join(folder, matched[0]), nil
}

// foldAssets keeps derived assets and turns a gap into an empty collection.
func (h *Hydrator) foldAssets(t Target, assets []project.MediaAsset, err error) []project.MediaAsset {
	if err != nil {
		h.logGap(t, err)
		return []project.MediaAsset{}
	}
	return assets
}

func (h *Hydrator) foldSchedule(t Target, ref string, err error) string {
	if err != nil {
		h.logGap(t, err)
		return ""
	}
	return ref
}

// logGap logs missing folders and empty matches at debug, anything else at warn.
func (h *Hydrator) logGap(t Target, err error) {
	level := slog.LevelWarn
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, errNoMatch) {
		level = slog.LevelDebug
	}
	h.logger.Log(context.Background(), level, "enrichment gap",
		"user_id", t.UserID, "project_id", t.ProjectID, "error", err)
}
