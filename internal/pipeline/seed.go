package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ganot/dx-portfolio/internal/datastore"
	"github.com/ganot/dx-portfolio/internal/domain/settings"
	"github.com/ganot/dx-portfolio/internal/domain/user"
	"github.com/ganot/dx-portfolio/internal/repository"
)

// SeedReport describes what EnsureSeedData found and wrote.
type SeedReport struct {
	UsersExisted    bool
	SettingsExisted bool
	UsersWritten    bool
	SettingsWritten bool
}

// Wrote reports whether any seed document was written.
func (r SeedReport) Wrote() bool {
	return r.UsersWritten || r.SettingsWritten
}

// Seeder writes the default roster and settings when they are missing.
type Seeder struct {
	storage repository.Storage
	logger  *slog.Logger
	now     func() time.Time
}

// NewSeeder creates a Seeder.
func NewSeeder(storage repository.Storage, logger *slog.Logger) *Seeder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Seeder{storage: storage, logger: logger, now: time.Now}
}

// EnsureSeedData writes data/users.json and config.json, each only when it
// does not exist yet. Existing documents are never rewritten.
func (s *Seeder) EnsureSeedData(ctx context.Context) (SeedReport, error) {
	var report SeedReport
	now := s.now().UTC()

	existed, written, err := s.ensure(ctx, datastore.UsersPath, func() any {
		return user.DefaultRoster(now)
	})
	report.UsersExisted, report.UsersWritten = existed, written
	if err != nil {
		return report, err
	}

	existed, written, err = s.ensure(ctx, datastore.SettingsPath, func() any {
		return settings.Default(now)
	})
	report.SettingsExisted, report.SettingsWritten = existed, written
	if err != nil {
		return report, err
	}
	return report, nil
}

func (s *Seeder) ensure(ctx context.Context, path string, build func() any) (existed, written bool, err error) {
	existed, err = s.storage.Exists(ctx, path)
	if err != nil {
		return false, false, fmt.Errorf("%w: checking %s: %w", ErrPersistence, path, err)
	}
	if existed {
		return true, false, nil
	}
	if err := s.storage.WriteJSON(ctx, path, build()); err != nil {
		return false, false, fmt.Errorf("%w: seeding %s: %w", ErrPersistence, path, err)
	}
	s.logger.Info("seed document written", "path", path)
	return false, true, nil
}
