// Package pipeline rebuilds the curated project store from the per-user
// folder tree when no curated data exists yet.
package pipeline

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ganot/dx-portfolio/internal/datastore"
	"github.com/ganot/dx-portfolio/internal/domain/activity"
	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/repository"
)

// DefaultConcurrency bounds parallel hydrations when Options leaves it unset.
const DefaultConcurrency = 4

// Journal records pipeline events. *activity.Service satisfies it.
type Journal interface {
	LogActivity(ctx context.Context, entry *activity.Entry) error
}

// Options configures an Orchestrator.
type Options struct {
	Concurrency int
	// Journal is optional; journal failures are logged and ignored.
	Journal Journal
	// Store is reloaded and notified after every successful run when set.
	Store  *datastore.Store
	Logger *slog.Logger
}

// Skip pairs a dropped project with the reason it was dropped.
type Skip struct {
	Target Target
	Err    error
}

// Outcome is the result of one run. It is returned on persistence failures
// too, carrying the in-memory scan result.
type Outcome struct {
	RunID     string
	State     InitializationState
	Manifests []project.Manifest
	Index     project.Index
	Skipped   []Skip
	// Persisted is true when this run wrote the curated store and index.
	Persisted bool
}

// Orchestrator sequences seeding, the curated store check, scanning,
// hydration, aggregation and persistence.
type Orchestrator struct {
	storage     repository.Storage
	seeder      *Seeder
	scanner     *Scanner
	hydrator    *Hydrator
	journal     Journal
	store       *datastore.Store
	concurrency int
	logger      *slog.Logger
	now         func() time.Time

	running sync.Mutex
}

// New creates an Orchestrator over storage.
func New(storage repository.Storage, opts Options) *Orchestrator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = DefaultConcurrency
	}
	return &Orchestrator{
		storage:     storage,
		seeder:      NewSeeder(storage, logger),
		scanner:     NewScanner(storage, logger),
		hydrator:    NewHydrator(storage, logger),
		journal:     opts.Journal,
		store:       opts.Store,
		concurrency: concurrency,
		logger:      logger,
		now:         time.Now,
	}
}

// Run executes one pipeline pass. Only one run may be active at a time;
// overlapping calls get ErrRunInProgress.
func (o *Orchestrator) Run(ctx context.Context) (*Outcome, error) {
	if !o.running.TryLock() {
		return nil, ErrRunInProgress
	}
	defer o.running.Unlock()

	out := &Outcome{RunID: uuid.NewString()}
	logger := o.logger.With("run_id", out.RunID)
	logger.Info("pipeline run started")

	if err := o.run(ctx, out, logger); err != nil {
		out.State.Phase = PhaseFailed
		logger.Error("pipeline run failed", "error", err)
		o.record(ctx, logger, out.RunID, activity.TypeRunFailed, "", err.Error(), nil)
		return out, err
	}

	out.State.Phase = PhaseDone
	o.finish(ctx, logger)
	logger.Info("pipeline run finished",
		"rescanned", out.State.Rescanned,
		"projects", len(out.Manifests),
		"skipped", len(out.Skipped),
		"persisted", out.Persisted)
	return out, nil
}

func (o *Orchestrator) run(ctx context.Context, out *Outcome, logger *slog.Logger) error {
	report, err := o.seeder.EnsureSeedData(ctx)
	out.State.UsersExisted = report.UsersExisted
	out.State.SettingsExisted = report.SettingsExisted
	if err != nil {
		return err
	}
	out.State.Phase = PhaseSeedChecked
	if report.Wrote() {
		o.record(ctx, logger, out.RunID, activity.TypeSeedWritten, "", "seed documents written", report)
	}

	stored, err := o.readCuratedStore(ctx, out, logger)
	if err != nil {
		return err
	}
	out.State.Phase = PhaseProjectsChecked

	if len(stored) > 0 {
		out.State.Phase = PhaseUsingExistingStore
		out.Manifests = stored
		out.Index = project.BuildIndex(stored)
		logger.Info("using existing curated store", "projects", len(stored))
		o.record(ctx, logger, out.RunID, activity.TypeStoreReused, datastore.ProjectsPath,
			fmt.Sprintf("curated store holds %d projects", len(stored)), nil)
		return nil
	}

	out.State.Phase = PhaseScanningFolders
	out.State.Rescanned = true
	manifests, skipped, err := o.scan(ctx, logger)
	out.Skipped = skipped
	for _, skip := range skipped {
		o.record(ctx, logger, out.RunID, activity.TypeProjectSkipped, skip.Target.BasePath, skip.Err.Error(), nil)
	}
	if err != nil {
		return err
	}

	out.Manifests = manifests
	out.Index = project.BuildIndex(manifests)
	if len(manifests) == 0 {
		logger.Info("folder scan found no projects; curated store left untouched")
		o.record(ctx, logger, out.RunID, activity.TypeScanEmpty, datastore.UsersRoot, "no projects found", nil)
		return nil
	}

	if err := o.persist(ctx, out, logger); err != nil {
		return err
	}
	o.record(ctx, logger, out.RunID, activity.TypeScanPersisted, datastore.ProjectsPath,
		fmt.Sprintf("persisted %d projects", len(manifests)), out.Index.Stats)
	return nil
}

// storeShape reads only as much of data/projects.json as deciding
// emptiness needs.
type storeShape struct {
	Projects json.RawMessage `json:"projects"`
}

// readCuratedStore returns the stored manifests. A document that is not
// JSON, or whose projects member is missing or not a non-empty array,
// counts as empty so the folder scan can rebuild it. A non-empty store
// that cannot be read or decoded fails the run and is never rescanned over.
func (o *Orchestrator) readCuratedStore(ctx context.Context, out *Outcome, logger *slog.Logger) ([]project.Manifest, error) {
	exists, err := o.storage.Exists(ctx, datastore.ProjectsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: checking %s: %w", ErrPersistence, datastore.ProjectsPath, err)
	}
	out.State.StoreExisted = exists
	if !exists {
		return nil, nil
	}

	var shape storeShape
	if err := o.storage.ReadJSON(ctx, datastore.ProjectsPath, &shape); err != nil {
		if !isDecodeError(err) {
			return nil, fmt.Errorf("%w: reading %s: %w", ErrPersistence, datastore.ProjectsPath, err)
		}
		logger.Warn("curated store is not a project collection; rescanning folders", "path", datastore.ProjectsPath, "error", err)
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(shape.Projects, &entries); err != nil || len(entries) == 0 {
		return nil, nil
	}
	out.State.StoredProjects = len(entries)

	manifests := make([]project.Manifest, 0, len(entries))
	for i, entry := range entries {
		var m project.Manifest
		if err := json.Unmarshal(entry, &m); err != nil {
			return nil, fmt.Errorf("%w: decoding project %d of %s: %w", ErrPersistence, i, datastore.ProjectsPath, err)
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

// scan hydrates every target with bounded parallelism. Workers never return
// an error so one failing project cannot cancel its siblings.
func (o *Orchestrator) scan(ctx context.Context, logger *slog.Logger) ([]project.Manifest, []Skip, error) {
	targets, err := o.scanner.Collect(ctx)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("scan complete", "targets", len(targets))

	results := make([]*project.Manifest, len(targets))
	failures := make([]error, len(targets))

	var g errgroup.Group
	g.SetLimit(o.concurrency)
	for i, target := range targets {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			m, err := o.hydrator.Hydrate(ctx, target)
			if err != nil {
				failures[i] = err
				logger.Warn("project skipped",
					"user_id", target.UserID, "project_id", target.ProjectID, "error", err)
				return nil
			}
			results[i] = m
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("hydration interrupted: %w", err)
	}

	type hydrated struct {
		target   Target
		manifest project.Manifest
	}
	var ok []hydrated
	var skipped []Skip
	for i, target := range targets {
		if results[i] == nil {
			skipped = append(skipped, Skip{Target: target, Err: failures[i]})
			continue
		}
		ok = append(ok, hydrated{target: target, manifest: *results[i]})
	}
	slices.SortStableFunc(ok, func(a, b hydrated) int {
		return cmp.Or(
			cmp.Compare(a.target.UserID, b.target.UserID),
			cmp.Compare(a.target.ProjectID, b.target.ProjectID),
		)
	})

	manifests := make([]project.Manifest, 0, len(ok))
	for _, h := range ok {
		manifests = append(manifests, h.manifest)
	}
	return manifests, skipped, nil
}

// persist writes the curated store first and the index second. Writes are
// atomic per file and are not interrupted by cancellation once started.
// When the index write fails the curated store is put back as it was, or
// emptied when there was none, so the next run scans again.
func (o *Orchestrator) persist(ctx context.Context, out *Outcome, logger *slog.Logger) error {
	ctx = context.WithoutCancel(ctx)
	previous := o.snapshotStore(ctx, out.State.StoreExisted)

	if err := o.storage.WriteJSON(ctx, datastore.ProjectsPath, project.Collection{Projects: out.Manifests}); err != nil {
		return fmt.Errorf("%w: writing %s: %w", ErrPersistence, datastore.ProjectsPath, err)
	}
	out.Index.LastUpdated = o.now().UTC().Format(time.RFC3339Nano)
	if err := o.storage.WriteJSON(ctx, datastore.ProjectIndexPath, out.Index); err != nil {
		err = fmt.Errorf("%w: writing %s: %w", ErrPersistence, datastore.ProjectIndexPath, err)
		if restoreErr := o.storage.WriteJSON(ctx, datastore.ProjectsPath, previous); restoreErr != nil {
			logger.Error("failed to restore curated store", "path", datastore.ProjectsPath, "error", restoreErr)
			return errors.Join(err, fmt.Errorf("restoring %s: %w", datastore.ProjectsPath, restoreErr))
		}
		return err
	}
	out.Persisted = true
	return nil
}

// snapshotStore returns the document persist restores on failure.
func (o *Orchestrator) snapshotStore(ctx context.Context, existed bool) any {
	if existed {
		var raw json.RawMessage
		if err := o.storage.ReadJSON(ctx, datastore.ProjectsPath, &raw); err == nil {
			return raw
		}
	}
	return project.Collection{Projects: []project.Manifest{}}
}

// finish refreshes the data store and emits the data-ready signal.
func (o *Orchestrator) finish(ctx context.Context, logger *slog.Logger) {
	if o.store == nil {
		return
	}
	if err := o.store.Reload(ctx); err != nil {
		logger.Error("data store reload failed", "error", err)
	}
	o.store.NotifyReady()
}

func (o *Orchestrator) record(ctx context.Context, logger *slog.Logger, runID string, typ activity.Type, subject, summary string, details any) {
	if o.journal == nil {
		return
	}
	entry := &activity.Entry{
		RunID:   runID,
		Type:    typ,
		Subject: subject,
		Summary: summary,
	}
	if details != nil {
		if data, err := json.Marshal(details); err == nil {
			entry.Details = string(data)
		}
	}
	if err := o.journal.LogActivity(context.WithoutCancel(ctx), entry); err != nil {
		logger.Warn("journal write failed", "type", typ, "error", err)
	}
}
