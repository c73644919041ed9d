package transport

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ganot/dx-portfolio/internal/domain/activity"
	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/domain/settings"
	"github.com/ganot/dx-portfolio/internal/domain/user"
	"github.com/ganot/dx-portfolio/internal/pipeline"
)

// ProjectService defines project queries served over HTTP.
type ProjectService interface {
	List(ctx context.Context, opts project.ListOptions) ([]project.IndexEntry, error)
	Get(ctx context.Context, id string) (*project.Manifest, error)
	Stats(ctx context.Context) (project.Stats, error)
}

// DataSource exposes the loaded roster and settings.
type DataSource interface {
	Users() []user.User
	Settings() *settings.Settings
}

// ActivityService defines journal queries served over HTTP.
type ActivityService interface {
	GetRecentActivity(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error)
}

// Pipeline runs one initialization pass.
type Pipeline interface {
	Run(ctx context.Context) (*pipeline.Outcome, error)
}

// Services groups the handlers' dependencies.
type Services struct {
	Projects ProjectService
	Data     DataSource
	Activity ActivityService
	Pipeline Pipeline
}

// Options configures the router.
type Options struct {
	// APIToken protects POST /api/reload when set.
	APIToken string
	// MCP is mounted at /mcp when set.
	MCP    http.Handler
	Logger *slog.Logger
}

// Server wires HTTP handlers.
type Server struct {
	svc    Services
	logger *slog.Logger
}

const defaultActivityLimit = 50

// NewServer creates the HTTP router.
func NewServer(svc Services, opts Options) *chi.Mux {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	srv := &Server{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", srv.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/projects", srv.handleListProjects)
		r.Get("/projects/{id}", srv.handleGetProject)
		r.Get("/stats", srv.handleStats)
		r.Get("/users", srv.handleUsers)
		r.Get("/settings", srv.handleSettings)
		r.Get("/activity", srv.handleActivity)
		r.With(TokenMiddleware(opts.APIToken)).Post("/reload", srv.handleReload)
	})
	if opts.MCP != nil {
		r.Handle("/mcp", opts.MCP)
		r.Handle("/mcp/*", opts.MCP)
	}

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	entries, err := s.svc.Projects.List(r.Context(), project.ListOptions{
		Status:  project.Status(q.Get("status")),
		OwnerID: q.Get("owner"),
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"projects": entries, "count": len(entries)})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.Projects.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Projects.Stats(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleUsers(w http.ResponseWriter, _ *http.Request) {
	users := s.svc.Data.Users()
	profiles := make([]user.Profile, 0, len(users))
	for _, u := range users {
		profiles = append(profiles, u.Profile())
	}
	writeJSON(w, http.StatusOK, map[string]any{"users": profiles})
}

func (s *Server) handleSettings(w http.ResponseWriter, _ *http.Request) {
	cfg := s.svc.Data.Settings()
	if cfg == nil {
		writeError(w, http.StatusNotFound, "settings not initialized")
		return
	}
	writeJSON(w, http.StatusOK, cfg)
}

func (s *Server) handleActivity(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := activity.ListOptions{RunID: q.Get("run_id"), Limit: defaultActivityLimit}
	if typ := q.Get("type"); typ != "" {
		t := activity.Type(typ)
		opts.Type = &t
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		opts.Limit = limit
	}
	entries, err := s.svc.Activity.GetRecentActivity(r.Context(), opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

// ReloadResponse summarizes a pipeline run triggered over HTTP.
type ReloadResponse struct {
	RunID     string        `json:"run_id"`
	Phase     string        `json:"phase"`
	Rescanned bool          `json:"rescanned"`
	Persisted bool          `json:"persisted"`
	Projects  int           `json:"projects"`
	Skipped   int           `json:"skipped"`
	Stats     project.Stats `json:"stats"`
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	// A client hanging up must not abort a run between its two writes.
	out, err := s.svc.Pipeline.Run(context.WithoutCancel(r.Context()))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, ReloadResponse{
		RunID:     out.RunID,
		Phase:     out.State.Phase.String(),
		Rescanned: out.State.Rescanned,
		Persisted: out.Persisted,
		Projects:  len(out.Manifests),
		Skipped:   len(out.Skipped),
		Stats:     out.Index.Stats,
	})
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
	writeError(w, status, err.Error())
}
