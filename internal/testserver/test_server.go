package testserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/ganot/dx-portfolio/internal/datastore"
	"github.com/ganot/dx-portfolio/internal/domain/activity"
	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/fsstore"
	"github.com/ganot/dx-portfolio/internal/mcp"
	"github.com/ganot/dx-portfolio/internal/pipeline"
	"github.com/ganot/dx-portfolio/internal/sqlite"
	"github.com/ganot/dx-portfolio/internal/transport"
)

// TestServer is a fully wired HTTP server over a temporary data root.
type TestServer struct {
	Server   *httptest.Server
	Root     string
	Token    string
	Store    *datastore.Store
	Pipeline *pipeline.Orchestrator
	Journal  *activity.Service
	// Initial is the outcome of the run performed by New.
	Initial *pipeline.Outcome
}

// New writes layout (relative path to file content) under a fresh data
// root, runs the pipeline once and starts serving.
func New(t *testing.T, token string, layout map[string]string) *TestServer {
	t.Helper()

	root := t.TempDir()
	for rel, content := range layout {
		WriteFile(t, root, rel, content)
	}

	storage, err := fsstore.New(root)
	require.NoError(t, err)

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)

	journal := activity.NewService(sqlite.NewActivityRepository(db), nil)
	store := datastore.New(storage, nil)
	orchestrator := pipeline.New(storage, pipeline.Options{
		Concurrency: 2,
		Journal:     journal,
		Store:       store,
	})

	initial, err := orchestrator.Run(context.Background())
	require.NoError(t, err)

	projects := project.NewService(store, nil)
	mcpServer := mcp.NewServer(mcp.Config{
		Services: mcp.Services{
			Projects: projects,
			Users:    store,
			Activity: journal,
			Pipeline: orchestrator,
		},
		Version: "test",
	})
	mcpHandler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)

	server := httptest.NewServer(transport.NewServer(transport.Services{
		Projects: projects,
		Data:     store,
		Activity: journal,
		Pipeline: orchestrator,
	}, transport.Options{APIToken: token, MCP: mcpHandler}))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:   server,
		Root:     root,
		Token:    token,
		Store:    store,
		Pipeline: orchestrator,
		Journal:  journal,
		Initial:  initial,
	}
}

// WriteFile creates root/rel with content, making parent directories.
func WriteFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

// Exists reports whether rel exists under the data root.
func (ts *TestServer) Exists(rel string) bool {
	_, err := os.Stat(filepath.Join(ts.Root, filepath.FromSlash(rel)))
	return err == nil
}

// ReadFile returns the content of rel under the data root.
func (ts *TestServer) ReadFile(t *testing.T, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(ts.Root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}
