package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/ganot/dx-portfolio/internal/fsstore"
	"github.com/ganot/dx-portfolio/internal/repository"
	"github.com/stretchr/testify/require"
)

// tracingStorage wraps a real store, records writes and injects failures.
type tracingStorage struct {
	repository.Storage

	mu        sync.Mutex
	writes    []string
	failWrite map[string]error
	failList  map[string]error
	failRead  map[string]error
	onRead    func(path string)
}

func newTracingStorage(t *testing.T, root string) *tracingStorage {
	t.Helper()
	store, err := fsstore.New(root)
	require.NoError(t, err)
	return &tracingStorage{
		Storage:   store,
		failWrite: map[string]error{},
		failList:  map[string]error{},
		failRead:  map[string]error{},
	}
}

func (s *tracingStorage) ReadJSON(ctx context.Context, path string, v any) error {
	if s.onRead != nil {
		s.onRead(path)
	}
	s.mu.Lock()
	err := s.failRead[path]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Storage.ReadJSON(ctx, path, v)
}

func (s *tracingStorage) WriteJSON(ctx context.Context, path string, v any) error {
	s.mu.Lock()
	s.writes = append(s.writes, path)
	err := s.failWrite[path]
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return s.Storage.WriteJSON(ctx, path, v)
}

func (s *tracingStorage) ListDir(ctx context.Context, path string) ([]string, error) {
	s.mu.Lock()
	err := s.failList[path]
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return s.Storage.ListDir(ctx, path)
}

func (s *tracingStorage) Writes() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.writes...)
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func readFile(t *testing.T, root, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(data)
}

func fileExists(root, rel string) bool {
	_, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil
}
