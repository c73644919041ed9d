package pipeline_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/dx-portfolio/internal/pipeline"
	"github.com/ganot/dx-portfolio/internal/repository/mocks"
	"github.com/stretchr/testify/require"
)

func TestScanner_NoUsersRoot(t *testing.T) {
	storage := newTracingStorage(t, t.TempDir())

	targets, err := pipeline.NewScanner(storage, nil).Collect(context.Background())
	require.NoError(t, err)
	require.Empty(t, targets)
}

func TestScanner_SkipsHiddenAndReservedEntries(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "users/README_ESTRUCTURA.md", "# layout")
	writeFile(t, root, "users/EXAMPLE_project.json", "{}")
	writeFile(t, root, "users/.DS_Store", "")
	writeFile(t, root, "users/.hidden/projects/p1/project.json", "{}")
	writeFile(t, root, "users/ana/projects/alpha/project.json", "{}")
	writeFile(t, root, "users/ana/projects/.trash/project.json", "{}")
	writeFile(t, root, "users/ana/projects/beta/project.json", "{}")
	writeFile(t, root, "users/bo/notes.txt", "no projects folder")

	targets, err := pipeline.NewScanner(newTracingStorage(t, root), nil).Collect(context.Background())
	require.NoError(t, err)
	require.Equal(t, []pipeline.Target{
		{UserID: "ana", ProjectID: "alpha", BasePath: "users/ana/projects/alpha"},
		{UserID: "ana", ProjectID: "beta", BasePath: "users/ana/projects/beta"},
	}, targets)
}

func TestScanner_UnreadableUsersRoot(t *testing.T) {
	ctx := context.Background()
	storage := &mocks.Storage{}
	storage.On("Exists", ctx, "users").Return(true, nil)
	storage.On("ListDir", ctx, "users").Return(nil, errors.New("permission denied"))

	targets, err := pipeline.NewScanner(storage, nil).Collect(ctx)
	require.ErrorIs(t, err, pipeline.ErrScanFailed)
	require.Empty(t, targets)
}

func TestScanner_UnreadableProjectsFolderDropsOnlyThatUser(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "users/ana/projects/alpha/project.json", "{}")
	writeFile(t, root, "users/bo/projects/gamma/project.json", "{}")
	storage := newTracingStorage(t, root)
	storage.failList["users/ana/projects"] = errors.New("permission denied")

	targets, err := pipeline.NewScanner(storage, nil).Collect(context.Background())
	require.NoError(t, err)
	require.Len(t, targets, 1)
	require.Equal(t, "bo", targets[0].UserID)
}

func TestScanner_TargetsStopsEarly(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "users/ana/projects/a/project.json", "{}")
	writeFile(t, root, "users/ana/projects/b/project.json", "{}")
	writeFile(t, root, "users/bo/projects/c/project.json", "{}")

	var seen []string
	for target, err := range pipeline.NewScanner(newTracingStorage(t, root), nil).Targets(context.Background()) {
		require.NoError(t, err)
		seen = append(seen, target.ProjectID)
		if len(seen) == 2 {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, seen)
}
