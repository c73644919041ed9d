package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ganot/dx-portfolio/internal/datastore"
	"github.com/ganot/dx-portfolio/internal/domain/settings"
	"github.com/ganot/dx-portfolio/internal/domain/user"
	"github.com/ganot/dx-portfolio/internal/pipeline"
	"github.com/stretchr/testify/require"
)

func TestSeeder_EmptyRoot(t *testing.T) {
	root := t.TempDir()
	storage := newTracingStorage(t, root)

	report, err := pipeline.NewSeeder(storage, nil).EnsureSeedData(context.Background())
	require.NoError(t, err)
	require.True(t, report.UsersWritten)
	require.True(t, report.SettingsWritten)
	require.False(t, report.UsersExisted)

	var roster user.Roster
	require.NoError(t, json.Unmarshal([]byte(readFile(t, root, datastore.UsersPath)), &roster))
	require.Len(t, roster.Users, 4)
	for _, u := range roster.Users {
		require.Equal(t, user.PlaceholderPassword, u.Password)
		require.Nil(t, u.Avatar)
	}

	var cfg settings.Settings
	require.NoError(t, json.Unmarshal([]byte(readFile(t, root, datastore.SettingsPath)), &cfg))
	require.Equal(t, settings.DefaultAppName, cfg.AppName)
	require.Equal(t, settings.DefaultTheme, cfg.Theme)
	require.Len(t, cfg.ProjectStatuses, 5)
}

func TestSeeder_CompletesPartialStore(t *testing.T) {
	root := t.TempDir()
	const customUsers = `{"users":[{"id":"someone"}]}`
	writeFile(t, root, datastore.UsersPath, customUsers)
	storage := newTracingStorage(t, root)

	report, err := pipeline.NewSeeder(storage, nil).EnsureSeedData(context.Background())
	require.NoError(t, err)
	require.True(t, report.UsersExisted)
	require.False(t, report.UsersWritten)
	require.True(t, report.SettingsWritten)

	require.Equal(t, customUsers, readFile(t, root, datastore.UsersPath))
	require.Equal(t, []string{datastore.SettingsPath}, storage.Writes())
}

func TestSeeder_Idempotent(t *testing.T) {
	root := t.TempDir()
	storage := newTracingStorage(t, root)
	seeder := pipeline.NewSeeder(storage, nil)

	_, err := seeder.EnsureSeedData(context.Background())
	require.NoError(t, err)
	before := readFile(t, root, datastore.SettingsPath)

	report, err := seeder.EnsureSeedData(context.Background())
	require.NoError(t, err)
	require.False(t, report.Wrote())
	require.Len(t, storage.Writes(), 2)
	require.Equal(t, before, readFile(t, root, datastore.SettingsPath))
}

func TestSeeder_WriteFailure(t *testing.T) {
	root := t.TempDir()
	storage := newTracingStorage(t, root)
	storage.failWrite[datastore.SettingsPath] = errors.New("disk full")

	report, err := pipeline.NewSeeder(storage, nil).EnsureSeedData(context.Background())
	require.ErrorIs(t, err, pipeline.ErrPersistence)
	require.True(t, report.UsersWritten)
	require.False(t, report.SettingsWritten)
	require.True(t, fileExists(root, datastore.UsersPath))
}
