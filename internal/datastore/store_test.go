package datastore_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/ganot/dx-portfolio/internal/datastore"
	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/domain/user"
	"github.com/ganot/dx-portfolio/internal/fsstore"
	"github.com/ganot/dx-portfolio/internal/repository"
	"github.com/ganot/dx-portfolio/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStore_ReloadToleratesHandEditedValues(t *testing.T) {
	ctx := context.Background()
	storage, err := fsstore.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, storage.WriteJSON(ctx, datastore.ProjectsPath, json.RawMessage(`{"projects":[
		{"id":"p1","status":"pilot","priorityOrder":1.5,"progress":"40"},
		{"id":"p2","status":"develop","images":{}}
	]}`)))

	store := datastore.New(storage, nil)
	require.NoError(t, store.Reload(ctx))
	require.Len(t, store.Manifests(), 2)

	idx := store.Index()
	require.Equal(t, 2, idx.Stats.Total)
	require.Equal(t, project.NumberOf(1.5), idx.Projects[0].PriorityOrder)
	require.Equal(t, project.NumberOf(project.DefaultPriorityOrder), idx.Projects[1].PriorityOrder)
}

func TestStore_ReloadEmptyRoot(t *testing.T) {
	storage, err := fsstore.New(t.TempDir())
	require.NoError(t, err)

	store := datastore.New(storage, nil)
	require.NoError(t, store.Reload(context.Background()))
	require.Empty(t, store.Users())
	require.Empty(t, store.Manifests())
	require.Nil(t, store.Settings())
	require.Zero(t, store.Index().Stats.Total)
}

func TestStore_ReloadReadsCuratedData(t *testing.T) {
	ctx := context.Background()
	storage, err := fsstore.New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, storage.WriteJSON(ctx, datastore.UsersPath, user.Roster{Users: []user.User{{ID: "u1"}}}))
	require.NoError(t, storage.WriteJSON(ctx, datastore.ProjectsPath, project.Collection{Projects: []project.Manifest{
		{ID: "p1", OwnerID: "u1", Status: project.StatusPilot},
		{ID: "p2", OwnerID: "u1", Status: project.StatusDevelop},
	}}))

	store := datastore.New(storage, nil)
	require.NoError(t, store.Reload(ctx))
	require.Len(t, store.Users(), 1)
	require.Len(t, store.Manifests(), 2)

	idx := store.Index()
	require.Equal(t, 2, idx.Stats.Total)
	require.Equal(t, 1, idx.Stats.Pilot)
	require.Equal(t, "p1", idx.Projects[0].ID)
}

func TestStore_ReloadFailureKeepsPreviousView(t *testing.T) {
	ctx := context.Background()
	storage := &mocks.Storage{}
	storage.On("ReadJSON", ctx, datastore.UsersPath, mock.Anything).Return(repository.ErrNotFound).Once()
	storage.On("ReadJSON", ctx, datastore.ProjectsPath, mock.Anything).Run(func(args mock.Arguments) {
		c := args.Get(2).(*project.Collection)
		c.Projects = []project.Manifest{{ID: "p1"}}
	}).Return(nil).Once()
	storage.On("ReadJSON", ctx, datastore.SettingsPath, mock.Anything).Return(repository.ErrNotFound).Once()

	store := datastore.New(storage, nil)
	require.NoError(t, store.Reload(ctx))
	require.Len(t, store.Manifests(), 1)

	boom := errors.New("permission denied")
	storage.On("ReadJSON", ctx, datastore.UsersPath, mock.Anything).Return(boom).Once()
	require.ErrorIs(t, store.Reload(ctx), boom)
	require.Len(t, store.Manifests(), 1)
}

func TestStore_NotifyReady(t *testing.T) {
	storage, err := fsstore.New(t.TempDir())
	require.NoError(t, err)
	store := datastore.New(storage, nil)

	a := store.Subscribe()
	b := store.Subscribe()

	store.NotifyReady()
	store.NotifyReady()

	require.Len(t, a, 1)
	require.Len(t, b, 1)
	<-a
	require.Len(t, a, 0)
}
