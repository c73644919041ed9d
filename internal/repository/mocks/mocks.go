package mocks

import (
	"context"

	"github.com/ganot/dx-portfolio/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// Storage is a mock for repository.Storage.
type Storage struct {
	mock.Mock
}

func (m *Storage) Exists(ctx context.Context, path string) (bool, error) {
	args := m.Called(ctx, path)
	return args.Bool(0), args.Error(1)
}

func (m *Storage) ReadJSON(ctx context.Context, path string, v any) error {
	args := m.Called(ctx, path, v)
	return args.Error(0)
}

func (m *Storage) WriteJSON(ctx context.Context, path string, v any) error {
	args := m.Called(ctx, path, v)
	return args.Error(0)
}

func (m *Storage) ListDir(ctx context.Context, path string) ([]string, error) {
	args := m.Called(ctx, path)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

// ActivityRepository is a mock for repository.ActivityRepository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) Log(ctx context.Context, entry *activity.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *ActivityRepository) List(ctx context.Context, opts activity.ListOptions) ([]activity.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]activity.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
