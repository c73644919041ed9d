package settings_test

import (
	"testing"
	"time"

	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/ganot/dx-portfolio/internal/domain/settings"
	"github.com/stretchr/testify/require"
)

func TestDefault_CoversEveryStatusAndPriority(t *testing.T) {
	cfg := settings.Default(time.Now())

	for _, status := range project.Statuses {
		style, ok := cfg.ProjectStatuses[string(status)]
		require.True(t, ok, "missing style for %s", status)
		require.NotEmpty(t, style.Label)
		require.NotEmpty(t, style.BadgeClass)
		require.NotEmpty(t, style.Icon)
	}
	for _, p := range []project.Priority{project.PriorityHigh, project.PriorityMedium, project.PriorityLow} {
		require.Contains(t, cfg.Priorities, string(p))
	}
	require.Len(t, cfg.BlockerTypes, 4)
	require.Equal(t, settings.DefaultTheme, cfg.Theme)
	require.Equal(t, settings.DefaultAppName, cfg.AppName)
}
