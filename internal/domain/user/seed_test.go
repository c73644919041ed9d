package user_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/ganot/dx-portfolio/internal/domain/user"
	"github.com/stretchr/testify/require"
)

func TestDefaultRoster(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	roster := user.DefaultRoster(now)

	require.Len(t, roster.Users, 4)
	ids := map[string]bool{}
	for _, u := range roster.Users {
		ids[u.ID] = true
		require.Equal(t, u.ID, u.Username)
		require.Equal(t, user.PlaceholderPassword, u.Password)
		require.Nil(t, u.Avatar)
		require.Equal(t, now, u.CreatedAt)
		require.NotEmpty(t, u.Name)
		require.NotEmpty(t, u.Role)
		require.Contains(t, u.Email, "@")
	}
	require.Len(t, ids, 4)
}

func TestProfileOmitsCredential(t *testing.T) {
	u := user.DefaultRoster(time.Now()).Users[0]
	data, err := json.Marshal(u.Profile())
	require.NoError(t, err)
	require.NotContains(t, string(data), "password")
	require.Contains(t, string(data), `"avatar":null`)
}
