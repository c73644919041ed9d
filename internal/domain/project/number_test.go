package project_test

import (
	"encoding/json"
	"testing"

	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestNumber_NonZero(t *testing.T) {
	tests := map[string]bool{
		`1`:     true,
		`-1`:    true,
		`0.5`:   true,
		`"0"`:   true,
		`"abc"`: true,
		`true`:  true,
		`{}`:    true,
		`0`:     false,
		`""`:    false,
		`null`:  false,
		`false`: false,
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			var n project.Number
			require.NoError(t, json.Unmarshal([]byte(raw), &n))
			require.Equal(t, want, n.NonZero())
		})
	}
	require.False(t, project.Number{}.NonZero())
}

func TestNumber_Float64(t *testing.T) {
	var n project.Number
	require.NoError(t, json.Unmarshal([]byte(`" 12.5 "`), &n))
	f, ok := n.Float64()
	require.True(t, ok)
	require.Equal(t, 12.5, f)

	require.NoError(t, json.Unmarshal([]byte(`"soon"`), &n))
	_, ok = n.Float64()
	require.False(t, ok)

	_, ok = project.Number{}.Float64()
	require.False(t, ok)
}

func TestNumber_MarshalsAsWritten(t *testing.T) {
	var n project.Number
	require.NoError(t, json.Unmarshal([]byte(`1.50`), &n))
	out, err := json.Marshal(n)
	require.NoError(t, err)
	require.Equal(t, `1.50`, string(out))

	out, err = json.Marshal(project.NumberOf(999))
	require.NoError(t, err)
	require.Equal(t, `999`, string(out))
}
