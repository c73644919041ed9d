package project_test

import (
	"encoding/json"
	"testing"

	"github.com/ganot/dx-portfolio/internal/domain/project"
	"github.com/stretchr/testify/require"
)

func TestManifest_PreservesUnknownFields(t *testing.T) {
	raw := `{
		"id": "p1",
		"title": "Vision QA",
		"ownerId": "hiram.gonzalez",
		"status": "develop",
		"currentPhase": "Sprint 3",
		"blockers": [{"type": "technical", "text": "GPU quota"}],
		"images": [{"src": "users/hiram.gonzalez/projects/p1/images/a.png", "title": "a", "caption": "Line 4"}]
	}`

	var m project.Manifest
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	require.Equal(t, "p1", m.ID)
	require.Equal(t, project.StatusDevelop, m.Status)
	require.Contains(t, m.Extra, "currentPhase")
	require.Contains(t, m.Extra, "blockers")
	require.NotContains(t, m.Extra, "id")
	require.Len(t, m.Images, 1)
	require.Contains(t, m.Images[0].Extra, "caption")

	out, err := json.Marshal(m)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	require.Equal(t, "Sprint 3", back["currentPhase"])
	require.Equal(t, "develop", back["status"])
	images := back["images"].([]any)
	require.Equal(t, "Line 4", images[0].(map[string]any)["caption"])
}

func TestManifest_NamedFieldsWinOverExtra(t *testing.T) {
	m := project.Manifest{
		ID:    "p1",
		Extra: map[string]json.RawMessage{"id": json.RawMessage(`"stale"`)},
	}
	out, err := json.Marshal(m)
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, json.Unmarshal(out, &back))
	require.Equal(t, "p1", back["id"])
}

func TestManifest_MediaArraysNeverOmitted(t *testing.T) {
	m := project.Manifest{ID: "p1", Images: []project.MediaAsset{}, Videos: []project.MediaAsset{}}
	out, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"p1","images":[],"videos":[]}`, string(out))
}

func TestManifest_ScheduleImageAlias(t *testing.T) {
	m := project.Manifest{GanttImagePath: "legacy.png"}
	require.Equal(t, "legacy.png", m.ScheduleImage())
	m.GanttImage = "current.png"
	require.Equal(t, "current.png", m.ScheduleImage())
}

func TestManifest_RejectsNonObject(t *testing.T) {
	var m project.Manifest
	require.Error(t, json.Unmarshal([]byte(`["not", "an", "object"]`), &m))
}

func TestManifest_WrongTypedMembersStayVerbatim(t *testing.T) {
	raw := `{"id":"p1","status":7,"priorityOrder":1.5,"progress":"40","images":{},"videos":["clip.mp4"]}`

	var m project.Manifest
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	require.Equal(t, "p1", m.ID)
	require.Empty(t, m.Status)
	require.JSONEq(t, `7`, string(m.Extra["status"]))

	order, ok := m.PriorityOrder.Float64()
	require.True(t, ok)
	require.Equal(t, 1.5, order)
	progress, ok := m.Progress.Float64()
	require.True(t, ok)
	require.Equal(t, 40.0, progress)

	require.Empty(t, m.Images)
	require.Len(t, m.Videos, 1)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"p1","status":7,"priorityOrder":1.5,"progress":"40","images":{},"videos":["clip.mp4"]}`, string(out))
}

func TestManifest_KeysMatchExactly(t *testing.T) {
	var m project.Manifest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","Title":"A"}`), &m))
	require.Empty(t, m.Title)

	out, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"p1","Title":"A","images":null,"videos":null}`, string(out))
}

func TestManifest_NullMembersRoundTrip(t *testing.T) {
	var m project.Manifest
	require.NoError(t, json.Unmarshal([]byte(`{"id":"p1","progress":null}`), &m))
	require.False(t, m.Progress.IsZero())
	require.False(t, m.Progress.NonZero())

	out, err := json.Marshal(m)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"p1","progress":null,"images":null,"videos":null}`, string(out))
}
