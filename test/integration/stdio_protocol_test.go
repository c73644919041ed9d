package integration_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

func serverBinary(t *testing.T) string {
	t.Helper()
	for _, path := range []string{"./bin/portfolio", "../../bin/portfolio"} {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	t.Skip("Server binary not found. Run 'make build' first.")
	return ""
}

// TestStdioProtocolCompliance drives `portfolio serve` over stdio with the
// SDK client against an empty data root.
func TestStdioProtocolCompliance(t *testing.T) {
	binaryPath := serverBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	root := t.TempDir()
	cmd := exec.CommandContext(ctx, binaryPath, "serve")
	cmd.Env = append(os.Environ(),
		"PORTFOLIO_TRANSPORT=stdio",
		"PORTFOLIO_DATA_ROOT="+root,
		"PORTFOLIO_JOURNAL_PATH=:memory:",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	require.NoError(t, err, "Failed to connect to server")
	defer session.Close()

	t.Run("ServerInfo", func(t *testing.T) {
		initResult := session.InitializeResult()
		require.NotNil(t, initResult)
		require.NotNil(t, initResult.ServerInfo)
		require.Equal(t, "dx-portfolio", initResult.ServerInfo.Name)
	})

	t.Run("ListTools", func(t *testing.T) {
		tools, err := session.ListTools(ctx, nil)
		require.NoError(t, err)
		require.Len(t, tools.Tools, 6)
	})

	t.Run("SeededUsers", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "list_users"})
		require.NoError(t, err)
		require.False(t, result.IsError)

		text, ok := result.Content[0].(*sdkmcp.TextContent)
		require.True(t, ok)
		var body struct {
			Users []map[string]any `json:"users"`
		}
		require.NoError(t, json.Unmarshal([]byte(text.Text), &body))
		require.Len(t, body.Users, 4)
	})

	t.Run("EmptyStats", func(t *testing.T) {
		result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: "get_stats"})
		require.NoError(t, err)
		require.False(t, result.IsError)
	})
}
