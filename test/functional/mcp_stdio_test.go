package functional_test

import (
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/testserver"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

// newStdioSession runs the server binary as a subprocess against a fake LIMS.
func newStdioSession(t *testing.T, lims *testserver.TestServer) *sdkmcp.ClientSession {
	t.Helper()

	binaryPath := "./bin/unolims-server"
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		binaryPath = "../../bin/unolims-server"
		if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
			t.Skip("Server binary not found. Run 'go build -o bin/unolims-server ./cmd/server' first.")
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	cmd := exec.CommandContext(ctx, binaryPath)
	cmd.Env = append(os.Environ(),
		"UNOLIMS_CONFIG_PATH=",
		"UNOLIMS_SERVER_MODE=stdio",
		"UNOLIMS_API_BASE_URL="+lims.URL(),
		"UNOLIMS_PREFS_BACKEND=sqlite",
		"UNOLIMS_PREFS_PATH="+filepath.Join(t.TempDir(), "prefs.db"),
		"UNOLIMS_LOG_LEVEL=error",
	)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		cancel()
		t.Fatalf("Failed to connect: %v", err)
	}

	t.Cleanup(func() {
		_ = session.Close()
		cancel()
	})
	return session
}

func TestStdioFunctional_ToolsAndCalls(t *testing.T) {
	lims := testserver.New(t)
	lims.AddRequester(requester.Requester{CNPJ: "12345678000199", Name: "ACME Farma"})
	session := newStdioSession(t, lims)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tools, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	names := make(map[string]bool, len(tools.Tools))
	for _, tool := range tools.Tools {
		names[tool.Name] = true
	}
	require.True(t, names["list_requesters"])
	require.True(t, names["open_view"])

	result := callTool(t, session, "get_requester", map[string]any{"cnpj": "12345678000199"})
	require.False(t, result.IsError)
	var got requester.Requester
	require.NoError(t, json.Unmarshal(text(t, result), &got))
	require.Equal(t, "ACME Farma", got.Name)

	missing := callTool(t, session, "get_request", map[string]any{"code": "SA00992025"})
	require.True(t, missing.IsError)
}
