package transport

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type recordingHandler struct {
	path    string
	client  string
	session string
}

func (h *recordingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.path = r.URL.Path
	h.client, _ = ClientFromContext(r.Context())
	h.session, _ = SessionIDFromContext(r.Context())
	w.WriteHeader(http.StatusAccepted)
}

func TestHTTPServer_MCP(t *testing.T) {
	handler := &recordingHandler{}
	server := httptest.NewServer(NewServer(handler, AuthMiddleware(NewStaticKeys([]string{"token"})), nil))
	t.Cleanup(server.Close)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/mcp", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer token")
	req.Header.Set("Mcp-Session-Id", "sess1")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	require.Equal(t, "/mcp", handler.path)
	require.Equal(t, "key-1", handler.client)
	require.Equal(t, "sess1", handler.session)
}

func TestHTTPServer_MCPSubpathAndAuth(t *testing.T) {
	handler := &recordingHandler{}
	server := httptest.NewServer(NewServer(handler, AuthMiddleware(NewStaticKeys([]string{"token"})), nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/mcp/stream")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Empty(t, handler.path)
}

func TestHTTPServer_Health(t *testing.T) {
	server := httptest.NewServer(NewServer(&recordingHandler{}, AuthMiddleware(NewStaticKeys([]string{"token"})), nil))
	t.Cleanup(server.Close)

	resp, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))
}

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	server := httptest.NewServer(NewServer(&recordingHandler{}, nil, zap.New(core)))
	t.Cleanup(server.Close)

	req, err := http.NewRequest(http.MethodPost, server.URL+"/mcp", nil)
	require.NoError(t, err)
	req.Header.Set("Mcp-Session-Id", "sess9")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	require.Equal(t, "/mcp", fields["path"])
	require.EqualValues(t, http.StatusAccepted, fields["status"])
	require.Equal(t, "sess9", fields["session_id"])
}

func TestRequestLogger_AssignedSession(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	assign := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(SessionHeader, "new-session")
		w.WriteHeader(http.StatusOK)
	})
	server := httptest.NewServer(NewServer(assign, nil, zap.New(core)))
	t.Cleanup(server.Close)

	resp, err := http.Post(server.URL+"/mcp", "application/json", nil)
	require.NoError(t, err)
	_ = resp.Body.Close()

	entries := logs.FilterMessage("http request").All()
	require.Len(t, entries, 1)
	require.Equal(t, "new-session", entries[0].ContextMap()["session_id"])
}
