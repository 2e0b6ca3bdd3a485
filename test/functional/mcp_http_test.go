package functional_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ganot/unolims/internal/app"
	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/domain/requester"
	"github.com/ganot/unolims/internal/i18n"
	"github.com/ganot/unolims/internal/mcp"
	"github.com/ganot/unolims/internal/remote"
	"github.com/ganot/unolims/internal/screen"
	"github.com/ganot/unolims/internal/testserver"
	"github.com/ganot/unolims/internal/transport"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

const apiKey = "functional-key"

// bearer adds the API key to every request.
type bearer struct {
	token string
	next  http.RoundTripper
}

func (b bearer) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("Authorization", "Bearer "+b.token)
	return b.next.RoundTrip(r)
}

type httpEnv struct {
	lims   *testserver.TestServer
	server *httptest.Server
}

func newHTTPEnv(t *testing.T) *httpEnv {
	t.Helper()
	lims := testserver.New(t)
	apiCfg := config.Default().API
	apiCfg.BaseURL = lims.URL()
	apiCfg.Timeout = 5 * time.Second

	svc := app.NewServices(remote.New(apiCfg, nil), 0, nil)
	router := screen.NewRouter(svc, i18n.MustLookup(i18n.English), nil, nil)
	server := mcp.NewServer(mcp.Config{Handler: mcp.NewHandler(mcp.ServicesFrom(svc), router, nil)})

	streamable := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return server },
		nil,
	)
	auth := transport.AuthMiddleware(transport.NewStaticKeys([]string{apiKey}))
	ts := httptest.NewServer(transport.NewServer(streamable, auth, nil))
	t.Cleanup(ts.Close)
	return &httpEnv{lims: lims, server: ts}
}

func (e *httpEnv) connect(t *testing.T, token string) (*sdkmcp.ClientSession, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "test-client", Version: "1.0.0"}, nil)
	session, err := client.Connect(ctx, &sdkmcp.StreamableClientTransport{
		Endpoint:   e.server.URL + "/mcp",
		HTTPClient: &http.Client{Transport: bearer{token: token, next: http.DefaultTransport}},
	}, nil)
	if err != nil {
		return nil, err
	}
	t.Cleanup(func() { _ = session.Close() })
	return session, nil
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err, "CallTool %s failed", name)
	require.NotEmpty(t, result.Content, "Tool %s returned no content", name)
	return result
}

func text(t *testing.T, result *sdkmcp.CallToolResult) json.RawMessage {
	t.Helper()
	for _, content := range result.Content {
		if tc, ok := content.(*sdkmcp.TextContent); ok {
			return json.RawMessage(tc.Text)
		}
	}
	t.Fatal("no text content")
	return nil
}

func TestHTTPFunctional_RequesterLifecycle(t *testing.T) {
	env := newHTTPEnv(t)
	session, err := env.connect(t, apiKey)
	require.NoError(t, err)

	created := callTool(t, session, "create_requester", map[string]any{
		"cnpj":        "12345678000199",
		"postal_code": "50000000",
		"name":        "ACME Farma",
	})
	require.False(t, created.IsError, string(text(t, created)))

	listed := callTool(t, session, "list_requesters", nil)
	require.False(t, listed.IsError)
	var requesters []requester.Requester
	require.NoError(t, json.Unmarshal(text(t, listed), &requesters))
	require.Len(t, requesters, 1)
	require.Equal(t, "ACME Farma", requesters[0].Name)

	dup := callTool(t, session, "create_requester", map[string]any{
		"cnpj":        "12345678000199",
		"postal_code": "50000000",
	})
	require.True(t, dup.IsError)
	require.Contains(t, string(text(t, dup)), "Solicitante já cadastrado")
}

func TestHTTPFunctional_InvalidInputStaysLocal(t *testing.T) {
	env := newHTTPEnv(t)
	session, err := env.connect(t, apiKey)
	require.NoError(t, err)

	result := callTool(t, session, "create_requester", map[string]any{"cnpj": "123", "postal_code": "1"})
	require.True(t, result.IsError)
	require.Zero(t, env.lims.TotalCalls())
}

func TestHTTPFunctional_ViewRendering(t *testing.T) {
	env := newHTTPEnv(t)
	env.lims.AddRequester(requester.Requester{CNPJ: "12345678000199", Name: "ACME Farma"})
	session, err := env.connect(t, apiKey)
	require.NoError(t, err)

	result := callTool(t, session, "open_view", map[string]any{"route": "requesters"})
	require.False(t, result.IsError)
	require.Contains(t, string(text(t, result)), "ACME Farma")
}

func TestHTTPFunctional_RejectsWrongKey(t *testing.T) {
	env := newHTTPEnv(t)
	_, err := env.connect(t, "wrong")
	require.Error(t, err)
	require.Zero(t, env.lims.TotalCalls())
}
