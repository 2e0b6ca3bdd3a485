package remote

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ganot/unolims/internal/config"
	"github.com/ganot/unolims/internal/repository"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(h)
	t.Cleanup(server.Close)
	return New(config.APIConfig{BaseURL: server.URL, Timeout: 2 * time.Second}, nil)
}

func TestClient_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	var out map[string]any
	err := client.get(context.Background(), "/x", &out)
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestClient_NullBodyOnSingleRead(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("null"))
	})
	var out map[string]any
	err := client.do(context.Background(), call{method: http.MethodGet, path: "/x", out: &out, single: true})
	require.ErrorIs(t, err, repository.ErrNotFound)

	var list []string
	require.NoError(t, client.get(context.Background(), "/x", &list))
	require.Empty(t, list)
}

func TestClient_RemoteErrorMessage(t *testing.T) {
	for field, body := range map[string]string{
		"erro":    `{"erro":"Estoque já existe"}`,
		"message": `{"message":"Estoque já existe"}`,
		"error":   `{"error":"Estoque já existe"}`,
	} {
		t.Run(field, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusConflict)
				_, _ = w.Write([]byte(body))
			})
			err := client.post(context.Background(), "/estoque", map[string]string{}, nil)
			var remote *repository.RemoteError
			require.True(t, errors.As(err, &remote))
			require.Equal(t, http.StatusConflict, remote.Status)
			require.Equal(t, "Estoque já existe", remote.Message)
		})
	}
}

func TestClient_RemoteErrorWithoutMessage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte("<html>bad</html>"))
	})
	err := client.get(context.Background(), "/x", nil)
	require.ErrorIs(t, err, repository.ErrInvalidInput)
	_, ok := repository.ServerMessage(err)
	require.False(t, ok)
}

func TestClient_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	client := New(config.APIConfig{BaseURL: url, Timeout: time.Second}, nil)
	err := client.get(context.Background(), "/x", nil)
	require.ErrorIs(t, err, repository.ErrUnavailable)
}

func TestClient_HeadersAndToken(t *testing.T) {
	var auth, reqID string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get(RequestIDHeader)
		_, _ = w.Write([]byte(`[]`))
	})

	require.NoError(t, client.get(context.Background(), "/x", nil))
	require.Empty(t, auth)
	require.Len(t, reqID, 36)

	client.SetToken("tok")
	require.NoError(t, client.get(context.Background(), "/x", nil))
	require.Equal(t, "Bearer tok", auth)
}

func TestClient_ContextToken(t *testing.T) {
	var auth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	})
	client.SetToken("shared")

	require.NoError(t, client.get(WithToken(context.Background(), "own"), "/x", nil))
	require.Equal(t, "Bearer own", auth)

	require.NoError(t, client.get(WithToken(context.Background(), ""), "/x", nil))
	require.Empty(t, auth)

	require.NoError(t, client.get(context.Background(), "/x", nil))
	require.Equal(t, "Bearer shared", auth)
}

func TestDecode_Envelope(t *testing.T) {
	var out []map[string]string
	require.NoError(t, decode([]byte(`{"data":[{"nome":"a"}]}`), &out, false))
	require.Len(t, out, 1)

	err := decode([]byte(`"oops"`), &out, false)
	require.Error(t, err)
}
