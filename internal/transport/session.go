package transport

import (
	"context"
	"net/http"
	"strings"
)

// SessionHeader carries the MCP session id on streamable HTTP requests.
const SessionHeader = "Mcp-Session-Id"

type sessionKey struct{}

// SessionIDFromContext returns the session ID from context, if present.
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionKey{}).(string)
	return sessionID, ok && sessionID != ""
}

// SessionMiddleware extracts Mcp-Session-Id and stores it in context.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sessionID := strings.TrimSpace(r.Header.Get(SessionHeader)); sessionID != "" {
			ctx := context.WithValue(r.Context(), sessionKey{}, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// responseSessionID is the session of a served request. An initialize
// request carries none; the server assigns one in its response header.
func responseSessionID(r *http.Request, w http.ResponseWriter) string {
	if id, ok := SessionIDFromContext(r.Context()); ok {
		return id
	}
	return w.Header().Get(SessionHeader)
}
