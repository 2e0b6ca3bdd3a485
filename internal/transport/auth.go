package transport

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type clientKey struct{}

// KeyResolver resolves a client name from a bearer token.
type KeyResolver interface {
	ResolveClient(ctx context.Context, token string) (string, error)
}

// ClientFromContext returns the authenticated client name, if present.
func ClientFromContext(ctx context.Context) (string, bool) {
	client, ok := ctx.Value(clientKey{}).(string)
	return client, ok
}

// StaticKeys accepts a fixed set of API keys. Clients are named key-1, key-2...
// in the order the keys were configured.
type StaticKeys struct {
	digests [][sha256.Size]byte
}

// NewStaticKeys hashes keys once; blank keys are skipped.
func NewStaticKeys(keys []string) *StaticKeys {
	s := &StaticKeys{}
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			s.digests = append(s.digests, sha256.Sum256([]byte(k)))
		}
	}
	return s
}

// Len returns the number of usable keys.
func (s *StaticKeys) Len() int { return len(s.digests) }

// ResolveClient compares in constant time against every key.
func (s *StaticKeys) ResolveClient(_ context.Context, token string) (string, error) {
	got := sha256.Sum256([]byte(token))
	match := -1
	for i, d := range s.digests {
		if subtle.ConstantTimeCompare(got[:], d[:]) == 1 {
			match = i
		}
	}
	if match < 0 {
		return "", ErrUnauthorized
	}
	return fmt.Sprintf("key-%d", match+1), nil
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver KeyResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			client, err := resolver.ResolveClient(r.Context(), token)
			if err != nil || client == "" {
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), clientKey{}, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
