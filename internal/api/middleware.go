// Package api implements the Folio read-only REST API using chi.
package api

import (
	"net/http"
	"strings"

	"github.com/starford/folio/internal/catalog"
)

// VersionHeader carries the catalog snapshot version on every response.
const VersionHeader = "X-Catalog-Version"

// AuthMiddleware returns middleware that validates a Bearer token.
// If enabled is false, all requests pass through (disabled mode).
// If enabled is true, requests must carry a valid "Authorization: Bearer <token>" header.
func AuthMiddleware(enabled bool, token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled {
				next.ServeHTTP(w, r)
				return
			}
			auth := r.Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") || strings.TrimPrefix(auth, "Bearer ") != token {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// VersionMiddleware stamps responses with the version of the snapshot
// current at request time.
func VersionMiddleware(current func() *catalog.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(VersionHeader, current().Version())
			next.ServeHTTP(w, r)
		})
	}
}
