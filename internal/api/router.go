package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/articleservice"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *articleservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))
	r.Use(VersionMiddleware(svc.Current))

	r.Get("/articles", h.ListArticles)
	r.Get("/articles/{slug}", h.GetArticle)

	r.Get("/feed", h.Feed)

	r.Get("/categories", h.Categories)
	r.Get("/categories/{name}/articles", h.CategoryArticles)
	r.Get("/tags", h.Tags)
	r.Get("/archives", h.Archives)
	r.Get("/sidebar", h.Sidebar)

	r.Get("/search", h.Search)
	r.Get("/search/content", h.SearchContent)

	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
