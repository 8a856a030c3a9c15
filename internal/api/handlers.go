package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/articleservice"
	"github.com/starford/folio/internal/catalog"
)

// Handler holds API route handlers.
type Handler struct {
	svc *articleservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *articleservice.Service) *Handler {
	return &Handler{svc: svc}
}

// queryFromRequest maps URL parameters onto a catalog query. The presence
// of q, even empty, engages free-text search.
func queryFromRequest(r *http.Request) catalog.Query {
	v := r.URL.Query()
	q := catalog.Query{
		Category: v.Get("category"),
		Tag:      v.Get("tag"),
		Month:    v.Get("month"),
	}
	if v.Has("q") {
		text := v.Get("q")
		q.Text = &text
	}
	return q
}

func intParam(r *http.Request, name string) int {
	n, _ := strconv.Atoi(r.URL.Query().Get(name))
	return n
}

// ListArticles handles GET /api/articles.
//
//	@Summary		List articles with optional filters and pagination
//	@Tags			articles
//	@Produce		json
//	@Param			category	query		string	false	"Category (case-insensitive)"
//	@Param			tag			query		string	false	"Exact tag"
//	@Param			month		query		string	false	"YYYY-MM"
//	@Param			q			query		string	false	"Free-text search"
//	@Param			limit		query		int		false	"Page size"
//	@Param			offset		query		int		false	"Page offset"
//	@Success		200			{object}	ArticleListResponse
//	@Failure		400			{object}	errResponse
//	@Router			/articles [get]
func (h *Handler) ListArticles(w http.ResponseWriter, r *http.Request) {
	items, total, err := h.svc.ListArticles(r.Context(), queryFromRequest(r), intParam(r, "limit"), intParam(r, "offset"))
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidQuery) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("list articles failed", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, ArticleListResponse{Articles: items, Total: total})
}

// GetArticle handles GET /api/articles/{slug}.
//
//	@Summary		Get a single article by slug
//	@Tags			articles
//	@Produce		json
//	@Param			slug	path		string	true	"Article slug"
//	@Success		200		{object}	models.Article
//	@Failure		404		{object}	errResponse
//	@Router			/articles/{slug} [get]
func (h *Handler) GetArticle(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	article, err := h.svc.GetArticle(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not found")
			return
		}
		slog.Error("get article failed", slog.String("slug", slug), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, article)
}

// Feed handles GET /api/feed.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Recent(r.Context())
	writeJSON(w, http.StatusOK, ArticleListResponse{Articles: items, Total: len(items)})
}

// Categories handles GET /api/categories.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, CategoriesResponse{Categories: h.svc.Stats(r.Context()).Categories})
}

// CategoryArticles handles GET /api/categories/{name}/articles.
func (h *Handler) CategoryArticles(w http.ResponseWriter, r *http.Request) {
	items := h.svc.CategoryArticles(r.Context(), chi.URLParam(r, "name"))
	writeJSON(w, http.StatusOK, ArticleListResponse{Articles: items, Total: len(items)})
}

// Tags handles GET /api/tags.
func (h *Handler) Tags(w http.ResponseWriter, r *http.Request) {
	counts := h.svc.Stats(r.Context()).Tags
	tags := make([]string, len(counts))
	for i, c := range counts {
		tags[i] = c.Tag
	}
	writeJSON(w, http.StatusOK, TagsResponse{Tags: tags, Counts: counts})
}

// Archives handles GET /api/archives.
func (h *Handler) Archives(w http.ResponseWriter, r *http.Request) {
	st := h.svc.Stats(r.Context())
	writeJSON(w, http.StatusOK, ArchivesResponse{Archives: st.Archives, LastUpdate: st.LastUpdate})
}

// Sidebar handles GET /api/sidebar.
func (h *Handler) Sidebar(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Sidebar(r.Context()))
}

// Search handles GET /api/search. An empty q yields an empty result.
//
//	@Summary		Search titles, descriptions, categories and tags
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	false	"Search text"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	results := h.svc.Search(r.Context(), r.URL.Query().Get("q"), intParam(r, "limit"))
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// SearchContent handles GET /api/search/content.
//
//	@Summary		Search article bodies
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	false	"Search text"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	ContentSearchResponse
//	@Router			/search/content [get]
func (h *Handler) SearchContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	results, err := h.svc.SearchContent(r.Context(), q, intParam(r, "limit"))
	if err != nil {
		slog.Error("content search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, ContentSearchResponse{Results: results})
}
