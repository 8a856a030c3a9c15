// Package articleservice owns the current catalog snapshot and answers the
// read queries shared by the HTTP API and the MCP server.
package articleservice

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/storage"
)

// Default number of newest articles on the home feed and in the sidebar.
const (
	DefaultFeedRecent    = 5
	DefaultSidebarRecent = 3
)

// ArticleSummary is an article without its body, used in list responses.
type ArticleSummary struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags,omitempty"`
	Description   string   `json:"description,omitempty"`
	CoverImageURL string   `json:"coverImageUrl,omitempty"`
}

// Stats bundles every aggregation view of the current snapshot.
type Stats struct {
	Version    string                  `json:"version"`
	LoadedAt   time.Time               `json:"loadedAt"`
	Total      int                     `json:"total"`
	Categories []catalog.CategoryCount `json:"categories"`
	Tags       []catalog.TagCount      `json:"tags"`
	Archives   []catalog.ArchiveBucket `json:"archives"`
	LastUpdate string                  `json:"lastUpdate"`
}

// Service coordinates document acquisition, the catalog snapshot and the
// content index.
type Service struct {
	store  storage.Provider
	index  index.ContentIndex
	logger *slog.Logger
	feedRecent    int
	sidebarRecent int

	current     atomic.Pointer[catalog.Store]
	reloadMu    sync.Mutex
	fingerprint string
}

// NewService creates a service with an empty snapshot. Call Reload before
// serving traffic. feedRecent and sidebarRecent size the home feed and the
// sidebar's recent posts; non-positive values select the defaults.
func NewService(store storage.Provider, idx index.ContentIndex, logger *slog.Logger, feedRecent, sidebarRecent int) *Service {
	if feedRecent <= 0 {
		feedRecent = DefaultFeedRecent
	}
	if sidebarRecent <= 0 {
		sidebarRecent = DefaultSidebarRecent
	}
	s := &Service{
		store:         store,
		index:         idx,
		logger:        logger,
		feedRecent:    feedRecent,
		sidebarRecent: sidebarRecent,
	}
	s.current.Store(catalog.Load(nil))
	return s
}

// Current returns the snapshot in use. It never changes after it is
// returned; a reload installs a new one.
func (s *Service) Current() *catalog.Store {
	return s.current.Load()
}

// Reload reads every document, builds a new snapshot, mirrors it into the
// content index and installs it. It reports false without swapping when
// the documents are unchanged since the last reload.
func (s *Service) Reload(ctx context.Context) (*catalog.Store, bool, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	docs, err := storage.LoadDocuments(s.store, s.logger)
	if err != nil {
		return s.Current(), false, err
	}
	fp := storage.Fingerprint(docs)
	if fp == s.fingerprint {
		return s.Current(), false, nil
	}

	next := catalog.Load(docs)
	if err := s.index.Replace(ctx, next.All()); err != nil {
		return s.Current(), false, fmt.Errorf("articleservice: mirror index: %w", err)
	}
	s.current.Store(next)
	s.fingerprint = fp

	s.logger.Info("catalog loaded",
		slog.Int("articles", next.Len()),
		slog.String("version", next.Version()))
	return next, true, nil
}

// ListArticles filters the snapshot and returns one page of summaries plus
// the total number of matches.
func (s *Service) ListArticles(_ context.Context, q catalog.Query, limit, offset int) ([]ArticleSummary, int, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", apperr.ErrInvalidQuery, err)
	}
	matched := catalog.Filter(s.Current().All(), q)
	return Summaries(catalog.Page(matched, limit, offset)), len(matched), nil
}

// GetArticle returns the article with the given slug.
func (s *Service) GetArticle(_ context.Context, slug string) (models.Article, error) {
	a, ok := s.Current().BySlug(slug)
	if !ok {
		return models.Article{}, apperr.ErrNotFound
	}
	return a, nil
}

// CategoryArticles returns the summaries in one category.
func (s *Service) CategoryArticles(_ context.Context, name string) []ArticleSummary {
	return Summaries(s.Current().ByCategory(name))
}

// Stats computes every aggregation over the snapshot.
func (s *Service) Stats(_ context.Context) Stats {
	cur := s.Current()
	all := cur.All()
	last, ok := catalog.LastUpdate(all)
	if !ok {
		last = catalog.NoLastUpdate
	}
	return Stats{
		Version:    cur.Version(),
		LoadedAt:   cur.LoadedAt(),
		Total:      len(all),
		Categories: catalog.CategoryCounts(all),
		Tags:       catalog.TagCounts(all),
		Archives:   catalog.ArchiveBuckets(all),
		LastUpdate: last,
	}
}

// Recent returns the home feed: the newest articles, up to the configured
// feed size.
func (s *Service) Recent(_ context.Context) []ArticleSummary {
	return Summaries(s.Current().Recent(s.feedRecent))
}

// Sidebar returns the sidebar summary of the snapshot.
func (s *Service) Sidebar(_ context.Context) catalog.SidebarSummary {
	return catalog.Sidebar(s.Current().All(), s.sidebarRecent)
}

// Search runs a free-text search over titles, descriptions, categories and
// tags. A blank text matches nothing.
func (s *Service) Search(_ context.Context, text string, limit int) []ArticleSummary {
	matched := catalog.Filter(s.Current().All(), catalog.TextQuery(text))
	return Summaries(catalog.Page(matched, limit, 0))
}

// SearchContent delegates body search to the content index.
func (s *Service) SearchContent(ctx context.Context, text string, limit int) ([]index.SearchResult, error) {
	return s.index.SearchContent(ctx, text, limit)
}

// Summaries strips article bodies.
func Summaries(articles []models.Article) []ArticleSummary {
	out := make([]ArticleSummary, len(articles))
	for i, a := range articles {
		out[i] = ArticleSummary{
			ID:            a.ID,
			Slug:          a.Slug,
			Title:         a.Title,
			Date:          a.Date,
			Category:      a.Category,
			Tags:          a.Tags,
			Description:   a.Description,
			CoverImageURL: a.CoverImageURL,
		}
	}
	return out
}
