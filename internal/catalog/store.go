// Package catalog holds the immutable, date-sorted article collection and
// the aggregation and filter functions computed over it.
package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/parser"
)

// Store is a frozen snapshot of every article from one load. It is safe for
// concurrent readers because nothing mutates it after Load returns.
type Store struct {
	articles []models.Article
	version  string
	loadedAt time.Time
}

// Load normalizes every document and sorts the result by date, newest
// first. Articles sharing a date keep their input order.
func Load(docs []models.Document) *Store {
	articles := make([]models.Article, 0, len(docs))
	for _, d := range docs {
		articles = append(articles, parser.Normalize(d))
	}
	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Date > articles[j].Date
	})
	return &Store{
		articles: articles,
		version:  uuid.NewString(),
		loadedAt: time.Now().UTC(),
	}
}

// All returns the full collection in canonical order. The returned slice is
// a copy; modifying it does not affect the store.
func (s *Store) All() []models.Article {
	out := make([]models.Article, len(s.articles))
	copy(out, s.articles)
	return out
}

// ByCategory returns the articles whose category equals the normalized name.
func (s *Store) ByCategory(name string) []models.Article {
	target := parser.NormalizeCategory(name)
	var out []models.Article
	for _, a := range s.articles {
		if a.Category == target {
			out = append(out, a)
		}
	}
	return out
}

// BySlug returns the first article with the given slug.
func (s *Store) BySlug(slug string) (models.Article, bool) {
	for _, a := range s.articles {
		if a.Slug == slug {
			return a, true
		}
	}
	return models.Article{}, false
}

// Recent returns up to n of the newest articles.
func (s *Store) Recent(n int) []models.Article {
	if n > len(s.articles) {
		n = len(s.articles)
	}
	if n <= 0 {
		return nil
	}
	out := make([]models.Article, n)
	copy(out, s.articles[:n])
	return out
}

// Len returns the number of articles.
func (s *Store) Len() int { return len(s.articles) }

// Version identifies this snapshot. Every Load produces a new one.
func (s *Store) Version() string { return s.version }

// LoadedAt reports when the snapshot was built.
func (s *Store) LoadedAt() time.Time { return s.loadedAt }
