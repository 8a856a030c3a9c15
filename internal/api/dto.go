package api

import (
	"github.com/starford/folio/internal/articleservice"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/index"
)

// ArticleSummary is a list item (aliased from the service layer).
type ArticleSummary = articleservice.ArticleSummary

// ArticleListResponse wraps paginated article listings.
type ArticleListResponse struct {
	Articles []ArticleSummary `json:"articles"`
	Total    int              `json:"total"`
}

// CategoriesResponse wraps category counts.
type CategoriesResponse struct {
	Categories []catalog.CategoryCount `json:"categories"`
}

// TagsResponse wraps the distinct tag set and per-tag counts.
type TagsResponse struct {
	Tags   []string           `json:"tags"`
	Counts []catalog.TagCount `json:"counts"`
}

// ArchivesResponse wraps archive buckets and the last update date.
type ArchivesResponse struct {
	Archives   []catalog.ArchiveBucket `json:"archives"`
	LastUpdate string                  `json:"lastUpdate"`
}

// SearchResponse wraps metadata search results.
type SearchResponse struct {
	Results []ArticleSummary `json:"results"`
}

// ContentSearchResponse wraps body search results.
type ContentSearchResponse struct {
	Results []index.SearchResult `json:"results"`
}
