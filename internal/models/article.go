// Package models defines the domain types for Folio.
package models

import "time"

// Document is a raw markdown file handed to the catalog. It is not retained
// after normalization.
type Document struct {
	Path     string `json:"path"`
	Content  []byte `json:"-"`
	Checksum string `json:"checksum"`
}

// DocumentMetadata is a lightweight representation returned by list
// operations. Listing never reads file contents.
type DocumentMetadata struct {
	Path    string    `json:"path"`
	ModTime time.Time `json:"modTime"`
}

// Frontmatter maps header keys to their literal string values.
type Frontmatter map[string]string

// Article is the canonical, normalized record derived from one document.
//
// Tags is nil when the document has no tags field and a non-nil slice
// (possibly empty) when it does.
type Article struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Title         string   `json:"title"`
	Date          string   `json:"date"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags,omitempty"`
	Description   string   `json:"description,omitempty"`
	CoverImageURL string   `json:"coverImageUrl,omitempty"`
	Content       string   `json:"content"`
	Path          string   `json:"-"`
}

// HasTag reports whether the article carries tag exactly as authored.
func (a Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
