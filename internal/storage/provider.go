// Package storage defines the content directory abstraction that feeds
// documents to the catalog.
package storage

import "github.com/starford/folio/internal/models"

// Provider is the interface for read access to the content directory.
type Provider interface {
	// List returns metadata for every markdown file under dir (relative to root).
	List(dir string) ([]models.DocumentMetadata, error)
	// Read returns the raw bytes of the file at path (relative to root).
	Read(path string) ([]byte, error)
}
