package storage

import (
	"fmt"
	"log/slog"

	"github.com/starford/folio/internal/checksum"
	"github.com/starford/folio/internal/models"
)

// LoadDocuments reads every markdown file the provider lists. Files that
// cannot be read are logged and skipped so that only readable documents
// reach the catalog. Only a failure to list the directory is returned.
func LoadDocuments(p Provider, logger *slog.Logger) ([]models.Document, error) {
	metas, err := p.List("")
	if err != nil {
		return nil, fmt.Errorf("storage: load documents: %w", err)
	}

	docs := make([]models.Document, 0, len(metas))
	for _, m := range metas {
		data, err := p.Read(m.Path)
		if err != nil {
			logger.Warn("load: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		docs = append(docs, models.Document{
			Path:     m.Path,
			Content:  data,
			Checksum: checksum.Sum(data),
		})
	}
	logger.Debug("load: documents read", slog.Int("count", len(docs)))
	return docs, nil
}

// Fingerprint digests the paths and contents of a document set.
func Fingerprint(docs []models.Document) string {
	sums := make(map[string]string, len(docs))
	for _, d := range docs {
		sums[d.Path] = d.Checksum
	}
	return checksum.Set(sums)
}
