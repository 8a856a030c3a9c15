package index

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/starford/folio/internal/models"
)

// Snippets are snippetLen characters of body starting snippetLead
// characters before the first match.
const (
	snippetLen  = 200
	snippetLead = 60
)

// SearchResult represents one content search hit.
type SearchResult struct {
	Slug     string   `json:"slug"`
	Title    string   `json:"title"`
	Date     string   `json:"date"`
	Category string   `json:"category"`
	Tags     []string `json:"tags,omitempty"`
	Snippet  string   `json:"snippet"`
}

// Replace swaps the indexed rows for articles within one transaction.
// Row order follows the slice order.
func (db *DB) Replace(ctx context.Context, articles []models.Article) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	if _, err := tx.ExecContext(ctx, `DELETE FROM articles`); err != nil {
		return fmt.Errorf("index: clear: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO articles (position, slug, title, date, category, tags, body)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("index: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range articles {
		tags := a.Tags
		if tags == nil {
			tags = []string{}
		}
		tagsJSON, _ := json.Marshal(tags)
		if _, err := stmt.ExecContext(ctx, i, a.Slug, a.Title, a.Date, a.Category, string(tagsJSON), a.Content); err != nil {
			return fmt.Errorf("index: insert %s: %w", a.Slug, err)
		}
	}

	return tx.Commit()
}

// SearchContent returns articles whose title or body contains query,
// in collection order. Matching is plain containment; results are never
// ranked. A blank query matches nothing. The snippet is the body text
// around the first match, or its opening when only the title matches.
func (db *DB) SearchContent(ctx context.Context, query string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return []SearchResult{}, nil
	}
	if limit <= 0 {
		limit = 20
	}
	like := "%" + escapeLike(query) + "%"
	rows, err := db.conn.QueryContext(ctx, `
		SELECT slug, title, date, category, tags,
			substr(body, max(1, instr(lower(body), lower(?)) - ?), ?)
		FROM articles
		WHERE title LIKE ? ESCAPE '\' OR body LIKE ? ESCAPE '\'
		ORDER BY position
		LIMIT ?
	`, query, snippetLead, snippetLen, like, like, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	out := []SearchResult{}
	for rows.Next() {
		var r SearchResult
		var tagsJSON string
		if err := rows.Scan(&r.Slug, &r.Title, &r.Date, &r.Category, &tagsJSON, &r.Snippet); err != nil {
			return nil, fmt.Errorf("index: scan: %w", err)
		}
		_ = json.Unmarshal([]byte(tagsJSON), &r.Tags)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Count returns the number of indexed articles.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, `SELECT count(*) FROM articles`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
