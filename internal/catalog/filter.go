package catalog

import (
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/folio/internal/models"
)

var monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)

// Query holds the optional filter parameters. Empty Category, Tag and Month
// impose no constraint. A nil Text imposes none either, while a non-nil
// blank Text matches nothing. Non-blank Text is matched as given, spaces
// included.
type Query struct {
	Category string
	Tag      string
	Month    string
	Text     *string
}

// TextQuery returns a Query that only searches for text.
func TextQuery(text string) Query {
	return Query{Text: &text}
}

// Validate checks parameter formats. Filter does not require it.
func (q Query) Validate() error {
	return validation.ValidateStruct(&q,
		validation.Field(&q.Month, validation.Match(monthRe).Error("must be in YYYY-MM format")),
	)
}

// Filter returns the articles matching every supplied parameter, in input
// order.
func Filter(articles []models.Article, q Query) []models.Article {
	var needle string
	if q.Text != nil {
		if strings.TrimSpace(*q.Text) == "" {
			return []models.Article{}
		}
		needle = strings.ToLower(*q.Text)
	}

	out := []models.Article{}
	for _, a := range articles {
		if q.Category != "" && !strings.EqualFold(a.Category, q.Category) {
			continue
		}
		if q.Tag != "" && !a.HasTag(q.Tag) {
			continue
		}
		if q.Month != "" && !strings.HasPrefix(a.Date, q.Month) {
			continue
		}
		if q.Text != nil && !strings.Contains(searchText(a), needle) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// searchText is the lower-cased haystack used by free-text search.
func searchText(a models.Article) string {
	fields := make([]string, 0, 3+len(a.Tags))
	fields = append(fields, a.Title, a.Description, a.Category)
	fields = append(fields, a.Tags...)
	return strings.ToLower(strings.Join(fields, " "))
}

// Page slices articles for pagination. A non-positive limit means no limit.
func Page(articles []models.Article, limit, offset int) []models.Article {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(articles) {
		return []models.Article{}
	}
	end := len(articles)
	if limit > 0 && limit < end-offset {
		end = offset + limit
	}
	return articles[offset:end]
}
