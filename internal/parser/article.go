package parser

import (
	"strings"

	"github.com/starford/folio/internal/models"
)

// Fallback values applied when a document omits a field.
const (
	DefaultDate     = "1970-01-01"
	DefaultCategory = "archives"
	defaultStem     = "article"
)

// Accepted cover image keys, in priority order.
var coverImageKeys = []string{"coverImage", "coverImageUrl", "cover_image_url"}

// Categories derived from a directory segment when frontmatter has none,
// checked in order.
var pathCategories = []string{"writeups", "research"}

// Normalize turns a raw document into an Article. It never fails: missing
// or malformed fields fall back to values derived from the path.
func Normalize(doc models.Document) models.Article {
	fm, body := SplitFrontmatter(string(doc.Content))
	stem := fileStem(doc.Path)

	slug := orDefault(fm["slug"], stem)

	category := NormalizeCategory(fm["category"])
	if category == "" {
		category = categoryFromPath(doc.Path)
	}

	var tags []string
	if raw := fm["tags"]; raw != "" {
		tags = ParseTags(raw)
	}

	return models.Article{
		ID:            slug,
		Slug:          slug,
		Title:         orDefault(fm["title"], stem),
		Date:          orDefault(fm["date"], DefaultDate),
		Category:      category,
		Tags:          tags,
		Description:   fm["description"],
		CoverImageURL: firstNonEmpty(fm, coverImageKeys),
		Content:       strings.TrimSpace(body),
		Path:          doc.Path,
	}
}

// NormalizeCategory trims and lower-cases a category name.
func NormalizeCategory(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ParseTags accepts "[a, b]" or "a, b" and returns the trimmed, non-empty
// elements. The result is never nil.
func ParseTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "[") && strings.HasSuffix(raw, "]") && len(raw) >= 2 {
		raw = raw[1 : len(raw)-1]
	}
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// fileStem returns the last path segment without its markdown extension.
func fileStem(path string) string {
	name := path
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		name = path[i+1:]
	}
	lower := strings.ToLower(name)
	for _, ext := range []string{".markdown", ".md"} {
		if strings.HasSuffix(lower, ext) {
			name = name[:len(name)-len(ext)]
			break
		}
	}
	if name == "" {
		return defaultStem
	}
	return name
}

// categoryFromPath looks for a known category among the directory segments.
func categoryFromPath(path string) string {
	segments := strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' })
	if len(segments) > 0 {
		segments = segments[:len(segments)-1] // drop the file name
	}
	for _, want := range pathCategories {
		for _, seg := range segments {
			if seg == want {
				return want
			}
		}
	}
	return DefaultCategory
}

func firstNonEmpty(fm models.Frontmatter, keys []string) string {
	for _, k := range keys {
		if v := fm[k]; v != "" {
			return v
		}
	}
	return ""
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
