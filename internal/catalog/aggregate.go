package catalog

import (
	"sort"
	"strings"

	"github.com/starford/folio/internal/models"
)

// NoLastUpdate is rendered in place of a date when the collection is empty.
const NoLastUpdate = "—"

// CategoryCount is the number of articles in one category.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// TagCount is the number of distinct articles carrying one tag.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// ArchiveBucket is the number of articles published in one year-month.
type ArchiveBucket struct {
	YearMonth string `json:"yearMonth"`
	Count     int    `json:"count"`
}

// SidebarSummary is everything the sidebar widget renders.
type SidebarSummary struct {
	Recent        []models.Article `json:"recent"`
	TagCount      int              `json:"tagCount"`
	CategoryCount int              `json:"categoryCount"`
	Categories    []CategoryCount  `json:"categories"`
	Tags          []string         `json:"tags"`
	Archives      []ArchiveBucket  `json:"archives"`
	LastUpdate    string           `json:"lastUpdate"`
}

// CategoryCounts groups articles by category, sorted by name ascending.
func CategoryCounts(articles []models.Article) []CategoryCount {
	counts := make(map[string]int)
	for _, a := range articles {
		counts[a.Category]++
	}
	out := make([]CategoryCount, 0, len(counts))
	for name, n := range counts {
		out = append(out, CategoryCount{Category: name, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Tags returns the sorted set of distinct tags across all articles.
func Tags(articles []models.Article) []string {
	counts := TagCounts(articles)
	out := make([]string, len(counts))
	for i, c := range counts {
		out[i] = c.Tag
	}
	return out
}

// TagCounts counts, per tag, how many articles carry it. An article listing
// the same tag twice is counted once.
func TagCounts(articles []models.Article) []TagCount {
	counts := make(map[string]int)
	for _, a := range articles {
		seen := make(map[string]struct{}, len(a.Tags))
		for _, t := range a.Tags {
			if _, dup := seen[t]; dup {
				continue
			}
			seen[t] = struct{}{}
			counts[t]++
		}
	}
	out := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		out = append(out, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// ArchiveBuckets groups articles by the YYYY-MM prefix of their date,
// most recent month first.
func ArchiveBuckets(articles []models.Article) []ArchiveBucket {
	counts := make(map[string]int)
	for _, a := range articles {
		counts[YearMonth(a.Date)]++
	}
	out := make([]ArchiveBucket, 0, len(counts))
	for key, n := range counts {
		out = append(out, ArchiveBucket{YearMonth: key, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].YearMonth > out[j].YearMonth })
	return out
}

// YearMonth joins the first two dash-separated components of date. A date
// without a dash yields "<date>-".
func YearMonth(date string) string {
	parts := strings.SplitN(date, "-", 3)
	month := ""
	if len(parts) > 1 {
		month = parts[1]
	}
	return parts[0] + "-" + month
}

// LastUpdate returns the date of the first (newest) article.
func LastUpdate(articles []models.Article) (string, bool) {
	if len(articles) == 0 {
		return "", false
	}
	return articles[0].Date, true
}

// Sidebar builds the sidebar summary from a date-sorted collection.
func Sidebar(articles []models.Article, recent int) SidebarSummary {
	if recent > len(articles) {
		recent = len(articles)
	}
	if recent < 0 {
		recent = 0
	}
	categories := CategoryCounts(articles)
	tags := Tags(articles)
	last, ok := LastUpdate(articles)
	if !ok {
		last = NoLastUpdate
	}
	return SidebarSummary{
		Recent:        append([]models.Article{}, articles[:recent]...),
		TagCount:      len(tags),
		CategoryCount: len(categories),
		Categories:    categories,
		Tags:          tags,
		Archives:      ArchiveBuckets(articles),
		LastUpdate:    last,
	}
}
