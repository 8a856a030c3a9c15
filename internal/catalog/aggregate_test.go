package catalog

import (
	"reflect"
	"testing"

	"github.com/starford/folio/internal/models"
)

func fixture() []models.Article {
	return Load([]models.Document{
		dated("content/writeups/a.md", "2024-01-15", "tags: [ctf, web]"),
		dated("content/writeups/b.md", "2024-01-20", "tags: ctf, ctf"),
		dated("content/research/c.md", "2024-03-02", "tags: [kernel]"),
		dated("content/archives/d.md", "2023-12-31"),
	}).All()
}

func TestCategoryCounts(t *testing.T) {
	got := CategoryCounts(fixture())
	want := []CategoryCount{
		{Category: "archives", Count: 1},
		{Category: "research", Count: 1},
		{Category: "writeups", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("counts = %+v, want %+v", got, want)
	}
}

func TestCategoryCounts_SumMatchesTotal(t *testing.T) {
	articles := fixture()
	sum := 0
	for _, c := range CategoryCounts(articles) {
		sum += c.Count
	}
	if sum != len(articles) {
		t.Errorf("sum = %d, want %d", sum, len(articles))
	}
}

func TestTags(t *testing.T) {
	if got := Tags(fixture()); !reflect.DeepEqual(got, []string{"ctf", "kernel", "web"}) {
		t.Errorf("tags = %v", got)
	}
	if got := Tags(nil); len(got) != 0 {
		t.Errorf("tags of nothing = %v", got)
	}
}

func TestTagCounts_DistinctArticles(t *testing.T) {
	got := TagCounts(fixture())
	want := []TagCount{{"ctf", 2}, {"kernel", 1}, {"web", 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("tag counts = %+v, want %+v", got, want)
	}
}

func TestArchiveBuckets(t *testing.T) {
	got := ArchiveBuckets(fixture())
	want := []ArchiveBucket{
		{YearMonth: "2024-03", Count: 1},
		{YearMonth: "2024-01", Count: 2},
		{YearMonth: "2023-12", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("buckets = %+v, want %+v", got, want)
	}
}

func TestArchiveBuckets_SameMonthCollapses(t *testing.T) {
	articles := Load([]models.Document{
		dated("a.md", "2024-01-15"),
		dated("b.md", "2024-01-20"),
	}).All()
	got := ArchiveBuckets(articles)
	if !reflect.DeepEqual(got, []ArchiveBucket{{YearMonth: "2024-01", Count: 2}}) {
		t.Errorf("buckets = %+v", got)
	}
}

func TestYearMonth(t *testing.T) {
	cases := map[string]string{
		"2024-01-15":           "2024-01",
		"2024-01":              "2024-01",
		"2024":                 "2024-",
		"1970-01-01T10:00:00Z": "1970-01",
	}
	for in, want := range cases {
		if got := YearMonth(in); got != want {
			t.Errorf("YearMonth(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestLastUpdate(t *testing.T) {
	d, ok := LastUpdate(fixture())
	if !ok || d != "2024-03-02" {
		t.Errorf("last update = %q, %v", d, ok)
	}
	if _, ok := LastUpdate(nil); ok {
		t.Error("empty collection should have no last update")
	}
}

func TestSidebar(t *testing.T) {
	s := Sidebar(fixture(), 3)
	if len(s.Recent) != 3 || s.Recent[0].Slug != "c" {
		t.Errorf("recent = %v", slugs(s.Recent))
	}
	if s.TagCount != 3 || s.CategoryCount != 3 {
		t.Errorf("tagCount = %d, categoryCount = %d", s.TagCount, s.CategoryCount)
	}
	if s.LastUpdate != "2024-03-02" {
		t.Errorf("last update = %q", s.LastUpdate)
	}
}

func TestSidebar_Empty(t *testing.T) {
	s := Sidebar(nil, 3)
	if s.LastUpdate != NoLastUpdate {
		t.Errorf("last update = %q, want sentinel", s.LastUpdate)
	}
	if len(s.Recent) != 0 || s.TagCount != 0 || s.CategoryCount != 0 {
		t.Errorf("summary = %+v", s)
	}
}

func TestAggregations_DoNotMutateInput(t *testing.T) {
	articles := fixture()
	before := slugs(articles)
	_ = CategoryCounts(articles)
	_ = TagCounts(articles)
	_ = ArchiveBuckets(articles)
	_ = Sidebar(articles, 2)
	if got := slugs(articles); !reflect.DeepEqual(got, before) {
		t.Errorf("input reordered: %v", got)
	}
}
