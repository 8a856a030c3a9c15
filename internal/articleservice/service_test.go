package articleservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/storage"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testService(t *testing.T) (*Service, string) {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	db, err := index.Open(index.MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, db, logger, 2, 1), root
}

func seed(t *testing.T, root string) {
	t.Helper()
	writeFile(t, root, "writeups/pwn.md", "---\ntitle: Heap Pwn\ndate: 2024-05-10\ntags: [ctf, web]\n---\nuse after free walkthrough")
	writeFile(t, root, "research/fuzz.md", "---\ntitle: Fuzzing\ndate: 2024-05-02\ntags: fuzzing\n---\ncoverage guided")
	writeFile(t, root, "misc.md", "---\ntitle: Misc\ndate: 2024-04-20\n---\nrandom thoughts")
}

func TestNewService_EmptySnapshot(t *testing.T) {
	svc, _ := testService(t)
	if svc.Current().Len() != 0 {
		t.Errorf("len = %d", svc.Current().Len())
	}
	if got := svc.Stats(context.Background()).LastUpdate; got != catalog.NoLastUpdate {
		t.Errorf("last update = %q", got)
	}
}

func TestReload(t *testing.T) {
	svc, root := testService(t)
	seed(t, root)
	ctx := context.Background()

	store, swapped, err := svc.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if !swapped || store.Len() != 3 || svc.Current() != store {
		t.Fatalf("swapped = %v, len = %d", swapped, store.Len())
	}

	again, swapped, err := svc.Reload(ctx)
	if err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if swapped || again != store {
		t.Error("unchanged documents should not produce a new snapshot")
	}

	writeFile(t, root, "new.md", "---\ndate: 2025-01-01\n---\nfresh")
	next, swapped, _ := svc.Reload(ctx)
	if !swapped || next.Len() != 4 || next.Version() == store.Version() {
		t.Errorf("expected a new snapshot with 4 articles")
	}
	if store.Len() != 3 {
		t.Error("old snapshot must stay unchanged")
	}
}

func TestListArticles(t *testing.T) {
	svc, root := testService(t)
	seed(t, root)
	ctx := context.Background()
	_, _, _ = svc.Reload(ctx)

	items, total, err := svc.ListArticles(ctx, catalog.Query{Month: "2024-05"}, 1, 0)
	if err != nil {
		t.Fatalf("ListArticles: %v", err)
	}
	if total != 2 || len(items) != 1 || items[0].Slug != "pwn" {
		t.Errorf("items = %+v, total = %d", items, total)
	}

	_, _, err = svc.ListArticles(ctx, catalog.Query{Month: "May"}, 0, 0)
	if !errors.Is(err, apperr.ErrInvalidQuery) {
		t.Errorf("err = %v, want ErrInvalidQuery", err)
	}
}

func TestGetArticle(t *testing.T) {
	svc, root := testService(t)
	seed(t, root)
	ctx := context.Background()
	_, _, _ = svc.Reload(ctx)

	a, err := svc.GetArticle(ctx, "fuzz")
	if err != nil {
		t.Fatalf("GetArticle: %v", err)
	}
	if a.Category != "research" || a.Content != "coverage guided" {
		t.Errorf("article = %+v", a)
	}
	if _, err := svc.GetArticle(ctx, "nope"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestStatsAndSidebar(t *testing.T) {
	svc, root := testService(t)
	seed(t, root)
	ctx := context.Background()
	_, _, _ = svc.Reload(ctx)

	st := svc.Stats(ctx)
	if st.Total != 3 || st.LastUpdate != "2024-05-10" || len(st.Categories) != 3 || len(st.Archives) != 2 {
		t.Errorf("stats = %+v", st)
	}
	sb := svc.Sidebar(ctx)
	if len(sb.Recent) != 1 || sb.Recent[0].Slug != "pwn" || sb.TagCount != 3 {
		t.Errorf("sidebar = %+v", sb)
	}
	if feed := svc.Recent(ctx); len(feed) != 2 || feed[0].Slug != "pwn" || feed[1].Slug != "fuzz" {
		t.Errorf("feed = %+v", feed)
	}
}

func TestSearch(t *testing.T) {
	svc, root := testService(t)
	seed(t, root)
	ctx := context.Background()
	_, _, _ = svc.Reload(ctx)

	if got := svc.Search(ctx, "CTF", 0); len(got) != 1 || got[0].Slug != "pwn" {
		t.Errorf("search = %+v", got)
	}
	if got := svc.Search(ctx, " ", 0); len(got) != 0 {
		t.Errorf("blank search = %+v", got)
	}

	hits, err := svc.SearchContent(ctx, "coverage", 10)
	if err != nil {
		t.Fatalf("SearchContent: %v", err)
	}
	if len(hits) != 1 || hits[0].Slug != "fuzz" {
		t.Errorf("content hits = %+v", hits)
	}
}

func TestCategoryArticles(t *testing.T) {
	svc, root := testService(t)
	seed(t, root)
	ctx := context.Background()
	_, _, _ = svc.Reload(ctx)

	if got := svc.CategoryArticles(ctx, "Writeups"); len(got) != 1 || got[0].Slug != "pwn" {
		t.Errorf("writeups = %+v", got)
	}
}
