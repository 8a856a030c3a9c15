// Package testutil provides shared test helpers for setting up content
// directories and services.
package testutil

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/folio/internal/articleservice"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/storage"
)

// Blog is a small content tree covering every category and both tag forms.
var Blog = map[string]string{
	"writeups/heap-pwn.md": "---\ntitle: Heap Pwn\ndate: 2024-05-10\ntags: [ctf, web]\ndescription: Exploiting a use-after-free\ncoverImage: /img/heap.png\n---\n\nThe allocator keeps a freelist.\n",
	"research/fuzzing.md":  "---\ntitle: Fuzzing Notes\ndate: 2024-05-02\ntags: fuzzing, tooling\n---\nCoverage guided fuzzing of parsers.\n",
	"archives/hello.md":    "hello",
	"misc/old.md":          "---\ntitle: Old Post\ndate: 2023-12-01\ncategory: Notes\n---\nLegacy content.\n",
}

// Logger returns a logger that discards output.
func Logger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ContentDir creates a temporary content directory holding files.
func ContentDir(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		abs := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

// Service builds an article service over files with an in-memory index
// and performs the initial load.
func Service(t *testing.T, files map[string]string) *articleservice.Service {
	t.Helper()
	store, err := storage.NewFS(ContentDir(t, files))
	if err != nil {
		t.Fatal(err)
	}
	db, err := index.Open(index.MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })

	svc := articleservice.NewService(store, db, Logger(), articleservice.DefaultFeedRecent, articleservice.DefaultSidebarRecent)
	if _, _, err := svc.Reload(context.Background()); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	return svc
}
