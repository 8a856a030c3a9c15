package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/starford/folio/internal/articleservice"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/storage"
	"github.com/starford/folio/internal/testutil"
)

func TestPrintStats(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Content.Path = testutil.ContentDir(t, testutil.Blog)
	cfg.Feed.Sidebar = 2

	var buf bytes.Buffer
	if err := PrintStats(context.Background(), &buf, WithConfig(cfg)); err != nil {
		t.Fatalf("PrintStats: %v", err)
	}

	var sb catalog.SidebarSummary
	if err := json.Unmarshal(buf.Bytes(), &sb); err != nil {
		t.Fatalf("decode %q: %v", buf.String(), err)
	}
	if len(sb.Recent) != 2 || sb.Recent[0].Slug != "heap-pwn" {
		t.Errorf("recent = %+v", sb.Recent)
	}
	if sb.CategoryCount != 4 || sb.LastUpdate != "2024-05-10" {
		t.Errorf("summary = %+v", sb)
	}
}

func TestPrintStats_MissingContentDir(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Content.Path = t.TempDir() + "/missing"

	err := PrintStats(context.Background(), &bytes.Buffer{}, WithConfig(cfg))
	if err == nil || !strings.Contains(err.Error(), "init storage") {
		t.Errorf("err = %v, want storage error", err)
	}
}

func TestRun_RequiresConfig(t *testing.T) {
	if err := Run(context.Background()); err == nil {
		t.Error("Run without config should fail")
	}
}

func TestReadyHandler_ReportsIndexedArticles(t *testing.T) {
	store, err := storage.NewFS(testutil.ContentDir(t, testutil.Blog))
	if err != nil {
		t.Fatal(err)
	}
	db, err := index.Open(index.MemoryDSN)
	if err != nil {
		t.Fatal(err)
	}
	svc := articleservice.NewService(store, db, testutil.Logger(), 0, 0)
	if _, _, err := svc.Reload(context.Background()); err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	readyHandler(svc, db)(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Articles int `json:"articles"`
		Indexed  int `json:"indexed"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Articles != 4 || body.Indexed != 4 {
		t.Errorf("body = %+v", body)
	}

	db.Close()
	w = httptest.NewRecorder()
	readyHandler(svc, db)(w, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("closed index status = %d, want 503", w.Code)
	}
}
