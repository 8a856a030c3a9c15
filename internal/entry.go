// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/starford/folio/internal/api"
	"github.com/starford/folio/internal/articleservice"
	"github.com/starford/folio/internal/catalog"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/mcpserver"
	"github.com/starford/folio/internal/sse"
	"github.com/starford/folio/internal/storage"
)

const (
	keepAliveInterval = 15 * time.Second
	shutdownTimeout   = 10 * time.Second
)

// runtime is the loaded catalog and everything needed to serve it.
type runtime struct {
	cfg    *Config
	logger *slog.Logger
	store  *storage.FS
	db     *index.DB
	svc    *articleservice.Service
}

func (rt *runtime) Close() error {
	return rt.db.Close()
}

// bootstrap applies options, sets up logging, opens the content index and
// performs the initial catalog load.
func bootstrap(ctx context.Context, opts []Option) (*runtime, error) {
	app := &application{logOutput: os.Stdout}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}

	cfg := app.config

	// Initialize structured JSON logger.
	logger := slog.New(slog.NewJSONHandler(app.logOutput, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("content_path", cfg.Content.Path),
		slog.Bool("content_watch", cfg.Content.Watch),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, err := storage.NewFS(cfg.Content.Path)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init index: %w", err)
	}

	svc := articleservice.NewService(store, db, logger, cfg.Feed.Recent, cfg.Feed.Sidebar)
	if _, _, err := svc.Reload(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("initial load: %w", err)
	}

	return &runtime{cfg: cfg, logger: logger, store: store, db: db, svc: svc}, nil
}

// Run starts the HTTP server with the given options.
func Run(ctx context.Context, opts ...Option) error {
	rt, err := bootstrap(ctx, opts)
	if err != nil {
		return err
	}
	defer rt.Close()

	cfg, logger, svc := rt.cfg, rt.logger, rt.svc

	// SSE broker.
	broker := sse.NewBroker(keepAliveInterval)
	defer broker.Close()

	apiRouter := api.NewRouter(svc, cfg.Auth.AuthEnabled(), cfg.Auth.Token, broker)

	// Build chi router.
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Health check endpoints (unauthenticated).
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/health/ready", readyHandler(svc, rt.db))

	// Mount API routes under /api.
	r.Mount("/api", apiRouter)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: r,
	}

	logger.Info("Server starting...", slog.String("http_address", cfg.App.HTTP.Address()))

	g, gCtx := errgroup.WithContext(ctx)

	// Live reload publishes each new snapshot to SSE clients.
	if cfg.Content.Watch {
		g.Go(func() error {
			return svc.Watch(gCtx, rt.store.Root(), cfg.Content.Debounce, func(store *catalog.Store) {
				broker.PublishReload(store.Version(), store.Len())
			})
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// readyHandler reports the installed snapshot and how many articles the
// content index holds. An unreachable index makes the service unready.
func readyHandler(svc *articleservice.Service, idx index.ContentIndex) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cur := svc.Current()
		w.Header().Set("Content-Type", "application/json")

		indexed, err := idx.Count(r.Context())
		if err != nil {
			slog.Error("readiness: index count failed", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"status": "unavailable"})
			return
		}

		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status":   "ok",
			"version":  cur.Version(),
			"articles": cur.Len(),
			"indexed":  indexed,
		})
	}
}

// RunMCP serves the catalog over the MCP stdio transport. When watching is
// enabled the catalog is kept fresh in the background.
func RunMCP(ctx context.Context, opts ...Option) error {
	rt, err := bootstrap(ctx, append([]Option{WithLogOutput(os.Stderr)}, opts...))
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if rt.cfg.Content.Watch {
		go func() {
			if err := rt.svc.Watch(ctx, rt.store.Root(), rt.cfg.Content.Debounce, nil); err != nil {
				rt.logger.Error("watcher failed", slog.String("error", err.Error()))
			}
		}()
	}

	rt.logger.Info("MCP server starting on stdio")
	if err := mcpserver.New(rt.svc).ServeStdio(); err != nil {
		return fmt.Errorf("mcp serve: %w", err)
	}
	return nil
}

// PrintStats loads the catalog once and writes its sidebar summary as JSON.
func PrintStats(ctx context.Context, w io.Writer, opts ...Option) error {
	rt, err := bootstrap(ctx, append([]Option{WithLogOutput(io.Discard)}, opts...))
	if err != nil {
		return err
	}
	defer rt.Close()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rt.svc.Sidebar(ctx)); err != nil {
		return fmt.Errorf("write stats: %w", err)
	}
	return nil
}
