package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrdocs/internal/domain/doclink"
	"hrdocs/internal/domain/doctype"
	"hrdocs/internal/domain/document"
	"hrdocs/internal/domain/employee"
	"hrdocs/internal/domain/report"
	"hrdocs/internal/platform/config"
	"hrdocs/internal/platform/db"
	"hrdocs/internal/platform/metrics"
	"hrdocs/internal/transport/http/api"
	doclinkhandler "hrdocs/internal/transport/http/handlers/doclink"
	doctypehandler "hrdocs/internal/transport/http/handlers/doctype"
	documenthandler "hrdocs/internal/transport/http/handlers/document"
	employeehandler "hrdocs/internal/transport/http/handlers/employee"
	"hrdocs/internal/transport/http/middleware"
)

type App struct {
	Config config.Config
	Pool   *pgxpool.Pool
	Router http.Handler
}

// New connects to storage, runs migrations and seed data when enabled, and
// assembles the full HTTP surface.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}

	app := &App{Config: cfg, Pool: pool}
	app.Router = buildRouter(cfg, pool)
	return app, nil
}

func (a *App) Close() {
	if a.Pool != nil {
		a.Pool.Close()
	}
}

func buildRouter(cfg config.Config, pool *pgxpool.Pool) http.Handler {
	employeeStore := employee.NewStore(pool)
	typeStore := doctype.NewStore(pool)
	linkStore := doclink.NewStore(pool)
	documentStore := document.NewStore(pool)

	employeeService := employee.NewService(employeeStore, cfg.EmployeeDefaultStatus, cfg.EmployeePageSize)
	typeService := doctype.NewService(typeStore, cfg.DocumentTypeDefaultStatus, cfg.DocumentTypePageSize)
	linkService := doclink.NewService(linkStore, employeeStore, typeStore)
	documentService := document.NewService(documentStore, employeeStore, typeStore, linkStore)
	reportService := report.NewService(employeeStore, documentService)

	collector := metrics.New()

	api.ExposeErrors(cfg.Environment != "production")

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		if cfg.MetricsEnabled {
			r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				if err := json.NewEncoder(w).Encode(collector.Snapshot()); err != nil {
					log.Printf("metrics write failed: %v", err)
				}
			})
		}

		employeehandler.NewHandler(employeeService, documentService).RegisterRoutes(r)
		doctypehandler.NewHandler(typeService).RegisterRoutes(r)
		doclinkhandler.NewHandler(linkService).RegisterRoutes(r)
		documenthandler.NewHandler(documentService, reportService).RegisterRoutes(r)
	})

	return router
}

// Run is the blocking entry point used by cmd/server.
func Run() {
	cfg := config.Load()

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	log.Printf("hrdocs server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
