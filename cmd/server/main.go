package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/Simplici0/vitrea/internal/config"
	"github.com/Simplici0/vitrea/internal/db"
	"github.com/Simplici0/vitrea/internal/document"
	"github.com/Simplici0/vitrea/internal/migrations"
	"github.com/Simplici0/vitrea/internal/pricing"
	"github.com/Simplici0/vitrea/internal/quote"
	"github.com/Simplici0/vitrea/internal/seed"
	"github.com/Simplici0/vitrea/internal/store"
)

const shutdownTimeout = 10 * time.Second

type pdfRenderer func(ctx context.Context, html []byte) ([]byte, error)

type server struct {
	auth   *authService
	quotes *store.Store
	svc    *quote.Service
	logger *slog.Logger
	pdf    pdfRenderer
}

func main() {
	cfg := config.Load()
	logger := cfg.NewLogger(os.Stderr)
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	model, err := pricing.Load(cfg.PricingFile)
	if err != nil {
		return err
	}

	database, err := db.Open(cfg.DBDriver, cfg.DataSource())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	if cfg.IsDev() {
		if err := migrations.Up(ctx, database, cfg.DBDriver); err != nil {
			return fmt.Errorf("run database migrations: %w", err)
		}
	}

	quotes := store.New(database, cfg.DBDriver)
	svc := quote.NewService(model)

	stats, err := seed.Run(ctx, database, quotes, svc, seed.Config{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
		DemoQuote:     cfg.IsDev(),
	})
	if err != nil {
		return fmt.Errorf("seed database: %w", err)
	}
	logger.Info("seed complete", "inserts", stats.Inserts)

	srv := &server{
		auth:   newAuthService(quotes, cfg.SessionSecret, !cfg.IsDev()),
		quotes: quotes,
		svc:    svc,
		logger: logger,
		pdf: func(ctx context.Context, html []byte) ([]byte, error) {
			return document.PDF(ctx, html, document.Options{ChromePath: cfg.ChromeBin})
		},
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", "addr", httpServer.Addr, "env", cfg.Env, "driver", cfg.DBDriver)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginSubmit)
	r.Post("/logout", s.handleLogout)

	r.Post("/api/estimate", s.handleEstimate)
	r.Post("/api/plan", s.handlePlan)

	r.Group(func(r chi.Router) {
		r.Use(s.auth.requireAuth)

		r.Get("/", s.handleHome)
		r.Post("/api/quotes", s.handleQuoteCreate)
		r.Get("/api/quotes", s.handleQuoteList)
		r.Get("/api/quotes/{id}", s.handleQuoteGet)
		r.Get("/quotes", s.handleQuotesPage)
		r.Get("/quotes/{id}", s.handleQuoteDetail)
		r.Get("/quotes/{id}/text", s.handleQuoteText)
		r.Get("/quotes/{id}/pdf", s.handleQuotePDF)
	})

	return r
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
