package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"bookstore/internal/author"
	"bookstore/internal/book"
	"bookstore/internal/genre"
	"bookstore/internal/httpx"
	"bookstore/internal/platform/config"
	"bookstore/internal/platform/googlebooks"
	"bookstore/internal/platform/postgres"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	ctx := context.Background()
	dbPool, err := postgres.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Error("open database", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("database connection OK", slog.String("dsn", postgres.RedactDSN(cfg.DatabaseDSN)))

	authorRepo := author.NewPostgresRepo(dbPool)
	genreRepo := genre.NewPostgresRepo(dbPool)
	bookRepo := book.NewPostgresRepo(dbPool)

	reconciler := book.NewReconciler(authorRepo, genreRepo)
	reclaimer := book.NewOrphanReclaimer(authorRepo, genreRepo, logger)

	authorHandler := author.NewHandler(author.NewService(authorRepo), logger)
	genreHandler := genre.NewHandler(genre.NewService(genreRepo), logger)

	searchClient := googlebooks.NewClient(cfg.GoogleBooksBaseURL, cfg.GoogleBooksAPIKey, 5, 3)
	bookHandler := book.NewHandler(book.NewService(bookRepo, reconciler, reclaimer), searchClient, logger)

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)

	router := chi.NewRouter()
	router.Use(httpx.RequestIDMiddleware)
	router.Use(httpx.RecoveryMiddleware(logger))
	router.Use(httpx.AccessLogMiddleware(logger))
	router.Use(rateLimit.Middleware)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()
		if err := dbPool.Ping(pingCtx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Route("/api/v1", func(api chi.Router) {
		api.Route("/books", func(r chi.Router) {
			r.Get("/", bookHandler.List)
			r.Post("/", bookHandler.Create)
			r.Get("/search", bookHandler.Search)
			r.Get("/{id}", bookHandler.Get)
			r.Put("/{id}", bookHandler.Update)
			r.Delete("/{id}", bookHandler.Delete)
		})
		api.Route("/authors", func(r chi.Router) {
			r.Get("/", authorHandler.List)
			r.Post("/", authorHandler.Create)
			r.Get("/{id}", authorHandler.Get)
			r.Put("/{id}", authorHandler.Update)
			r.Delete("/{id}", authorHandler.Delete)
		})
		api.Route("/genres", func(r chi.Router) {
			r.Get("/", genreHandler.List)
			r.Post("/", genreHandler.Create)
			r.Get("/{id}", genreHandler.Get)
			r.Put("/{id}", genreHandler.Update)
			r.Delete("/{id}", genreHandler.Delete)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httpx.JSONError(w, http.StatusNotFound, httpx.CodeNotFound, "Route not found.")
	})

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	shutdownErr := make(chan error)
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit
		logger.Info("shutting down server", slog.String("signal", s.String()))

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		shutdownErr <- httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("starting server", slog.String("addr", cfg.Addr))
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server error", slog.Any("error", err))
		os.Exit(1)
	}
	if err := <-shutdownErr; err != nil {
		logger.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
