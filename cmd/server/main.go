package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/RafaelR4mos/auth-session-app-example/internal/admin"
	"github.com/RafaelR4mos/auth-session-app-example/internal/auth"
	"github.com/RafaelR4mos/auth-session-app-example/internal/config"
	"github.com/RafaelR4mos/auth-session-app-example/internal/middleware"
	"github.com/RafaelR4mos/auth-session-app-example/internal/store"
)

func main() {
	_ = godotenv.Load()

	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// ── PostgreSQL ────────────────────────────────────────────
	db, err := store.Open(cfg.PostgresDSN)
	if err != nil {
		log.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := store.Migrate(ctx, db); err != nil {
		log.Error("postgres migrate failed", "error", err)
		os.Exit(1)
	}
	pgStore := store.NewPostgresStore(db)

	// ── Session core ─────────────────────────────────────────
	tokens := auth.NewTokenGenerator(cfg.SessionSecret)
	sessions := auth.NewService(pgStore, tokens, cfg.SessionTTL, log)
	cookies := auth.NewCookieOptions(cfg.IsProduction())

	// ── Handlers ─────────────────────────────────────────────
	authHandler := auth.NewHandler(sessions, cookies, log)
	adminHandler := admin.NewHandler(pgStore, log)

	// ── Router ───────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Post("/login", authHandler.Login)
	r.Post("/register", authHandler.Register)
	r.Post("/logout", authHandler.Logout)
	r.With(middleware.RequireAuth(sessions)).Get("/me", authHandler.Me)

	r.Get("/sessions", adminHandler.List)
	r.Delete("/sessions/{id}", adminHandler.Revoke)

	// ── Server ───────────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		log.Info("server listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	srv.Shutdown(shutCtx)
}
