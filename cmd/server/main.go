package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/prepwise/backend/internal/api"
	"github.com/prepwise/backend/internal/domain/catalog"
	"github.com/prepwise/backend/internal/domain/selection"
	"github.com/prepwise/backend/internal/infrastructure/config"
	"github.com/prepwise/backend/internal/scorer"
	"github.com/prepwise/backend/internal/service"
	"github.com/prepwise/backend/internal/simulation"
	"github.com/prepwise/backend/internal/store"

	_ "github.com/prepwise/backend/docs" // generated swagger docs
)

// @title           Prepwise API
// @version         1.0
// @description     Interview-prep progression engine — practice questions, AI scoring, XP, streaks, and quests.

// @host      localhost:8080
// @BasePath  /

func main() {
	simulate := flag.Bool("simulate", false, "run a multi-user practice simulation instead of the server")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if *simulate {
		if err := simulation.Run(logger, 5, 4); err != nil {
			logger.Error("simulation failed", "error", err)
			os.Exit(1)
		}
		return
	}

	cfg := config.Load()

	// ── Dependencies ────────────────────────────────────────────────
	cat, err := catalog.Load()
	if err != nil {
		logger.Error("failed to load question catalog", "error", err)
		os.Exit(1)
	}

	db, err := store.NewSQLite(cfg.DBPath, cat)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	llm := scorer.NewLLMScorer(cfg.LLMURL, cfg.LLMModel, cat)
	sessions := service.NewSessionService(db, llm, cat, selection.New(cat, nil), logger)
	handler := api.NewHandler(sessions, logger)

	// ── Routes ──────────────────────────────────────────────────────
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok"}`))
	})

	api.RegisterRoutes(mux, handler)

	// Swagger UI served at /swagger/
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// ── Middleware chain: Logging → CORS → mux ──────────────────────
	logged := api.Logging(logger)(api.CORS(mux))

	// ── Server ──────────────────────────────────────────────────────
	server := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           logged,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutting down server")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("server forced to shutdown", "error", err)
		}
	}()

	logger.Info("starting server", "address", cfg.ServerAddress)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed to start", "error", err)
		os.Exit(1)
	}
}
