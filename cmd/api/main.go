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

	"github.com/joho/godotenv"
	"github.com/zhouzirui/farmstead/backend/internal/analysis/intent"
	"github.com/zhouzirui/farmstead/backend/internal/config"
	"github.com/zhouzirui/farmstead/backend/internal/handler"
	"github.com/zhouzirui/farmstead/backend/internal/model/knowledge"
	"github.com/zhouzirui/farmstead/backend/internal/service/chat"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(cfg.Log.NewLogger())

	if envErr != nil {
		slog.Warn("failed to load .env file, continuing with system environment variables only", "error", envErr)
	}

	categories, err := knowledge.Load(cfg.Assistant.KnowledgeFile)
	if err != nil {
		slog.Error("failed to load knowledge base", "path", cfg.Assistant.KnowledgeFile, "error", err)
		os.Exit(1)
	}
	store := knowledge.NewMemoryStore(categories)

	chatService := chat.NewService(intent.NewResolver(store), intent.NewDispatcher(store), chat.Config{
		Delay:         chat.RandomDelay{Min: cfg.Assistant.DelayMin, Max: cfg.Assistant.DelayMax},
		SessionTTL:    cfg.Assistant.SessionTTL,
		SweepInterval: cfg.Assistant.SweepInterval,
	})
	go chatService.Run(ctx)

	slog.Info("assistant initialized",
		"categories", len(categories),
		"session_ttl", cfg.Assistant.SessionTTL,
		"delay_min", cfg.Assistant.DelayMin,
		"delay_max", cfg.Assistant.DelayMax)

	router := handler.NewRouter(store, chatService, handler.Options{Metrics: cfg.Server.MetricsEnabled})

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	slog.Info("Farmstead assistant listening", "addr", addr)
	if err := runServer(ctx, srv); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
