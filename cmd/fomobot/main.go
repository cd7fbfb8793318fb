package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fomo-ops/fomobot/internal/application"
	"github.com/fomo-ops/fomobot/internal/application/dispatch"
	"github.com/fomo-ops/fomobot/internal/application/services"
	"github.com/fomo-ops/fomobot/internal/config"
	"github.com/fomo-ops/fomobot/internal/infrastructure/downstream"
	"github.com/fomo-ops/fomobot/internal/infrastructure/slack"
	"github.com/fomo-ops/fomobot/internal/interfaces/rest/handlers"
	"github.com/fomo-ops/fomobot/internal/interfaces/rest/middleware"
	"github.com/fomo-ops/fomobot/internal/modal"
	"github.com/fomo-ops/fomobot/internal/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting fomobot",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	client := slack.NewClient(cfg.Slack)
	api := slack.NewRetryClient(client, cfg.Retry)

	// Fail fast on bad credentials, and learn our own user id so the
	// dispatcher can tell our swap messages from everyone else's.
	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 15*time.Second)
	identity, err := api.AuthTest(startupCtx)
	cancelStartup()
	if err != nil {
		logger.Error("failed to identify bot user", "error", err)
		os.Exit(1)
	}
	logger.Info("authenticated with chat platform",
		"bot_user", identity.UserID,
		"team", identity.Team,
	)

	var notifier application.DownstreamNotifier
	var ready func(ctx context.Context) error

	if cfg.Downstream.NATSURL != "" {
		busNotifier, err := downstream.Connect(cfg.Downstream, logger)
		if err != nil {
			logger.Error("failed to connect to event bus", "error", err)
			os.Exit(1)
		}
		defer busNotifier.Close()

		notifier = busNotifier
		ready = busNotifier.Ready
	} else {
		logger.Info("no event bus configured, swap confirmations stay in chat")
		notifier = downstream.NewNoopNotifier(logger)
	}

	engine := services.NewSwapService(api, notifier, cfg.Slack.AcceptReaction, logger)
	dispatcher := dispatch.NewDispatcher(engine, identity.UserID, cfg.Slack.AcceptReaction, logger)

	modals, err := modal.NewBuilder()
	if err != nil {
		logger.Error("failed to load swap dialog template", "error", err)
		os.Exit(1)
	}

	pump := worker.NewPump(cfg.Worker, logger)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go pump.Start(workerCtx)

	verifier := slack.NewSignatureVerifier(cfg.Slack.SigningSecret)

	h := handlers.NewHandlers(dispatcher, modals, api, pump, ready, logger)

	router := h.Router(verifier)

	handler := middleware.Recovery(logger)(router)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
