// File: cmd/app/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"telegram-unban-bot/internal/application"
	"telegram-unban-bot/internal/config"
	"telegram-unban-bot/internal/infra/logging"
	"telegram-unban-bot/internal/infra/metrics"
	tele "telegram-unban-bot/internal/infra/telegram"
	"telegram-unban-bot/internal/infra/web"
	"telegram-unban-bot/internal/infra/worker"
	"telegram-unban-bot/internal/usecase"
)

const shutdownGrace = 5 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- Configuration ----
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logging.New(cfg)
	log.Info().
		Str("mode", cfg.Mode()).
		Str("token", logging.Redact(cfg.BotToken)).
		Int64("channel_id", cfg.ChannelID).
		Bool("webhook", cfg.WebhookEnabled()).
		Str("addr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)).
		Msg("starting")

	// ---- Metrics ----
	metrics.MustRegister()

	// ---- Telegram ----
	bot, err := tele.NewBot(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("telegram handshake failed")
	}

	// ---- Templates, use case, dispatcher ----
	tpl, err := application.NewTemplates(cfg.TemplatesFile)
	if err != nil {
		log.Fatal().Err(err).Msg("load reply templates")
	}
	unbanUC := usecase.NewUnbanUseCase(bot, cfg.ChannelID, cfg.UnbanTimeout, log)
	dispatcher := application.NewDispatcher(bot, unbanUC, tpl, cfg.ChannelID, log)

	// ---- Runner ----
	runner := worker.NewRunner(cfg.QueueSize, log)
	runner.MarkInitialized()
	go runner.Run(ctx)

	// ---- Update source: webhook or long polling ----
	if cfg.WebhookEnabled() {
		url := cfg.WebhookURL + cfg.WebhookPath()
		if err := bot.SetWebhook(ctx, url, cfg.MaxConnections); err != nil {
			log.Fatal().Err(err).Msg("register webhook")
		}
		log.Info().Str("url", cfg.WebhookURL+"/"+logging.Redact(cfg.BotToken)).Msg("webhook registered")
	} else {
		if err := bot.DeleteWebhook(ctx); err != nil {
			log.Warn().Err(err).Msg("clear stale webhook")
		}
		go bot.StartPolling(ctx, runner, dispatcher)
		log.Info().Msg("long polling started")
	}

	// ---- HTTP server ----
	srv := web.NewServer(cfg, bot, runner, dispatcher, log)
	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler: srv.Router(),
	}
	go func() {
		log.Info().Str("addr", server.Addr).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	log.Info().Msg("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	cancel()
	if !runner.Stop(shutdownGrace) {
		log.Warn().Msg("runner did not stop in time")
	}
	log.Info().Msg("stopped")
}
