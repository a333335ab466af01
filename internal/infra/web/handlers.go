package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"telegram-unban-bot/internal/domain"
	"telegram-unban-bot/internal/infra/logging"
	"telegram-unban-bot/internal/infra/metrics"
	"telegram-unban-bot/internal/infra/telegram"
	"telegram-unban-bot/internal/infra/worker"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "online",
		"service":   "Telegram Unban Bot",
		"version":   serviceVersion,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"endpoints": map[string]string{
			"health":  "/health",
			"info":    "/info",
			"webhook": s.cfg.WebhookPath(),
		},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"bot":       botStatus(s.runner.State()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    s.startedAt.Format(time.RFC3339),
	})
}

// botStatus maps runner lifecycle states to the health vocabulary.
func botStatus(st worker.State) string {
	switch st {
	case worker.StateRunning:
		return "ready"
	case worker.StateStopped:
		return "not_ready"
	default:
		return "starting"
	}
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"channel_id":      s.cfg.ChannelID,
		"webhook_enabled": s.cfg.WebhookEnabled(),
		"webhook_url":     s.cfg.WebhookURL,
		"max_connections": s.cfg.MaxConnections,
		"mode":            s.cfg.Mode(),
	})
}

// handleWebhook is the bridge between the request-handling pool and the
// runner goroutine: decode the update, schedule the dispatcher invocation,
// wait with a bound. On wait expiry the dispatch keeps running detached and
// the caller gets 202; its Telegram-side outcome is delivered over the bot
// channel, never over this HTTP response.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "no data"})
		return
	}
	if update.UpdateID == 0 && update.Message == nil {
		s.respond(w, http.StatusBadRequest, map[string]string{"error": "no data"})
		return
	}
	if s.runner.State() != worker.StateRunning {
		s.respond(w, http.StatusServiceUnavailable, map[string]string{"error": "bot not initialized"})
		return
	}

	ev := telegram.FromUpdate(update)
	traceID := uuid.NewString()
	log := s.log.With().Str("trace_id", traceID).Int("update_id", update.UpdateID).Logger()

	waitCtx, cancel := context.WithTimeout(r.Context(), s.cfg.DispatchTimeout)
	defer cancel()

	start := time.Now()
	err := s.runner.SubmitWait(waitCtx, func(runCtx context.Context) error {
		s.dispatcher.Dispatch(logging.WithTraceID(runCtx, traceID), ev)
		return nil
	})
	metrics.ObserveDispatchWait(time.Since(start).Seconds())

	switch {
	case err == nil:
		s.respond(w, http.StatusOK, map[string]string{"status": "ok"})
	case errors.Is(err, domain.ErrWaitTimeout):
		log.Warn().Msg("webhook processing timeout")
		s.respond(w, http.StatusAccepted, map[string]string{"status": "processing"})
	case errors.Is(err, domain.ErrNotRunning):
		s.respond(w, http.StatusServiceUnavailable, map[string]string{"error": "bot not initialized"})
	default:
		log.Error().Err(err).Msg("webhook dispatch failed")
		s.respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func (s *Server) handleSetWebhook(w http.ResponseWriter, r *http.Request) {
	if s.cfg.WebhookURL == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": domain.ErrNoWebhookURL.Error()})
		return
	}
	webhookURL := s.cfg.WebhookURL + s.cfg.WebhookPath()

	waitCtx, cancel := context.WithTimeout(r.Context(), adminWaitTimeout)
	defer cancel()
	err := s.runner.SubmitWait(waitCtx, func(runCtx context.Context) error {
		return s.api.SetWebhook(runCtx, webhookURL, s.cfg.MaxConnections)
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "webhook_url": webhookURL})
}

func (s *Server) handleDeleteWebhook(w http.ResponseWriter, r *http.Request) {
	waitCtx, cancel := context.WithTimeout(r.Context(), adminWaitTimeout)
	defer cancel()
	err := s.runner.SubmitWait(waitCtx, func(runCtx context.Context) error {
		return s.api.DeleteWebhook(runCtx)
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true})
}

// respond writes the JSON body and records the status in metrics.
func (s *Server) respond(w http.ResponseWriter, code int, v interface{}) {
	metrics.IncWebhookRequest(code)
	writeJSON(w, code, v)
}
