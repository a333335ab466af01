package web

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"telegram-unban-bot/internal/application"
	"telegram-unban-bot/internal/config"
	"telegram-unban-bot/internal/domain/ports/adapter"
	"telegram-unban-bot/internal/infra/worker"
)

const serviceVersion = "2.0.0"

// adminWaitTimeout bounds webhook set/delete calls scheduled from the admin
// endpoints onto the runner.
const adminWaitTimeout = 5 * time.Second

// Server exposes the status endpoints and the webhook receiver. It holds
// handles to the runner and the dispatcher; it never talks to Telegram
// directly, all protocol work is scheduled onto the runner.
type Server struct {
	cfg        *config.Config
	api        adapter.ChannelAPI
	runner     *worker.Runner
	dispatcher *application.Dispatcher
	startedAt  time.Time
	log        *zerolog.Logger
}

func NewServer(cfg *config.Config, api adapter.ChannelAPI, runner *worker.Runner, dispatcher *application.Dispatcher, logger *zerolog.Logger) *Server {
	return &Server{
		cfg:        cfg,
		api:        api,
		runner:     runner,
		dispatcher: dispatcher,
		startedAt:  time.Now().UTC(),
		log:        logger,
	}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleHome)
	r.Get("/health", s.handleHealth)
	r.Get("/info", s.handleInfo)
	r.Post(s.cfg.WebhookPath(), s.handleWebhook)
	r.Post("/webhook/set", s.handleSetWebhook)
	r.Post("/webhook/delete", s.handleDeleteWebhook)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
