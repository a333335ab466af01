// File: internal/infra/metrics/bot.go
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	commandsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_commands_total",
			Help: "Count of handled bot commands and message kinds.",
		},
		[]string{"command"},
	)

	unbanOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unban_outcomes_total",
			Help: "Count of unban attempts by classified outcome.",
		},
		[]string{"outcome"},
	)

	webhookRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Count of webhook deliveries by HTTP status.",
		},
		[]string{"status"},
	)

	dispatchWaitSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dispatch_wait_seconds",
			Help:    "Time a webhook request spent waiting for the runner.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

func init() {
	register(commandsTotal, unbanOutcomes, webhookRequests, dispatchWaitSeconds)
}

func IncCommand(command string) {
	commandsTotal.WithLabelValues(command).Inc()
}

func IncUnbanOutcome(outcome string) {
	unbanOutcomes.WithLabelValues(outcome).Inc()
}

func IncWebhookRequest(status int) {
	webhookRequests.WithLabelValues(strconv.Itoa(status)).Inc()
}

func ObserveDispatchWait(seconds float64) {
	dispatchWaitSeconds.Observe(seconds)
}
