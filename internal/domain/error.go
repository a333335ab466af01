package domain

import "errors"

var (
	// Runner handoff errors; the webhook bridge maps these to HTTP statuses.
	ErrNotRunning  = errors.New("runner is not running")
	ErrQueueFull   = errors.New("task queue is full")
	ErrWaitTimeout = errors.New("wait deadline exceeded")

	ErrNoWebhookURL = errors.New("no webhook base URL configured")
)
