//go:build !integration

package web_test

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// MockChannelAPI is a thread-safe channel API double: sends happen on the
// runner goroutine while assertions run on the test goroutine.
type MockChannelAPI struct {
	mu sync.Mutex

	UnbanChatMemberFunc func(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error
	SetWebhookFunc      func(ctx context.Context, url string, maxConnections int) error
	DeleteWebhookFunc   func(ctx context.Context) error

	unbanCalls int
	sent       []string
	edited     []string
}

func (m *MockChannelAPI) UnbanChatMember(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error {
	m.mu.Lock()
	m.unbanCalls++
	m.mu.Unlock()
	if m.UnbanChatMemberFunc != nil {
		return m.UnbanChatMemberFunc(ctx, chatID, userID, onlyIfBanned)
	}
	return nil
}

func (m *MockChannelAPI) SendMessage(ctx context.Context, chatID int64, html string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, html)
	return len(m.sent), nil
}

func (m *MockChannelAPI) EditMessage(ctx context.Context, chatID int64, messageID int, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.edited = append(m.edited, html)
	return nil
}

func (m *MockChannelAPI) SetWebhook(ctx context.Context, url string, maxConnections int) error {
	if m.SetWebhookFunc != nil {
		return m.SetWebhookFunc(ctx, url, maxConnections)
	}
	return nil
}

func (m *MockChannelAPI) DeleteWebhook(ctx context.Context) error {
	if m.DeleteWebhookFunc != nil {
		return m.DeleteWebhookFunc(ctx)
	}
	return nil
}

func (m *MockChannelAPI) snapshot() (int, []string, []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unbanCalls, append([]string(nil), m.sent...), append([]string(nil), m.edited...)
}
