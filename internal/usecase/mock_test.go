//go:build !integration

package usecase_test

import (
	"context"

	"github.com/rs/zerolog"
)

// newTestLogger creates a silent logger for tests.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// MockChannelAPI implements adapter.ChannelAPI with overridable funcs and
// call counters.
type MockChannelAPI struct {
	UnbanChatMemberFunc func(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error
	SendMessageFunc     func(ctx context.Context, chatID int64, html string) (int, error)
	EditMessageFunc     func(ctx context.Context, chatID int64, messageID int, html string) error
	SetWebhookFunc      func(ctx context.Context, url string, maxConnections int) error
	DeleteWebhookFunc   func(ctx context.Context) error

	UnbanCalls int
	Sent       []string
	Edited     []string
}

func NewMockChannelAPI() *MockChannelAPI {
	return &MockChannelAPI{}
}

func (m *MockChannelAPI) UnbanChatMember(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error {
	m.UnbanCalls++
	if m.UnbanChatMemberFunc != nil {
		return m.UnbanChatMemberFunc(ctx, chatID, userID, onlyIfBanned)
	}
	return nil
}

func (m *MockChannelAPI) SendMessage(ctx context.Context, chatID int64, html string) (int, error) {
	m.Sent = append(m.Sent, html)
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(ctx, chatID, html)
	}
	return len(m.Sent), nil
}

func (m *MockChannelAPI) EditMessage(ctx context.Context, chatID int64, messageID int, html string) error {
	m.Edited = append(m.Edited, html)
	if m.EditMessageFunc != nil {
		return m.EditMessageFunc(ctx, chatID, messageID, html)
	}
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
