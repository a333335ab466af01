//go:build !integration

package application_test

import (
	"context"

	"github.com/rs/zerolog"
)

func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(nil)
	return &logger
}

// MockChannelAPI records sends/edits and lets tests override behavior.
type MockChannelAPI struct {
	UnbanChatMemberFunc func(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error
	SendMessageFunc     func(ctx context.Context, chatID int64, html string) (int, error)
	EditMessageFunc     func(ctx context.Context, chatID int64, messageID int, html string) error

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
	if m.SendMessageFunc != nil {
		id, err := m.SendMessageFunc(ctx, chatID, html)
		if err == nil {
			m.Sent = append(m.Sent, html)
		}
		return id, err
	}
	m.Sent = append(m.Sent, html)
	return len(m.Sent), nil
}

func (m *MockChannelAPI) EditMessage(ctx context.Context, chatID int64, messageID int, html string) error {
	if m.EditMessageFunc != nil {
		err := m.EditMessageFunc(ctx, chatID, messageID, html)
		if err == nil {
			m.Edited = append(m.Edited, html)
		}
		return err
	}
	m.Edited = append(m.Edited, html)
	return nil
}

func (m *MockChannelAPI) SetWebhook(ctx context.Context, url string, maxConnections int) error {
	return nil
}

func (m *MockChannelAPI) DeleteWebhook(ctx context.Context) error {
	return nil
}
