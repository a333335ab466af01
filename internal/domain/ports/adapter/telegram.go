package adapter

import "context"

// ChannelAPI is the single external capability surface the bot depends on.
// The real implementation wraps the Telegram Bot API client; tests supply
// mocks. All interaction with it happens on the runner goroutine.
type ChannelAPI interface {
	// UnbanChatMember lifts the ban on userID in chatID. With onlyIfBanned
	// set the call is a no-op for users who are not currently banned.
	UnbanChatMember(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error

	// SendMessage sends an HTML-formatted message and returns its message id
	// so the caller can edit it in place later.
	SendMessage(ctx context.Context, chatID int64, html string) (int, error)

	// EditMessage replaces the text of a previously sent message.
	EditMessage(ctx context.Context, chatID int64, messageID int, html string) error

	SetWebhook(ctx context.Context, url string, maxConnections int) error
	DeleteWebhook(ctx context.Context) error
}
