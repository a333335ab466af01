package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"telegram-unban-bot/internal/application"
	"telegram-unban-bot/internal/config"
	"telegram-unban-bot/internal/domain/model"
	"telegram-unban-bot/internal/infra/logging"
	"telegram-unban-bot/internal/infra/worker"

	"github.com/rs/zerolog"
)

// Bot implements adapter.ChannelAPI on top of tgbotapi. Constructing it
// performs the getMe handshake; all subsequent calls are expected to run on
// the runner goroutine.
type Bot struct {
	api *tgbotapi.BotAPI
	cfg *config.Config
	log *zerolog.Logger
}

func NewBot(cfg *config.Config, logger *zerolog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram handshake: %w", err)
	}
	logger.Info().Str("username", api.Self.UserName).Msg("telegram bot initialized")
	return &Bot{api: api, cfg: cfg, log: logger}, nil
}

// UnbanChatMember lifts the ban, bounded by ctx. The underlying HTTP call is
// not cancellable; on deadline it is left to finish on its own and the
// deadline error is returned.
func (b *Bot) UnbanChatMember(ctx context.Context, chatID, userID int64, onlyIfBanned bool) error {
	req := tgbotapi.UnbanChatMemberConfig{
		ChatMemberConfig: tgbotapi.ChatMemberConfig{ChatID: chatID, UserID: userID},
		OnlyIfBanned:     onlyIfBanned,
	}
	errc := make(chan error, 1)
	go func() {
		_, err := b.api.Request(req)
		errc <- err
	}()
	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bot) SendMessage(_ context.Context, chatID int64, html string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	sent, err := b.api.Send(msg)
	if err != nil {
		return 0, err
	}
	return sent.MessageID, nil
}

func (b *Bot) EditMessage(_ context.Context, chatID int64, messageID int, html string) error {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, html)
	edit.ParseMode = tgbotapi.ModeHTML
	_, err := b.api.Send(edit)
	return err
}

func (b *Bot) SetWebhook(_ context.Context, url string, maxConnections int) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("build webhook config: %w", err)
	}
	wh.MaxConnections = maxConnections
	wh.DropPendingUpdates = true
	wh.AllowedUpdates = []string{"message", "callback_query"}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("set webhook: %w", err)
	}
	b.log.Info().Str("url", url).Msg("webhook registered")
	return nil
}

func (b *Bot) DeleteWebhook(_ context.Context) error {
	if _, err := b.api.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		return fmt.Errorf("delete webhook: %w", err)
	}
	b.log.Info().Msg("webhook removed")
	return nil
}

// StartPolling runs the long-poll loop (development mode). Updates are fed
// through the runner so the dispatcher still executes on the runner
// goroutine; delivery to the HTTP webhook is never active at the same time.
func (b *Bot) StartPolling(ctx context.Context, runner *worker.Runner, d *application.Dispatcher) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	b.log.Info().Msg("long-polling started")
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			ev := FromUpdate(update)
			traceID := uuid.NewString()
			err := runner.Submit(func(runCtx context.Context) error {
				d.Dispatch(logging.WithTraceID(runCtx, traceID), ev)
				return nil
			})
			if err != nil {
				b.log.Warn().Err(err).Msg("dropping polled update")
			}
		}
	}
}

// FromUpdate reduces a Telegram update to the dispatcher's event shape.
// Commands are routed from any chat; bare text only from private chats,
// mirroring the webhook's allowed-updates filter.
func FromUpdate(update tgbotapi.Update) model.Event {
	msg := update.Message
	if msg == nil || msg.From == nil || msg.Chat == nil {
		return model.Event{Kind: model.EventOther}
	}

	ev := model.Event{
		ChatID:    msg.Chat.ID,
		UserID:    msg.From.ID,
		MessageID: msg.MessageID,
	}
	if msg.IsCommand() {
		ev.Kind = model.EventCommand
		ev.Command = msg.Command()
		ev.Args = strings.Fields(msg.CommandArguments())
		return ev
	}
	if msg.Chat.IsPrivate() && msg.Text != "" {
		ev.Kind = model.EventDirectMessage
		ev.Text = msg.Text
		return ev
	}
	ev.Kind = model.EventOther
	return ev
}
