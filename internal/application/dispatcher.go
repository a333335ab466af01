package application

import (
	"context"
	"fmt"
	"strings"

	"telegram-unban-bot/internal/domain/model"
	"telegram-unban-bot/internal/domain/ports/adapter"
	"telegram-unban-bot/internal/infra/logging"
	"telegram-unban-bot/internal/infra/metrics"
	"telegram-unban-bot/internal/usecase"

	"github.com/rs/zerolog"
)

// minIDDigits is the heuristic separating likely Telegram user ids from
// arbitrary short numbers sent in chat.
const minIDDigits = 5

// Dispatcher routes one incoming event to exactly one handler and sends the
// reply back through the channel API. It always runs on the runner
// goroutine; failures never propagate out of Dispatch.
type Dispatcher struct {
	api       adapter.ChannelAPI
	unbanUC   *usecase.UnbanUseCase
	tpl       *Templates
	channelID int64
	log       *zerolog.Logger
}

func NewDispatcher(api adapter.ChannelAPI, unbanUC *usecase.UnbanUseCase, tpl *Templates, channelID int64, logger *zerolog.Logger) *Dispatcher {
	return &Dispatcher{api: api, unbanUC: unbanUC, tpl: tpl, channelID: channelID, log: logger}
}

// Dispatch handles a single event. Handler errors and panics are caught
// here: they are logged and answered with a best-effort generic reply whose
// own failure is ignored.
func (d *Dispatcher) Dispatch(ctx context.Context, ev model.Event) {
	ctx = logging.WithTgID(ctx, ev.UserID)
	log := logging.With(ctx, d.log)

	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("handler panicked")
			d.notifyError(ctx, ev.ChatID)
		}
	}()

	if err := d.dispatch(ctx, ev); err != nil {
		log.Error().Err(err).Int64("chat_id", ev.ChatID).Msg("handler failed")
		d.notifyError(ctx, ev.ChatID)
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, ev model.Event) error {
	switch ev.Kind {
	case model.EventCommand:
		return d.dispatchCommand(ctx, ev)
	case model.EventDirectMessage:
		return d.dispatchMessage(ctx, ev)
	default:
		return nil
	}
}

func (d *Dispatcher) dispatchCommand(ctx context.Context, ev model.Event) error {
	switch ev.Command {
	case "start":
		metrics.IncCommand("/start")
		_, err := d.api.SendMessage(ctx, ev.ChatID, d.tpl.T("welcome", d.channelID))
		return err
	case "help":
		metrics.IncCommand("/help")
		_, err := d.api.SendMessage(ctx, ev.ChatID, d.tpl.T("help"))
		return err
	case "unban":
		metrics.IncCommand("/unban")
		if len(ev.Args) == 0 {
			_, err := d.api.SendMessage(ctx, ev.ChatID, d.tpl.T("usage"))
			return err
		}
		return d.processUnban(ctx, ev, ev.Args[0])
	default:
		// unrecognized commands get no reply
		return nil
	}
}

func (d *Dispatcher) dispatchMessage(ctx context.Context, ev model.Event) error {
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return nil
	}
	if isDigits(text) && len(text) >= minIDDigits {
		metrics.IncCommand("bare_id")
		return d.processUnban(ctx, ev, text)
	}
	if !strings.HasPrefix(text, "/") {
		metrics.IncCommand("guidance")
		_, err := d.api.SendMessage(ctx, ev.ChatID, d.tpl.T("guidance"))
		return err
	}
	return nil
}

// processUnban sends a processing placeholder, runs the use-case, then edits
// the placeholder in place with the final result. At most two messages per
// request; exactly one carries the outcome.
func (d *Dispatcher) processUnban(ctx context.Context, ev model.Event, raw string) error {
	placeholderID, sendErr := d.api.SendMessage(ctx, ev.ChatID, d.tpl.T("processing"))

	out := d.unbanUC.Unban(ctx, raw)
	if out.Kind == model.OutcomeOtherError {
		logging.With(ctx, d.log).Error().
			Int64("chat_id", ev.ChatID).
			Int("message_id", ev.MessageID).
			Str("detail", out.Detail).
			Msg("unban failed with unclassified error")
	}
	reply := d.tpl.Outcome(out, d.channelID)

	if sendErr != nil {
		_, err := d.api.SendMessage(ctx, ev.ChatID, reply)
		if err != nil {
			return fmt.Errorf("send outcome reply: %w", err)
		}
		return nil
	}
	if err := d.api.EditMessage(ctx, ev.ChatID, placeholderID, reply); err != nil {
		// fall back to a fresh message so the outcome is not lost
		if _, err := d.api.SendMessage(ctx, ev.ChatID, reply); err != nil {
			return fmt.Errorf("send outcome reply: %w", err)
		}
	}
	return nil
}

// notifyError best-effort notifies the sender that something went wrong.
// A failure to notify is deliberately ignored.
func (d *Dispatcher) notifyError(ctx context.Context, chatID int64) {
	_, _ = d.api.SendMessage(ctx, chatID, d.tpl.T("internal_error"))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
