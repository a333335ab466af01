package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"telegram-unban-bot/internal/domain/model"
	"telegram-unban-bot/internal/domain/ports/adapter"
	"telegram-unban-bot/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// maxDetailRunes bounds the raw remote error text carried in an
// OtherError outcome.
const maxDetailRunes = 200

// UnbanUseCase removes a user's ban from the single configured channel and
// classifies the result of the remote call.
type UnbanUseCase struct {
	api       adapter.ChannelAPI
	channelID int64
	timeout   time.Duration
	log       *zerolog.Logger
}

// NewUnbanUseCase constructs an UnbanUseCase. timeout bounds each remote
// unban call (default in config: 15s).
func NewUnbanUseCase(api adapter.ChannelAPI, channelID int64, timeout time.Duration, logger *zerolog.Logger) *UnbanUseCase {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &UnbanUseCase{api: api, channelID: channelID, timeout: timeout, log: logger}
}

// Unban parses raw as a user id, invokes the remote unban capability with a
// bounded wait, and classifies what came back. It never returns an error:
// every failure mode is an outcome with a fixed reply template.
func (uc *UnbanUseCase) Unban(ctx context.Context, raw string) model.Outcome {
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || userID <= 0 {
		uc.log.Info().Str("raw", raw).Msg("rejected non-numeric user id")
		return uc.done(model.Outcome{Kind: model.OutcomeInvalidID})
	}

	uc.log.Info().Int64("user_id", userID).Int64("channel_id", uc.channelID).Msg("unbanning user")

	callCtx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	err = uc.api.UnbanChatMember(callCtx, uc.channelID, userID, true)
	if err == nil {
		uc.log.Info().Int64("user_id", userID).Msg("unbanned user")
		return uc.done(model.Outcome{Kind: model.OutcomeSuccess, UserID: userID})
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		uc.log.Warn().Int64("user_id", userID).Msg("unban timed out")
		return uc.done(model.Outcome{Kind: model.OutcomeTimeout, UserID: userID})
	}

	uc.log.Error().Int64("user_id", userID).Str("remote_error", err.Error()).Msg("unban failed")
	out := Classify(err.Error())
	out.UserID = userID
	return uc.done(out)
}

func (uc *UnbanUseCase) done(out model.Outcome) model.Outcome {
	metrics.IncUnbanOutcome(out.Kind.String())
	return out
}

// Classify maps a remote error message to an outcome by case-insensitive
// substring match. The priority order is load-bearing: messages can match
// more than one substring and the first listed wins.
func Classify(msg string) model.Outcome {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "not enough rights"):
		return model.Outcome{Kind: model.OutcomePermissionDenied}
	case strings.Contains(lower, "user not found"):
		return model.Outcome{Kind: model.OutcomeUserNotFound}
	case strings.Contains(lower, "not banned"):
		return model.Outcome{Kind: model.OutcomeNotBanned}
	case strings.Contains(lower, "chat not found"):
		return model.Outcome{Kind: model.OutcomeChatNotFound}
	default:
		return model.Outcome{Kind: model.OutcomeOtherError, Detail: truncate(msg, maxDetailRunes)}
	}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
