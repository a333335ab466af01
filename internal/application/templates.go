package application

import (
	"fmt"
	"os"

	"telegram-unban-bot/internal/domain/model"

	"gopkg.in/yaml.v3"
)

// Templates holds the bot's reply wording. All replies use Telegram HTML
// parse mode. Deployments can override individual keys with a YAML file of
// key: format pairs; unknown keys are rejected so typos don't silently fall
// back to defaults.
type Templates struct {
	m map[string]string
}

func defaultTemplates() map[string]string {
	return map[string]string{
		"welcome": "👋 Hi!\n\n" +
			"🤖 <b>Unban Bot Active</b>\n\n" +
			"📋 <b>Commands:</b>\n" +
			"• /start - Start bot\n" +
			"• /help - Help guide\n" +
			"• /unban [ID] - Unban user\n\n" +
			"🎯 <b>How to use:</b>\n" +
			"1. Get user ID from @userinfobot\n" +
			"2. Send me the ID\n" +
			"3. I'll unban them\n\n" +
			"⚡ <b>Quick unban:</b>\n" +
			"Just send: <code>123456789</code>\n\n" +
			"📢 Channel ID: <code>%d</code>",
		"help": "🆘 <b>HELP GUIDE</b>\n\n" +
			"📋 <b>Commands:</b>\n" +
			"/start - Start the bot\n" +
			"/help - Show this guide\n" +
			"/unban [ID] - Unban a user\n\n" +
			"🎯 <b>How to unban:</b>\n" +
			"1. Get user ID from @userinfobot\n" +
			"2. Send: <code>/unban 123456789</code>\n" +
			"OR just send the ID\n\n" +
			"⚠️ <b>Note:</b> I must be an admin in your channel!",
		"usage": "❌ <b>Usage:</b> <code>/unban USER_ID</code>\n" +
			"Example: <code>/unban 123456789</code>",
		"guidance": "❌ Send a valid User ID (numbers only)\n" +
			"Example: <code>123456789</code>\n" +
			"Get ID from @userinfobot",
		"processing": "⏳ Processing...",
		"success": "✅ <b>Successfully Unbanned!</b>\n\n" +
			"👤 User ID: <code>%d</code>\n" +
			"📢 Channel: <code>%d</code>",
		"invalid_id": "❌ <b>Invalid User ID!</b>\n" +
			"User ID must contain only numbers.",
		"permission_denied": "❌ <b>Permission Error!</b>\n\n" +
			"Make me an ADMIN in the channel with:\n" +
			"• Ban Users permission\n\n" +
			"Then try again!",
		"user_not_found": "❌ User not found!",
		"not_banned":     "✅ User is not banned!",
		"chat_not_found": "❌ Channel not found!",
		"timeout": "⚠️ <b>Operation timed out!</b>\n" +
			"The server took too long to respond. Please try again.",
		"other_error": "❌ Failed to unban. Try again!",
		"internal_error": "⚠️ <b>An error occurred!</b>\n" +
			"Please try again later.",
	}
}

// NewTemplates returns the built-in wording, optionally overlaid with
// overrides from the given YAML file (empty path means defaults only).
func NewTemplates(path string) (*Templates, error) {
	t := &Templates{m: defaultTemplates()}
	if path == "" {
		return t, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates file: %w", err)
	}
	var overrides map[string]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("parse templates file: %w", err)
	}
	for key, text := range overrides {
		if _, ok := t.m[key]; !ok {
			return nil, fmt.Errorf("unknown template key %q", key)
		}
		t.m[key] = text
	}
	return t, nil
}

// T formats the template for key. Unknown keys return the key itself so a
// broken mapping is visible in the chat instead of crashing a handler.
func (t *Templates) T(key string, args ...interface{}) string {
	format, ok := t.m[key]
	if !ok {
		return key
	}
	if len(args) > 0 {
		return fmt.Sprintf(format, args...)
	}
	return format
}

// Outcome renders the reply for a classified unban outcome.
func (t *Templates) Outcome(out model.Outcome, channelID int64) string {
	if out.Kind == model.OutcomeSuccess {
		return t.T("success", out.UserID, channelID)
	}
	return t.T(out.Kind.String())
}
