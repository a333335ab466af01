package model

// EventKind discriminates the shapes of inbound bot updates the dispatcher
// knows how to route.
type EventKind int

const (
	// EventOther covers updates the bot does not act on (edits, channel
	// posts, callback queries and so on).
	EventOther EventKind = iota
	EventCommand
	EventDirectMessage
)

// Event is the dispatcher's view of one inbound Telegram update. It is built
// by the telegram adapter and owned by the dispatcher for a single handling
// pass; nothing retains it afterwards.
type Event struct {
	Kind    EventKind
	Command string   // command name without the leading slash, EventCommand only
	Args    []string // command arguments, EventCommand only
	Text    string   // raw message text, EventDirectMessage only

	ChatID    int64
	UserID    int64
	MessageID int
}
