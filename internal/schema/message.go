// Package schema defines the core types shared between the Slack channel,
// the normalizer, and the translation orchestrator.
package schema

// Message is the canonical, normalized form of one Slack message event.
// Immutable once constructed; built by bot.Normalize from a MessageEvent.
type Message struct {
	Text     string // message text; may be empty
	Channel  string // channel ID the message was posted in
	User     string // author user ID
	TS       string // message timestamp; unique per channel, sortable
	ThreadTS string // root timestamp of the thread; empty if this message is itself the root
}

// RootTS returns the timestamp anchoring this message's thread.
// A message with no ThreadTS starts its own thread.
func (m Message) RootTS() string {
	if m.ThreadTS != "" {
		return m.ThreadTS
	}
	return m.TS
}

// ThreadReply is one reply row returned by a thread lookup.
type ThreadReply struct {
	TS    string
	BotID string // non-empty when the reply was authored by a bot
	User  string
	Text  string
}

// IsBot reports whether the reply was posted by a bot identity.
func (r ThreadReply) IsBot() bool { return r.BotID != "" }
