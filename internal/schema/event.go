package schema

// Slack message event subtypes the bot cares about.
const (
	SubtypeBotMessage     = "bot_message"
	SubtypeMessageChanged = "message_changed"
)

// MessageEvent is the strongly typed form of a raw Slack inner message
// event. It is decoded exactly once, at the socket-mode boundary; everything
// downstream works with this record instead of map lookups.
type MessageEvent struct {
	Subtype     string
	Channel     string
	ChannelType string
	User        string
	BotID       string
	Text        string
	TS          string
	ThreadTS    string

	// Edited carries the nested "message" record of a message_changed
	// event. Nil for every other subtype.
	Edited *EditedMessage
}

// EditedMessage is the inner record of a message_changed event, holding the
// post-edit fields of the original message.
type EditedMessage struct {
	User     string
	BotID    string
	Text     string
	TS       string
	ThreadTS string
}

// MessageEventFromMap decodes the map payload slack-go hands back for inner
// message events. Missing fields decode to empty strings.
func MessageEventFromMap(data map[string]any) MessageEvent {
	ev := MessageEvent{
		Subtype:     str(data, "subtype"),
		Channel:     str(data, "channel"),
		ChannelType: str(data, "channel_type"),
		User:        str(data, "user"),
		BotID:       str(data, "bot_id"),
		Text:        str(data, "text"),
		TS:          str(data, "ts"),
		ThreadTS:    str(data, "thread_ts"),
	}

	if inner, ok := data["message"].(map[string]any); ok && ev.Subtype == SubtypeMessageChanged {
		ev.Edited = &EditedMessage{
			User:     str(inner, "user"),
			BotID:    str(inner, "bot_id"),
			Text:     str(inner, "text"),
			TS:       str(inner, "ts"),
			ThreadTS: str(inner, "thread_ts"),
		}
	}

	return ev
}

// IsEdit reports whether this event describes an edit to an earlier message.
func (e MessageEvent) IsEdit() bool { return e.Subtype == SubtypeMessageChanged }

// Key returns the dedup identity of this event. Slack delivers events
// at-least-once; a redelivery carries the same channel, timestamp, and
// subtype, so duplicates collapse onto one key.
func (e MessageEvent) Key() string {
	ts := e.TS
	if ts == "" && e.Edited != nil {
		ts = e.Edited.TS
	}
	return e.Channel + "/" + ts + "/" + e.Subtype
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
