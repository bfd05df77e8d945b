package bot

import "github.com/threadlingo/threadlingo/internal/schema"

// Normalize converts a decoded Slack message event into a canonical
// Message, or nil when the event must not be processed at all.
//
// Bot-originated events yield nil. For message_changed events the fields
// come from the nested edited record, not the outer event; its thread_ts is
// empty when the edited message is itself a thread root. Every returned
// Message has a non-empty TS; empty text is legal and handled by the skip
// policy downstream.
func Normalize(ev schema.MessageEvent) *schema.Message {
	switch ev.Subtype {
	case schema.SubtypeBotMessage:
		return nil

	case schema.SubtypeMessageChanged:
		inner := ev.Edited
		if inner == nil || inner.TS == "" {
			return nil
		}
		if inner.BotID != "" {
			return nil
		}
		return &schema.Message{
			Text:     inner.Text,
			Channel:  ev.Channel,
			User:     inner.User,
			TS:       inner.TS,
			ThreadTS: inner.ThreadTS,
		}

	default:
		if ev.TS == "" {
			return nil
		}
		return &schema.Message{
			Text:     ev.Text,
			Channel:  ev.Channel,
			User:     ev.User,
			TS:       ev.TS,
			ThreadTS: ev.ThreadTS,
		}
	}
}
