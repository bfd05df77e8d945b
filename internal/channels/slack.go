// Package channels implements the Slack Socket Mode connection: inbound
// message events onto the bus, outbound reply actions back to the Web API.
package channels

import (
	"context"
	"log/slog"

	slackgo "github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/threadlingo/threadlingo/internal/bot"
	"github.com/threadlingo/threadlingo/internal/bus"
	"github.com/threadlingo/threadlingo/internal/config"
	"github.com/threadlingo/threadlingo/internal/schema"
	"github.com/threadlingo/threadlingo/internal/translate"
)

// SlackChannel owns the socket connection and the Web API client. It is
// both the event source (publishing decoded events to the bus) and the
// platform API the dispatcher executes actions through.
type SlackChannel struct {
	cfg       *config.SlackConfig
	b         bus.Bus
	webClient *slackgo.Client
	smClient  *socketmode.Client
	botUserID string
	botID     string
}

// Compile-time wiring checks.
var (
	_ bot.ThreadSource = (*SlackChannel)(nil)
	_ bot.PlatformAPI  = (*SlackChannel)(nil)
)

func NewSlackChannel(cfg *config.SlackConfig, b bus.Bus) *SlackChannel {
	return &SlackChannel{cfg: cfg, b: b}
}

// Start connects in Socket Mode and pumps events until ctx is cancelled.
// The connection auto-reconnects; cancellation tears it down.
func (s *SlackChannel) Start(ctx context.Context) error {
	s.webClient = slackgo.New(s.cfg.BotToken,
		slackgo.OptionAppLevelToken(s.cfg.AppToken))

	// Resolve our own identity so we can drop our own events early.
	if resp, err := s.webClient.AuthTestContext(ctx); err == nil {
		s.botUserID = resp.UserID
		s.botID = resp.BotID
		slog.Info("slack: connected", "bot_user_id", s.botUserID)
	} else {
		slog.Warn("slack: auth test failed", "err", err)
	}

	s.smClient = socketmode.New(s.webClient)

	go s.smClient.RunContext(ctx) //nolint:errcheck

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case evt, ok := <-s.smClient.Events:
			if !ok {
				return nil
			}
			s.handleEvent(evt)
		}
	}
}

func (s *SlackChannel) handleEvent(evt socketmode.Event) {
	switch evt.Type {
	case socketmode.EventTypeEventsAPI:
		s.smClient.Ack(*evt.Request)
		cb, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			return
		}
		if cb.InnerEvent.Type != "message" {
			return
		}
		// Inner event data is map[string]interface{} — decode once here.
		data, ok := cb.InnerEvent.Data.(map[string]interface{})
		if !ok {
			return
		}
		ev := schema.MessageEventFromMap(data)
		if s.isOwnEvent(ev) {
			return
		}
		if ev.Channel == "" {
			return
		}
		s.b.PublishEvent(ev)
	}
}

// isOwnEvent filters events the bot itself produced. The normalizer drops
// bot_message subtypes as well; this check just saves the round trip.
func (s *SlackChannel) isOwnEvent(ev schema.MessageEvent) bool {
	if s.botUserID != "" && ev.User == s.botUserID {
		return true
	}
	if s.botID != "" && ev.BotID == s.botID {
		return true
	}
	if ev.Edited != nil && s.botID != "" && ev.Edited.BotID == s.botID {
		return true
	}
	return false
}

// Replies implements bot.ThreadSource via conversations.replies.
func (s *SlackChannel) Replies(ctx context.Context, channel, rootTS string) ([]schema.ThreadReply, error) {
	msgs, _, _, err := s.webClient.GetConversationRepliesContext(ctx,
		&slackgo.GetConversationRepliesParameters{
			ChannelID: channel,
			Timestamp: rootTS,
		})
	if err != nil {
		return nil, err
	}

	replies := make([]schema.ThreadReply, 0, len(msgs))
	for _, m := range msgs {
		replies = append(replies, schema.ThreadReply{
			TS:    m.Timestamp,
			BotID: m.BotID,
			User:  m.User,
			Text:  m.Text,
		})
	}
	return replies, nil
}

// PostReply implements bot.PlatformAPI: a new threaded reply under threadTS.
func (s *SlackChannel) PostReply(ctx context.Context, channel, threadTS string, res *translate.Result) error {
	_, _, err := s.webClient.PostMessageContext(ctx, channel, replyOptions(threadTS, res)...)
	return err
}

// UpdateReply implements bot.PlatformAPI: edits the existing reply at ts in
// place. It never creates a new message.
func (s *SlackChannel) UpdateReply(ctx context.Context, channel, ts string, res *translate.Result) error {
	_, _, _, err := s.webClient.UpdateMessageContext(ctx, channel, ts, replyOptions("", res)...)
	return err
}

// replyOptions builds the shared message options: marker-prefixed fallback
// text plus the Block Kit payload when present.
func replyOptions(threadTS string, res *translate.Result) []slackgo.MsgOption {
	options := []slackgo.MsgOption{
		slackgo.MsgOptionText(bot.Marker+" "+res.Text, false),
	}
	if threadTS != "" {
		options = append(options, slackgo.MsgOptionTS(threadTS))
	}
	if len(res.Blocks.BlockSet) > 0 {
		options = append(options, slackgo.MsgOptionBlocks(res.Blocks.BlockSet...))
	}
	return options
}
