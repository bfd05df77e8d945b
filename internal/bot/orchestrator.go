package bot

import (
	"context"
	"log/slog"

	"github.com/threadlingo/threadlingo/internal/schema"
	"github.com/threadlingo/threadlingo/internal/translate"
)

// ActionKind tags the orchestrator's terminal states.
type ActionKind int

const (
	ActionSkip ActionKind = iota
	ActionPost
	ActionUpdate
)

// Action is the orchestrator's sole output: what, if anything, to do on the
// platform for one message. Decision logic never performs platform I/O
// itself.
type Action struct {
	Kind     ActionKind
	Channel  string
	ThreadTS string // Post: root timestamp to anchor the reply under
	TargetTS string // Update: timestamp of the existing bot reply to edit
	Result   *translate.Result
}

// Skip is the empty action.
var Skip = Action{Kind: ActionSkip}

// ThreadSource fetches the live reply list under a thread root. The
// platform is the system of record; nothing is cached between decisions.
type ThreadSource interface {
	Replies(ctx context.Context, channel, rootTS string) ([]schema.ThreadReply, error)
}

// Translator requests one translation bundle per call.
type Translator interface {
	Translate(ctx context.Context, text string) (*translate.Result, error)
}

// Orchestrator decides create-vs-update-vs-skip for each normalized
// message. Stateless; safe for concurrent use from many event handlers.
type Orchestrator struct {
	threads    ThreadSource
	translator Translator
}

func NewOrchestrator(threads ThreadSource, translator Translator) *Orchestrator {
	return &Orchestrator{threads: threads, translator: translator}
}

// Decide runs the per-message state machine.
//
// New message: an existing bot reply under the root means the translation
// was already produced (at-least-once delivery), so skip; otherwise
// translate and post. Edit: no bot reply means there is nothing to update,
// so skip; otherwise translate the new text and update the earliest bot
// reply. Translation failure always degrades to skip — silence, never a
// user-visible error.
func (o *Orchestrator) Decide(ctx context.Context, msg *schema.Message, isEdit bool) Action {
	if ShouldSkip(msg.Text) {
		return Skip
	}

	root := msg.RootTS()

	// The existence check runs here, immediately before the translate+post
	// decision, to keep the duplicate window as small as possible.
	botReplies := o.botReplies(ctx, msg.Channel, root)

	if isEdit {
		if len(botReplies) == 0 {
			slog.Debug("no translation to update", "channel", msg.Channel, "ts", msg.TS)
			return Skip
		}
		res, err := o.translator.Translate(ctx, msg.Text)
		if err != nil {
			slog.Error("translation failed", "channel", msg.Channel, "ts", msg.TS, "err", err)
			return Skip
		}
		return Action{
			Kind:     ActionUpdate,
			Channel:  msg.Channel,
			TargetTS: earliest(botReplies),
			Result:   res,
		}
	}

	if len(botReplies) > 0 {
		slog.Debug("translation already exists", "channel", msg.Channel, "ts", msg.TS)
		return Skip
	}
	res, err := o.translator.Translate(ctx, msg.Text)
	if err != nil {
		slog.Error("translation failed", "channel", msg.Channel, "ts", msg.TS, "err", err)
		return Skip
	}
	return Action{
		Kind:     ActionPost,
		Channel:  msg.Channel,
		ThreadTS: root,
		Result:   res,
	}
}

// botReplies returns the bot-authored replies under root, excluding the
// root message itself. A lookup failure degrades to "no existing replies".
func (o *Orchestrator) botReplies(ctx context.Context, channel, rootTS string) []schema.ThreadReply {
	replies, err := o.threads.Replies(ctx, channel, rootTS)
	if err != nil {
		slog.Warn("thread lookup failed", "channel", channel, "root", rootTS, "err", err)
		return nil
	}

	var out []schema.ThreadReply
	for _, r := range replies {
		if r.IsBot() && r.TS != rootTS {
			out = append(out, r)
		}
	}
	return out
}

// earliest picks the deterministic update target when more than one bot
// reply exists under a root: the lowest timestamp, so repeated edits never
// oscillate between replies.
func earliest(replies []schema.ThreadReply) string {
	min := replies[0].TS
	for _, r := range replies[1:] {
		if r.TS < min {
			min = r.TS
		}
	}
	return min
}
