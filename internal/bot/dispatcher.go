package bot

import (
	"context"
	"log/slog"

	"github.com/threadlingo/threadlingo/internal/bus"
	"github.com/threadlingo/threadlingo/internal/dedup"
	"github.com/threadlingo/threadlingo/internal/schema"
	"github.com/threadlingo/threadlingo/internal/translate"
)

// PlatformAPI executes reply actions against the chat platform.
type PlatformAPI interface {
	PostReply(ctx context.Context, channel, threadTS string, res *translate.Result) error
	UpdateReply(ctx context.Context, channel, ts string, res *translate.Result) error
}

// Dispatcher consumes message events from the bus and drives each one
// through normalize → decide → execute. Every event runs in its own
// goroutine; per-event failures are logged and dropped so one bad event
// never takes down the loop.
type Dispatcher struct {
	b     bus.Bus
	orch  *Orchestrator
	api   PlatformAPI
	guard *dedup.Cache
}

func NewDispatcher(b bus.Bus, orch *Orchestrator, api PlatformAPI, guard *dedup.Cache) *Dispatcher {
	return &Dispatcher{b: b, orch: orch, api: api, guard: guard}
}

// Run blocks until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-d.b.EventChan():
			if !d.guard.Acquire(ev.Key()) {
				slog.Debug("duplicate event ignored", "key", ev.Key())
				continue
			}
			go d.process(ctx, ev)
		}
	}
}

// process handles one event start to finish.
func (d *Dispatcher) process(ctx context.Context, ev schema.MessageEvent) {
	msg := Normalize(ev)
	if msg == nil {
		return
	}

	act := d.orch.Decide(ctx, msg, ev.IsEdit())

	switch act.Kind {
	case ActionPost:
		if err := d.api.PostReply(ctx, act.Channel, act.ThreadTS, act.Result); err != nil {
			slog.Error("post reply failed", "channel", act.Channel, "root", act.ThreadTS, "err", err)
			return
		}
		slog.Info("translation posted", "channel", act.Channel, "root", act.ThreadTS)

	case ActionUpdate:
		if err := d.api.UpdateReply(ctx, act.Channel, act.TargetTS, act.Result); err != nil {
			slog.Error("update reply failed", "channel", act.Channel, "ts", act.TargetTS, "err", err)
			return
		}
		slog.Info("translation updated", "channel", act.Channel, "ts", act.TargetTS)

	case ActionSkip:
		// No platform call.
	}
}
