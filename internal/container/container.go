// Package container wires threadlingo's services using go.uber.org/dig.
// Everything that used to be a process-global lives here instead, built
// once and injected; callers use the typed getters and never import dig.
package container

import (
	"go.uber.org/dig"

	"github.com/threadlingo/threadlingo/internal/bot"
	"github.com/threadlingo/threadlingo/internal/bus"
	"github.com/threadlingo/threadlingo/internal/channels"
	"github.com/threadlingo/threadlingo/internal/config"
	"github.com/threadlingo/threadlingo/internal/dedup"
	"github.com/threadlingo/threadlingo/internal/translate"
)

// Container holds the resolved service singletons for the process lifetime.
type Container struct {
	translator *translate.Client
	guard      *dedup.Cache
	slack      *channels.SlackChannel
	dispatcher *bot.Dispatcher
}

func (c *Container) Translator() *translate.Client { return c.translator }
func (c *Container) Guard() *dedup.Cache           { return c.guard }
func (c *Container) Slack() *channels.SlackChannel { return c.slack }
func (c *Container) Dispatcher() *bot.Dispatcher   { return c.dispatcher }

// New builds and wires all services from cfg. cfg must already be
// validated.
func New(cfg *config.Config) (*Container, error) {
	d := dig.New()

	providers := []any{
		func() *config.Config { return cfg },
		newTranslator,
		newGuard,
		newBus,
		newSlackChannel,
		newOrchestrator,
		newDispatcher,
	}
	for _, p := range providers {
		if err := d.Provide(p); err != nil {
			return nil, err
		}
	}

	var result *Container
	err := d.Invoke(func(
		translator *translate.Client,
		guard *dedup.Cache,
		slack *channels.SlackChannel,
		dispatcher *bot.Dispatcher,
	) {
		result = &Container{
			translator: translator,
			guard:      guard,
			slack:      slack,
			dispatcher: dispatcher,
		}
	})
	return result, err
}

func newTranslator(cfg *config.Config) *translate.Client {
	return translate.NewClient(cfg.Translate)
}

func newGuard(cfg *config.Config) *dedup.Cache {
	return dedup.New(cfg.Dedup.TTL(), cfg.Dedup.SweepEvery())
}

func newBus() bus.Bus {
	return bus.NewMessageBus(100)
}

func newSlackChannel(cfg *config.Config, b bus.Bus) *channels.SlackChannel {
	return channels.NewSlackChannel(&cfg.Slack, b)
}

func newOrchestrator(slack *channels.SlackChannel, translator *translate.Client) *bot.Orchestrator {
	return bot.NewOrchestrator(slack, translator)
}

func newDispatcher(b bus.Bus, orch *bot.Orchestrator, slack *channels.SlackChannel, guard *dedup.Cache) *bot.Dispatcher {
	return bot.NewDispatcher(b, orch, slack, guard)
}
