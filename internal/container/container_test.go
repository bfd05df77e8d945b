package container

import (
	"testing"

	"github.com/threadlingo/threadlingo/internal/config"
)

func TestNew_WiresAllServices(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Slack.BotToken = "xoxb-test"
	cfg.Slack.AppToken = "xapp-test"
	cfg.Translate.APIURL = "http://localhost:11434/api/generate"

	c, err := New(&cfg)
	if err != nil {
		t.Fatalf("unexpected wiring error: %v", err)
	}
	if c.Translator() == nil {
		t.Error("translator not wired")
	}
	if c.Guard() == nil {
		t.Error("dedup guard not wired")
	}
	if c.Slack() == nil {
		t.Error("slack channel not wired")
	}
	if c.Dispatcher() == nil {
		t.Error("dispatcher not wired")
	}
}
