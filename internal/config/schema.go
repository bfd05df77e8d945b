// Package config defines the threadlingo configuration schema.
//
// Values come from three layers, later layers winning: built-in defaults,
// an optional YAML config file, and environment variables. Credentials are
// expected to arrive via the environment in most deployments.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SlackConfig holds the Slack credentials for Socket Mode.
type SlackConfig struct {
	BotToken string `yaml:"botToken"` // xoxb- token for Web API calls
	AppToken string `yaml:"appToken"` // xapp- token for the socket connection
}

// TranslateConfig holds the LLM translation endpoint settings.
type TranslateConfig struct {
	APIURL         string `yaml:"apiUrl"`
	APIToken       string `yaml:"apiToken,omitempty"` // optional bearer token
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout returns the per-request timeout for translation calls.
func (c TranslateConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// DedupConfig tunes the at-least-once event guard.
type DedupConfig struct {
	TTLSeconds   int `yaml:"ttlSeconds"`   // how long an event key blocks redelivery
	SweepSeconds int `yaml:"sweepSeconds"` // how often expired keys are evicted
}

// TTL returns the dedup window duration.
func (c DedupConfig) TTL() time.Duration { return time.Duration(c.TTLSeconds) * time.Second }

// SweepEvery returns the eviction interval.
func (c DedupConfig) SweepEvery() time.Duration { return time.Duration(c.SweepSeconds) * time.Second }

// Config is the root configuration object.
type Config struct {
	Slack     SlackConfig     `yaml:"slack"`
	Translate TranslateConfig `yaml:"translate"`
	Dedup     DedupConfig     `yaml:"dedup"`
}

// DefaultConfig returns the built-in defaults. Credentials are deliberately
// empty; Validate rejects a config that never received them.
func DefaultConfig() Config {
	return Config{
		Translate: TranslateConfig{
			Model:          "llama2",
			TimeoutSeconds: 120,
		},
		Dedup: DedupConfig{
			TTLSeconds:   300,
			SweepSeconds: 60,
		},
	}
}

// Validate checks that every required setting is present. It returns one
// error naming all missing settings so a misconfigured deployment fails
// fast with a complete picture.
func (c *Config) Validate() error {
	var missing []string
	if c.Slack.BotToken == "" {
		missing = append(missing, "slack bot token (SLACK_BOT_TOKEN)")
	}
	if c.Slack.AppToken == "" {
		missing = append(missing, "slack app token (SLACK_APP_TOKEN)")
	}
	if c.Translate.APIURL == "" {
		missing = append(missing, "translation endpoint (TRANSLATE_API_URL)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	if c.Translate.TimeoutSeconds <= 0 {
		return fmt.Errorf("translate timeout must be positive, got %d", c.Translate.TimeoutSeconds)
	}
	if c.Dedup.TTLSeconds <= 0 || c.Dedup.SweepSeconds <= 0 {
		return fmt.Errorf("dedup ttl/sweep must be positive, got %d/%d",
			c.Dedup.TTLSeconds, c.Dedup.SweepSeconds)
	}
	return nil
}

// ConfigPath returns the default configuration file path:
// ~/.threadlingo/config.yaml.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".threadlingo/config.yaml"
	}
	return filepath.Join(home, ".threadlingo", "config.yaml")
}
