package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load builds the effective configuration: defaults, then the YAML file at
// path (missing file is fine), then environment variables. If path is
// empty, ConfigPath() is used.
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Environment-only deployment.
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	applyEnv(&cfg)
	return &cfg, nil
}

// applyEnv overlays environment variables onto cfg. Only set variables
// override; an empty environment leaves file/default values alone.
func applyEnv(cfg *Config) {
	setIfPresent(&cfg.Slack.BotToken, "SLACK_BOT_TOKEN")
	setIfPresent(&cfg.Slack.AppToken, "SLACK_APP_TOKEN")
	setIfPresent(&cfg.Translate.APIURL, "TRANSLATE_API_URL")
	setIfPresent(&cfg.Translate.APIToken, "TRANSLATE_API_TOKEN")
	setIfPresent(&cfg.Translate.Model, "TRANSLATE_MODEL")
}

func setIfPresent(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
