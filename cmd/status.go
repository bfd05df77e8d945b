package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/threadlingo/threadlingo/internal/config"
)

var statusConfigPath string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show threadlingo configuration status",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusConfigPath, "config", "c", "", "Config file path (default ~/.threadlingo/config.yaml)")
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfgPath := statusConfigPath
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}

	fmt.Printf("%s threadlingo Status\n\n", logo)

	_, statErr := os.Stat(cfgPath)
	cfgMark := "✗"
	if statErr == nil {
		cfgMark = "✓"
	}
	fmt.Printf("Config:    %s %s\n", cfgPath, cfgMark)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Printf("  (could not load config: %v)\n", err)
		return nil
	}

	fmt.Printf("Slack:     bot token %s, app token %s\n",
		mark(cfg.Slack.BotToken != ""), mark(cfg.Slack.AppToken != ""))
	fmt.Printf("Translate: endpoint %s, model %s\n",
		mark(cfg.Translate.APIURL != ""), cfg.Translate.Model)

	if err := cfg.Validate(); err != nil {
		fmt.Printf("\n%v\n", err)
	} else {
		fmt.Println("\nConfiguration is complete.")
	}
	return nil
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "(not set)"
}
