package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/smarttranslator/internal/relay"
	"github.com/at-ishikawa/smarttranslator/internal/status"
)

func newStatusCommand() *cobra.Command {
	var (
		relayURL string
		asHTML   bool
	)
	command := &cobra.Command{
		Use:   "status",
		Short: "Show whether the extension is active in the current tab",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			if relayURL == "" {
				relayURL = cfg.Relay.URL
			}

			indicator, err := status.NewIndicator(relay.NewTabClient(relayURL), cfg.Popup.TemplateDirectory)
			if err != nil {
				return fmt.Errorf("status.NewIndicator() > %w", err)
			}
			current := indicator.Load(cmd.Context())

			if asHTML {
				html, err := indicator.HTML(current)
				if err != nil {
					return fmt.Errorf("indicator.HTML() > %w", err)
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
				return err
			}
			dot := color.New(color.FgRed)
			if current.Active {
				dot = color.New(color.FgGreen)
			}
			if _, err := dot.Fprint(cmd.OutOrStdout(), "● "); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), current.Label)
			return err
		},
	}
	flags := command.Flags()
	flags.StringVar(&relayURL, "relay-url", "", "Relay URL overriding the config")
	flags.BoolVar(&asHTML, "html", false, "Print the indicator markup")
	return command
}
