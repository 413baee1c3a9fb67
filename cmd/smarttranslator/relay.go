package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/smarttranslator/internal/relay"
)

func newRelayCommand() *cobra.Command {
	var port int
	command := &cobra.Command{
		Use:   "relay",
		Short: "Run the relay that performs translation calls for pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.Relay.Port = port
			}
			r, closeRelay := newRelay(cfg)
			defer func() {
				_ = closeRelay()
			}()

			handler := relay.NewHandler(r, relay.NewTabRegistry())
			if err := relay.Serve(ctx, fmt.Sprintf(":%d", cfg.Relay.Port), handler); err != nil {
				return fmt.Errorf("relay.Serve() > %w", err)
			}
			return nil
		},
	}
	command.Flags().IntVar(&port, "port", 0, "Port overriding the config")
	return command
}
