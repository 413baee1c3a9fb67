package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/smarttranslator/internal/devserver"
)

func newDevServerCommand() *cobra.Command {
	var (
		port int
		root string
	)
	command := &cobra.Command{
		Use:   "devserver",
		Short: "Serve the extension directory for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			if cmd.Flags().Changed("port") {
				cfg.DevServer.Port = port
			}
			if cmd.Flags().Changed("root") {
				cfg.DevServer.Root = root
			}

			server, err := devserver.New(devserver.Config{
				Port:              cfg.DevServer.Port,
				Root:              cfg.DevServer.Root,
				InstructionsFile:  cfg.DevServer.InstructionsFile,
				TemplateDirectory: cfg.Popup.TemplateDirectory,
			})
			if err != nil {
				return fmt.Errorf("devserver.New() > %w", err)
			}
			if err := server.ListenAndServe(ctx); err != nil {
				return fmt.Errorf("server.ListenAndServe() > %w", err)
			}
			return nil
		},
	}
	flags := command.Flags()
	flags.IntVar(&port, "port", devserver.DefaultPort, "Port overriding the config")
	flags.StringVar(&root, "root", ".", "Directory to serve")
	return command
}
