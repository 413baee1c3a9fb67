package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/smarttranslator/internal/cli"
)

func newTranslateCommand() *cobra.Command {
	var (
		targetLanguage string
		sourceLanguage string
		save           bool
	)
	command := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text, or start an interactive session without an argument",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			if cmd.Flags().Changed("target") {
				cfg.Translation.TargetLanguage = targetLanguage
			}
			if cmd.Flags().Changed("source") {
				cfg.Translation.SourceLanguage = sourceLanguage
			}

			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("openStore() > %w", err)
			}
			defer func() {
				_ = closeStore()
			}()
			r, closeRelay := newRelay(cfg)
			defer func() {
				_ = closeRelay()
			}()

			translateCLI := cli.NewTranslateCLI(
				cmd.InOrStdin(),
				cmd.OutOrStdout(),
				r,
				store,
				cfg.Translation.TargetLanguage,
				cfg.Translation.SourceLanguage,
				save,
			)
			if len(args) == 0 {
				return translateCLI.Run(ctx, translateCLI)
			}

			text := strings.TrimSpace(args[0])
			if text == "" {
				return fmt.Errorf("text is empty")
			}
			result, err := translateCLI.Translate(ctx, text)
			if err != nil {
				return fmt.Errorf("translateCLI.Translate() > %w", err)
			}
			translateCLI.PrintResult(result)
			if save {
				if err := translateCLI.SaveResult(ctx, result); err != nil {
					return fmt.Errorf("translateCLI.SaveResult() > %w", err)
				}
			}
			return nil
		},
	}
	flags := command.Flags()
	flags.StringVar(&targetLanguage, "target", "", "Target language code overriding the config")
	flags.StringVar(&sourceLanguage, "source", "", "Source language code. Empty detects it")
	flags.BoolVar(&save, "save", false, "Save the translation without asking")
	return command
}
