package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/at-ishikawa/smarttranslator/internal/popup"
	"github.com/at-ishikawa/smarttranslator/internal/savedwords"
)

func newSavedCommand() *cobra.Command {
	command := &cobra.Command{
		Use:   "saved",
		Short: "Manage saved words",
	}
	command.AddCommand(
		newSavedListCommand(),
		newSavedClearCommand(),
		newSavedExportCommand(),
	)
	return command
}

func newSavedListCommand() *cobra.Command {
	var (
		limit int
		all   bool
	)
	command := &cobra.Command{
		Use:   "list",
		Short: "List the most recently saved words",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("openStore() > %w", err)
			}
			defer func() {
				_ = closeStore()
			}()

			var entries []savedwords.Entry
			if all {
				entries, err = store.List(ctx)
			} else {
				entries, err = store.Recent(ctx, limit)
			}
			if err != nil {
				return fmt.Errorf("store.List() > %w", err)
			}
			return printEntries(cmd.OutOrStdout(), entries)
		},
	}
	flags := command.Flags()
	flags.IntVar(&limit, "limit", popup.SavedListSize, "Number of recent words to show")
	flags.BoolVar(&all, "all", false, "Show every saved word in the order it was saved")
	return command
}

func printEntries(w io.Writer, entries []savedwords.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No saved words yet")
		return err
	}
	bold := color.New(color.Bold)
	italic := color.New(color.Italic)
	for _, entry := range entries {
		if _, err := bold.Fprint(w, entry.Original); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, " → %s ", entry.Translated); err != nil {
			return err
		}
		if _, err := italic.Fprintf(w, "(%s, %s)", savedwords.LanguagePair(entry.SourceLanguage, entry.TargetLanguage), entry.SavedAt.UTC().Format(savedwords.SavedAtLayout)); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func newSavedClearCommand() *cobra.Command {
	var yes bool
	command := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved word",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !yes && !confirm("Clear all saved words") {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return err
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("openStore() > %w", err)
			}
			defer func() {
				_ = closeStore()
			}()

			if err := store.Clear(ctx); err != nil {
				return fmt.Errorf("store.Clear() > %w", err)
			}
			_, err = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), popup.MessageSavedCleared)
			return err
		},
	}
	command.Flags().BoolVarP(&yes, "yes", "y", false, "Clear without asking")
	return command
}

func newSavedExportCommand() *cobra.Command {
	var (
		format = savedwords.FormatYAML
		output string
	)
	command := &cobra.Command{
		Use:   "export",
		Short: "Export saved words as YAML, Markdown or PDF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if format == savedwords.FormatPDF && output == "" {
				return fmt.Errorf("--output is required for the pdf format")
			}

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}
			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				return fmt.Errorf("openStore() > %w", err)
			}
			defer func() {
				_ = closeStore()
			}()

			if format == savedwords.FormatPDF {
				if err := store.ExportPDF(ctx, output); err != nil {
					return fmt.Errorf("store.ExportPDF() > %w", err)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "PDF written to %s\n", output)
				return err
			}

			w := cmd.OutOrStdout()
			if output != "" {
				file, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("os.Create(%s) > %w", output, err)
				}
				defer func() {
					_ = file.Close()
				}()
				w = file
			}
			if err := store.Export(ctx, w, format); err != nil {
				return fmt.Errorf("store.Export() > %w", err)
			}
			return nil
		},
	}
	flags := command.Flags()
	flags.Var(&format, "format", fmt.Sprintf("Export format. Possible values are %v", savedwords.AllFormats))
	flags.StringVarP(&output, "output", "o", "", "Output file. Defaults to stdout except for pdf")
	return command
}
