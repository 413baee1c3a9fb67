package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/smarttranslator/internal/popup"
	"github.com/at-ishikawa/smarttranslator/internal/relay"
)

// notifyingMessenger closes done after the first reply has been handled.
type notifyingMessenger struct {
	relay.Messenger
	done chan struct{}
}

func (m notifyingMessenger) Send(ctx context.Context, msg relay.Message, reply func(relay.Response)) {
	m.Messenger.Send(ctx, msg, func(response relay.Response) {
		reply(response)
		close(m.done)
	})
}

func newPreviewCommand() *cobra.Command {
	var (
		viewportWidth  float64
		viewportHeight float64
		selectionLeft  float64
		selectionTop   float64
		clicks         []string
	)
	command := &cobra.Command{
		Use:   "preview <text>",
		Short: "Select text on a headless page and print the popup",
		Args:  cobra.ExactArgs(1),
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
			r, closeRelay := newRelay(cfg)
			defer func() {
				_ = closeRelay()
			}()

			renderer, err := popup.NewRenderer(cfg.Popup.TemplateDirectory)
			if err != nil {
				return fmt.Errorf("popup.NewRenderer() > %w", err)
			}
			document := popup.NewMemoryDocument(popup.Viewport{Width: viewportWidth, Height: viewportHeight}, 320, 160)
			scheduler := popup.NewManualScheduler()
			messenger := notifyingMessenger{Messenger: r, done: make(chan struct{})}
			controller := popup.NewController(document, messenger, store, renderer, popup.Options{
				TargetLanguage: cfg.Translation.TargetLanguage,
				SourceLanguage: cfg.Translation.SourceLanguage,
				Confirmer:      popup.ConfirmFunc(confirm),
				Scheduler:      scheduler,
			})

			document.Select(args[0], popup.Rect{Left: selectionLeft, Top: selectionTop, Width: 80, Height: 20})
			controller.SelectionChanged(ctx)
			scheduler.Advance(popup.DebounceDelay)

			if controller.State() == popup.StateLoading {
				select {
				case <-messenger.done:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			for _, action := range clicks {
				controller.Click(ctx, action)
			}
			scheduler.Advance(popup.FadeDuration)

			_, err = fmt.Fprint(cmd.OutOrStdout(), document.HTML())
			return err
		},
	}
	flags := command.Flags()
	flags.Float64Var(&viewportWidth, "viewport-width", 1280, "Viewport width in pixels")
	flags.Float64Var(&viewportHeight, "viewport-height", 800, "Viewport height in pixels")
	flags.Float64Var(&selectionLeft, "left", 100, "Left of the selection in pixels")
	flags.Float64Var(&selectionTop, "top", 300, "Top of the selection in pixels")
	flags.StringSliceVar(&clicks, "click", nil, fmt.Sprintf("Popup actions to click after the translation, in order. Possible values are %v",
		[]string{popup.ActionSave, popup.ActionViewSaved, popup.ActionBack, popup.ActionClearSaved, popup.ActionClose}))
	return command
}
