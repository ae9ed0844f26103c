package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iandelaney/youtran/internal/adapters/cli/tui"
	"github.com/iandelaney/youtran/internal/application"
)

// NewViewCmd creates the view command
func NewViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [url|id]",
		Short: "Open the interactive transcript viewer",
		Long: `Open a terminal viewer with plain text, timestamp and SRT tabs.

Downloads are written to paths.downloads from the config file
(default: the current directory).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			return runViewer(cmd.Context(), ref)
		},
	}
}

func runViewer(ctx context.Context, ref string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	fetcher, err := app.ScreenFetcher(serverFlag)
	if err != nil {
		return err
	}

	state := application.NewViewState(fetcher)
	return tui.RunViewer(ctx, state, tui.ViewerOptions{
		Reference: ref,
		Lang:      requestLang(app),
		Clipboard: app.Clipboard,
		Sink:      app.Sink,
	})
}
