package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iandelaney/youtran/internal/adapters/httpapi"
)

var portFlag int

// NewServeCmd creates the serve command
func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transcript API and web client",
		Long: `Serve GET /api/transcript?url=<ref>&lang=<code> and the web client.

The port comes from --port, then the PORT environment variable, then
server.port in the config file (default 5174).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), portFlag)
		},
	}

	cmd.Flags().IntVarP(&portFlag, "port", "p", 0, "Port to listen on")
	return cmd
}

func runServe(ctx context.Context, port int) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	if port == 0 {
		port, err = app.Config.ListenPort()
		if err != nil {
			return err
		}
	}
	if port < 0 || port > 65535 {
		return fmt.Errorf("invalid port: %d", port)
	}

	if app.NeedsDownloader() && !app.Downloader.IsAvailable() {
		app.Logger.Warnw("yt-dlp not found; requests will fail until it is installed", "hint", "youtran deps install")
	}

	srv := httpapi.NewServer(app.TranscriptSvc, app.Logger)
	return srv.ListenAndServe(ctx, port)
}
