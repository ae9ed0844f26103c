package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/iandelaney/youtran/internal/adapters/cli/tui"
	"github.com/iandelaney/youtran/internal/adapters/export"
	"github.com/iandelaney/youtran/internal/application"
	"github.com/iandelaney/youtran/internal/config"
	"github.com/iandelaney/youtran/internal/ports"
)

var (
	// Global flags
	formatFlag   string
	langFlag     string
	outputFlag   string
	copyFlag     bool
	serverFlag   string
	providerFlag string
	quietFlag    bool
	verboseFlag  bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "youtran [url|id]",
		Short: "Fetch YouTube transcripts as text, timestamps or SRT",
		Long: `youtran fetches the caption track of a YouTube video and prints it as
plain text, timestamped lines, SRT subtitles or JSON.

Provide a video URL or ID to fetch it, or run without arguments
for an interactive menu.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runRoot,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&langFlag, "lang", "l", "", "Caption language code (default from config, en)")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Fetch through a running youtran server (e.g. http://localhost:5174)")
	rootCmd.PersistentFlags().StringVar(&providerFlag, "provider", "", "Caption provider: youtube, ytdlp (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVar(&formatFlag, "format", "", "Output format: text, srt, timestamps, json")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Output file path")
	rootCmd.Flags().BoolVar(&copyFlag, "copy", false, "Copy the output to the clipboard")

	// Add subcommands
	rootCmd.AddCommand(NewServeCmd())
	rootCmd.AddCommand(NewViewCmd())
	rootCmd.AddCommand(NewBatchCmd())
	rootCmd.AddCommand(NewDepsCmd())
	rootCmd.AddCommand(NewConfigCmd())

	return rootCmd
}

func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		// No arguments - show interactive menu
		return runInteractiveMenu(cmd.Context())
	}

	return runFetch(cmd, args[0])
}

func runInteractiveMenu(ctx context.Context) error {
	options := []tui.MenuOption{
		{Label: "Open the transcript viewer", Value: "view"},
		{Label: "Start the web server", Value: "serve"},
		{Label: "Check dependencies", Value: "deps"},
		{Label: "Show configuration", Value: "config"},
	}

	selected, err := tui.RunMenu("What would you like to do?", options)
	if err != nil {
		return err
	}

	switch selected {
	case "view":
		return runViewer(ctx, "")
	case "serve":
		return runServe(ctx, 0)
	case "deps":
		return printDepsStatus()
	case "config":
		return printConfig(os.Stdout)
	case "":
		fmt.Println("Cancelled")
	}

	return nil
}

func runFetch(cmd *cobra.Command, input string) error {
	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	format := formatFlag
	if format == "" {
		format = app.Config.Defaults.Format
	}
	if err := config.ValidateFormat(format); err != nil {
		return err
	}

	fetcher, err := app.Fetcher(serverFlag)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	installYtDlp := serverFlag == "" && app.NeedsDownloader() && !app.Downloader.IsAvailable()

	steps := []string{"Fetching transcript"}
	if installYtDlp {
		steps = append([]string{"Installing yt-dlp"}, steps...)
	}
	progress := tui.NewProgressDisplay(cmd.ErrOrStderr(), steps, quietFlag)
	fetchStep := len(steps) - 1

	if installYtDlp {
		progress.StartStep(0)
		if err := app.Downloader.Install(ctx, func(d, t int64) {
			progress.UpdateProgress(0, d, t)
		}); err != nil {
			progress.FailStep(0, err.Error())
			return fmt.Errorf("failed to install yt-dlp: %w", err)
		}
		progress.CompleteStep(0)
	}

	progress.StartStep(fetchStep)
	spinnerDone := progress.StartSpinner()
	resp, err := fetcher.FetchTranscript(ctx, input, requestLang(app))
	close(spinnerDone)
	if err != nil {
		progress.FailStep(fetchStep, application.ErrorMessage(err))
		return describeError(err)
	}
	progress.CompleteStep(fetchStep)

	return writeOutput(cmd, app, resp, format)
}

func writeOutput(cmd *cobra.Command, app *App, resp *ports.TranscriptResponse, format string) error {
	output, err := renderFormat(resp, format)
	if err != nil {
		return err
	}

	outputs := make(map[string]string)

	if outputFlag != "" {
		if err := export.WriteFile(outputFlag, []byte(output)); err != nil {
			return err
		}
		outputs["Transcript"] = outputFlag
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), output)
	}

	if copyFlag {
		if err := app.Clipboard.WriteAll(output); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		outputs["Clipboard"] = fmt.Sprintf("%d characters", len(output))
	}

	if !quietFlag && outputFlag != "" {
		tui.NewProgressDisplay(cmd.ErrOrStderr(), nil, quietFlag).Complete(outputs)
	}
	return nil
}

// requestLang returns the --lang flag or the configured default
func requestLang(app *App) string {
	if langFlag != "" {
		return langFlag
	}
	return app.Config.Defaults.Lang
}

// describeError adds provider details to the user-facing message
func describeError(err error) error {
	var provErr *application.ProviderError
	if errors.As(err, &provErr) && provErr.Details() != "" {
		return fmt.Errorf("%s\n  %s", provErr.Error(), provErr.Details())
	}
	var refErr *application.ReferenceError
	if errors.As(err, &refErr) {
		return fmt.Errorf("%s (%q)", refErr.Error(), refErr.Reference)
	}
	return err
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}
