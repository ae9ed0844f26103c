package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/iandelaney/youtran/internal/adapters/cli/tui"
)

// NewDepsCmd creates the deps subcommand
func NewDepsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Manage dependencies (yt-dlp)",
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show dependency status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printDepsStatus()
		},
	}

	updateCmd := &cobra.Command{
		Use:   "update",
		Short: "Update yt-dlp to latest version",
		RunE:  runDepsUpdate,
	}

	installCmd := &cobra.Command{
		Use:   "install",
		Short: "Install yt-dlp",
		RunE:  runDepsInstall,
	}

	cmd.AddCommand(statusCmd, updateCmd, installCmd)
	return cmd
}

func printDepsStatus() error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Dependency Status:")
	fmt.Println()

	fmt.Printf("  provider:  %s\n", app.ProviderName)

	// yt-dlp
	if app.Downloader.IsAvailable() {
		fmt.Printf("  yt-dlp:    installed (%s)\n", app.Downloader.GetBinaryPath())
	} else if app.NeedsDownloader() {
		fmt.Println("  yt-dlp:    not found (run 'youtran deps install')")
	} else {
		fmt.Println("  yt-dlp:    not found (only needed for provider ytdlp)")
	}

	if app.Clipboard.Available() {
		fmt.Println("  clipboard: available")
	} else {
		fmt.Println("  clipboard: unavailable (install xclip, xsel or wl-clipboard)")
	}
	fmt.Println()

	return nil
}

func runDepsUpdate(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	if !app.Downloader.IsAvailable() {
		return fmt.Errorf("yt-dlp is not installed. Run 'youtran deps install' first")
	}

	fmt.Println("Updating yt-dlp...")

	if err := app.Downloader.Update(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("yt-dlp updated")
	return nil
}

func runDepsInstall(cmd *cobra.Command, args []string) error {
	app, err := GetApp()
	if err != nil {
		return err
	}

	if app.Downloader.IsAvailable() {
		fmt.Println("yt-dlp is already installed")
		return nil
	}

	progress := tui.NewProgressDisplay(cmd.ErrOrStderr(), []string{"Installing yt-dlp"}, quietFlag)
	progress.StartStep(0)

	err = app.Downloader.Install(cmd.Context(), func(downloaded, total int64) {
		progress.UpdateProgress(0, downloaded, total)
	})
	if err != nil {
		progress.FailStep(0, err.Error())
		return err
	}
	progress.CompleteStep(0)
	progress.Complete(map[string]string{"yt-dlp": app.Downloader.GetBinaryPath()})
	return nil
}
