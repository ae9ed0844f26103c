package cli

import (
	"fmt"

	"github.com/iandelaney/youtran/internal/adapters/clipboard"
	"github.com/iandelaney/youtran/internal/adapters/export"
	"github.com/iandelaney/youtran/internal/adapters/httpapi"
	"github.com/iandelaney/youtran/internal/adapters/youtube"
	"github.com/iandelaney/youtran/internal/adapters/ytdlp"
	"github.com/iandelaney/youtran/internal/application"
	"github.com/iandelaney/youtran/internal/config"
	"github.com/iandelaney/youtran/internal/logging"
	"github.com/iandelaney/youtran/internal/ports"
)

// App holds all application dependencies
type App struct {
	Config       *config.Config
	Logger       *logging.Logger
	ProviderName string
	Downloader   *ytdlp.Downloader
	Provider     ports.CueFetcher
	Clipboard    *clipboard.System
	Sink         *export.DirSink

	TranscriptSvc  *application.TranscriptService
	transcriptOpts application.TranscriptOptions
}

// AppOptions are command-line overrides applied on top of the config file
type AppOptions struct {
	Verbose  bool
	Quiet    bool
	Provider string
}

// NewApp creates and wires up all dependencies
func NewApp(opts AppOptions) (*App, error) {
	// Ensure directories exist
	if err := config.EnsureDirs(); err != nil {
		return nil, err
	}

	// Load config
	cfg, err := config.LoadDefault()
	if err != nil {
		return nil, err
	}

	logger := logging.NewLogger(opts.Verbose, opts.Quiet)

	providerName := cfg.Defaults.Provider
	if opts.Provider != "" {
		providerName = opts.Provider
	}

	// Create adapters
	downloader := ytdlp.NewDownloader(cfg.Paths.YtDlp)
	provider, err := newProvider(providerName, downloader)
	if err != nil {
		return nil, err
	}

	// Create services
	transcriptOpts := application.TranscriptOptions{
		DefaultLang: cfg.Defaults.Lang,
		Lenient:     cfg.Resolver.Lenient,
	}
	transcriptSvc := application.NewTranscriptService(provider, transcriptOpts, logger)

	logger.Debugw("App initialized", "provider", providerName, "config", config.ConfigPath())

	return &App{
		Config:         cfg,
		Logger:         logger,
		ProviderName:   providerName,
		Downloader:     downloader,
		Provider:       provider,
		Clipboard:      clipboard.New(),
		Sink:           export.NewDirSink(cfg.DownloadDir()),
		TranscriptSvc:  transcriptSvc,
		transcriptOpts: transcriptOpts,
	}, nil
}

func newProvider(name string, downloader *ytdlp.Downloader) (ports.CueFetcher, error) {
	switch name {
	case "youtube":
		return youtube.NewProvider(), nil
	case "ytdlp":
		return downloader, nil
	default:
		return nil, fmt.Errorf("unknown provider: %s (use youtube or ytdlp)", name)
	}
}

// Fetcher returns where client sessions get transcripts from: a running
// server when serverURL is set, the in-process service otherwise.
func (a *App) Fetcher(serverURL string) (ports.TranscriptFetcher, error) {
	if serverURL == "" {
		return a.TranscriptSvc, nil
	}
	timeout, err := a.Config.GetHTTPTimeout()
	if err != nil {
		return nil, err
	}
	a.Logger.Debugw("Using remote transcript server", "url", serverURL, "timeout", timeout)
	return httpapi.NewClient(serverURL, timeout), nil
}

// ScreenFetcher is Fetcher for full-screen sessions, where log lines on
// stderr would corrupt the display.
func (a *App) ScreenFetcher(serverURL string) (ports.TranscriptFetcher, error) {
	if serverURL != "" {
		return a.Fetcher(serverURL)
	}
	return application.NewTranscriptService(a.Provider, a.transcriptOpts, logging.Nop()), nil
}

// NeedsDownloader reports whether the selected provider runs yt-dlp locally
func (a *App) NeedsDownloader() bool {
	return a.ProviderName == "ytdlp"
}

var globalApp *App

// GetApp returns the global app instance, creating it if needed
func GetApp() (*App, error) {
	if globalApp == nil {
		app, err := NewApp(AppOptions{Verbose: verboseFlag, Quiet: quietFlag, Provider: providerFlag})
		if err != nil {
			return nil, err
		}
		globalApp = app
	}
	return globalApp, nil
}
