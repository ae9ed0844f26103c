package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"bitbucket.org/creachadair/stringset"

	"github.com/iandelaney/youtran/internal/config"
	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/ports"
)

// maxTrackBytes bounds a downloaded caption track
const maxTrackBytes = 10_000_000

// Downloader implements CueFetcher using yt-dlp to locate caption tracks
type Downloader struct {
	binPath    string
	httpClient *http.Client
}

// NewDownloader creates a new yt-dlp downloader. An empty binPath means
// the bundled binary or the one on PATH.
func NewDownloader(binPath string) *Downloader {
	return &Downloader{
		binPath:    binPath,
		httpClient: http.DefaultClient,
	}
}

func binaryName() string {
	if runtime.GOOS == "windows" {
		return "yt-dlp.exe"
	}
	return "yt-dlp"
}

func (d *Downloader) findBinary() string {
	// Check bundled location first
	bundled := filepath.Join(config.BinDir(), binaryName())
	if _, err := os.Stat(bundled); err == nil {
		return bundled
	}

	// Check system PATH
	if path, err := exec.LookPath(binaryName()); err == nil {
		return path
	}

	return ""
}

func (d *Downloader) GetBinaryPath() string {
	if d.binPath != "" {
		return d.binPath
	}
	d.binPath = d.findBinary()
	return d.binPath
}

func (d *Downloader) IsAvailable() bool {
	return d.GetBinaryPath() != ""
}

// videoInfo is the part of yt-dlp's JSON dump that lists caption tracks.
// Keys are language codes such as "en", "en-GB" or "fr-orig".
type videoInfo struct {
	ID                string                  `json:"id"`
	Subtitles         map[string][]trackEntry `json:"subtitles"`
	AutomaticCaptions map[string][]trackEntry `json:"automatic_captions"`
}

type trackEntry struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// FetchCues locates the lang caption track of videoID and parses it
func (d *Downloader) FetchCues(ctx context.Context, videoID, lang string) ([]domain.Cue, error) {
	info, err := d.dumpInfo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	track, ok := pickTrack(info, lang)
	if !ok {
		langs := stringset.FromKeys(info.Subtitles).Union(stringset.FromKeys(info.AutomaticCaptions))
		if langs.Empty() {
			return nil, fmt.Errorf("%w: no captions for %s", domain.ErrCaptionsDisabled, videoID)
		}
		return nil, fmt.Errorf("%w: no %s captions for %s (available: %s)",
			domain.ErrTranscriptUnavailable, lang, videoID, strings.Join(langs.Elements(), ", "))
	}

	data, err := d.fetchTrack(ctx, track.URL)
	if err != nil {
		return nil, err
	}

	raw, err := parseJSON3(data)
	if err != nil {
		return nil, err
	}
	cues := raw.cues()
	if len(cues) == 0 {
		return nil, fmt.Errorf("%w: empty %s caption track for %s", domain.ErrTranscriptUnavailable, lang, videoID)
	}
	return cues, nil
}

func (d *Downloader) dumpInfo(ctx context.Context, videoID string) (*videoInfo, error) {
	binPath := d.GetBinaryPath()
	if binPath == "" {
		return nil, fmt.Errorf("%w: yt-dlp not found", domain.ErrProviderNotAvailable)
	}

	args := []string{
		"--no-warnings",
		"--skip-download",
		"--dump-json",
		domain.WatchURL(videoID),
	}

	cmd := exec.CommandContext(ctx, binPath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr := strings.TrimSpace(string(exitErr.Stderr))
			if strings.Contains(stderr, "Private video") || strings.Contains(stderr, "Video unavailable") {
				return nil, fmt.Errorf("%w: %s", domain.ErrVideoNotFound, stderr)
			}
			if strings.Contains(stderr, "rate") || strings.Contains(stderr, "429") {
				return nil, fmt.Errorf("%w: %s", domain.ErrRateLimited, stderr)
			}
			return nil, fmt.Errorf("yt-dlp failed: %s", stderr)
		}
		return nil, fmt.Errorf("yt-dlp failed: %w", err)
	}

	var info videoInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse yt-dlp output: %w", err)
	}
	return &info, nil
}

// pickTrack prefers uploaded subtitles over automatic captions, and an exact
// language match over a regional variant ("en" accepts "en-US").
func pickTrack(info *videoInfo, lang string) (trackEntry, bool) {
	for _, tracks := range []map[string][]trackEntry{info.Subtitles, info.AutomaticCaptions} {
		if t, ok := json3Track(tracks[lang]); ok {
			return t, true
		}
		for _, code := range stringset.FromKeys(tracks).Elements() {
			if strings.HasPrefix(code, lang+"-") {
				if t, ok := json3Track(tracks[code]); ok {
					return t, true
				}
			}
		}
	}
	return trackEntry{}, false
}

func json3Track(entries []trackEntry) (trackEntry, bool) {
	for _, e := range entries {
		if e.Ext == "json3" && e.URL != "" {
			return e, true
		}
	}
	return trackEntry{}, false
}

func (d *Downloader) fetchTrack(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download captions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: HTTP %d", domain.ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download captions: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxTrackBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read captions: %w", err)
	}
	if len(data) > maxTrackBytes {
		return nil, fmt.Errorf("caption track larger than %d bytes", maxTrackBytes)
	}
	return data, nil
}

func (d *Downloader) Install(ctx context.Context, progress func(downloaded, total int64)) error {
	binDir := config.BinDir()
	if err := os.MkdirAll(binDir, 0755); err != nil {
		return err
	}

	downloadURL := d.getDownloadURL()
	destPath := filepath.Join(binDir, binaryName())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download yt-dlp: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("failed to download yt-dlp: HTTP %d", resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}

	// Track success to clean up partial downloads on failure
	success := false
	defer func() {
		out.Close()
		if !success {
			os.Remove(destPath)
		}
	}()

	total := resp.ContentLength
	var downloaded int64

	buf := make([]byte, 32*1024)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			downloaded += int64(n)
			if progress != nil {
				progress(downloaded, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
	}

	// Make executable on Unix
	if runtime.GOOS != "windows" {
		if err := os.Chmod(destPath, 0755); err != nil {
			return err
		}
	}

	success = true
	d.binPath = destPath
	return nil
}

func (d *Downloader) getDownloadURL() string {
	base := "https://github.com/yt-dlp/yt-dlp/releases/latest/download/"

	switch runtime.GOOS {
	case "windows":
		return base + "yt-dlp.exe"
	case "darwin":
		return base + "yt-dlp_macos"
	default:
		return base + "yt-dlp"
	}
}

func (d *Downloader) Update(ctx context.Context) error {
	binPath := d.GetBinaryPath()
	if binPath == "" {
		return fmt.Errorf("yt-dlp not installed")
	}

	cmd := exec.CommandContext(ctx, binPath, "-U")
	return cmd.Run()
}

// Ensure Downloader implements interfaces
var _ ports.CueFetcher = (*Downloader)(nil)
var _ ports.Dependency = (*Downloader)(nil)
