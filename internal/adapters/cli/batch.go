package cli

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/iandelaney/youtran/internal/adapters/cli/tui"
	"github.com/iandelaney/youtran/internal/adapters/export"
	"github.com/iandelaney/youtran/internal/application"
	"github.com/iandelaney/youtran/internal/config"
	"github.com/iandelaney/youtran/internal/ports"
)

var (
	batchFileFlag    string
	batchDirFlag     string
	batchFormatFlag  string
	batchConcurrency int
)

// maxBatchConcurrency bounds parallel caption requests
const maxBatchConcurrency = 20

// NewBatchCmd creates the batch command
func NewBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [urls/ids...]",
		Short: "Fetch transcripts for many videos",
		Long: `Fetch transcripts for many videos concurrently.

Provide video URLs or IDs as arguments and/or via a file with --file.
Each transcript is written to the output directory as <video-id>.<ext>.

Example:
  youtran batch dQw4w9WgXcQ https://youtu.be/9bZkp7q19f0
  youtran batch --file videos.txt --format srt --dir subs/`,
		RunE: runBatch,
	}

	cmd.Flags().StringVarP(&batchFileFlag, "file", "f", "", "File with URLs/IDs (one per line)")
	cmd.Flags().StringVarP(&batchDirFlag, "dir", "d", "", "Output directory (default from config, current directory)")
	cmd.Flags().StringVar(&batchFormatFlag, "format", "", "Output format: text, srt, timestamps, json")
	cmd.Flags().IntVarP(&batchConcurrency, "concurrency", "c", 4, fmt.Sprintf("Max concurrent requests (max %d)", maxBatchConcurrency))

	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	batchConcurrency = min(max(batchConcurrency, 1), maxBatchConcurrency)

	refs, err := CollectInputs(args, batchFileFlag)
	if err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}
	if len(refs) == 0 {
		return fmt.Errorf("no video URLs or IDs provided")
	}

	app, err := GetApp()
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	format := batchFormatFlag
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

	sink := app.Sink
	if batchDirFlag != "" {
		sink = export.NewDirSink(batchDirFlag)
	}

	progress := tui.NewBatchProgress(cmd.ErrOrStderr(), len(refs), quietFlag)
	summary := processBatch(cmd.Context(), batchJob{
		fetcher:     fetcher,
		sink:        sink,
		lang:        requestLang(app),
		format:      format,
		concurrency: batchConcurrency,
		onResult:    progress.AddResult,
	}, refs)
	progress.Complete()

	if failed := len(summary.Failed()); failed > 0 {
		return fmt.Errorf("%d of %d transcripts failed", failed, summary.Total)
	}
	return nil
}

type batchJob struct {
	fetcher     ports.TranscriptFetcher
	sink        ports.FileSink
	lang        string
	format      string
	concurrency int
	onResult    func(tui.BatchResult)
}

func processBatch(ctx context.Context, job batchJob, refs []string) *BatchSummary {
	summary := &BatchSummary{Total: len(refs)}
	var mu sync.Mutex

	// Worker pool using semaphore pattern
	sem := make(chan struct{}, job.concurrency)
	var wg sync.WaitGroup

	for _, ref := range refs {
		wg.Add(1)
		sem <- struct{}{}

		go func(ref string) {
			defer wg.Done()
			defer func() { <-sem }()

			result := processOne(ctx, job, ref)

			mu.Lock()
			summary.Results = append(summary.Results, result)
			mu.Unlock()

			if job.onResult != nil {
				job.onResult(result)
			}
		}(ref)
	}

	wg.Wait()
	return summary
}

func processOne(ctx context.Context, job batchJob, ref string) tui.BatchResult {
	start := time.Now()
	result := tui.BatchResult{Reference: ref}

	resp, err := job.fetcher.FetchTranscript(ctx, ref, job.lang)
	if err != nil {
		result.ErrMsg = application.ErrorMessage(err)
		result.Duration = time.Since(start)
		return result
	}

	content, err := renderFormat(resp, job.format)
	if err == nil {
		result.Path, err = job.sink.Save(ctx, outputFileName(resp.VideoID, job.format), []byte(content))
	}
	if err != nil {
		result.ErrMsg = err.Error()
	}
	result.Duration = time.Since(start)
	return result
}
