package cli

import "github.com/iandelaney/youtran/internal/adapters/cli/tui"

// BatchSummary aggregates results from a batch run
type BatchSummary struct {
	Total   int
	Results []tui.BatchResult
}

// Failed returns only the failed results
func (s *BatchSummary) Failed() []tui.BatchResult {
	var failed []tui.BatchResult
	for _, r := range s.Results {
		if !r.Success() {
			failed = append(failed, r)
		}
	}
	return failed
}
