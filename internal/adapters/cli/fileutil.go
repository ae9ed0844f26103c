package cli

import (
	"encoding/json"
	"fmt"

	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/ports"
)

// jsonDocument is the --format json output. It extends the API response
// with the timestamp rows.
type jsonDocument struct {
	VideoID string       `json:"videoId"`
	Lang    string       `json:"lang"`
	Items   []domain.Cue `json:"items"`
	Text    string       `json:"text"`
	SRT     string       `json:"srt"`
	Rows    []domain.Row `json:"rows"`
}

// renderFormat returns the transcript in the named output format
func renderFormat(resp *ports.TranscriptResponse, format string) (string, error) {
	switch format {
	case "text":
		return resp.Output.PlainText, nil
	case "srt":
		return resp.Output.SRT, nil
	case "timestamps":
		return resp.Output.TimestampDocument(), nil
	case "json":
		doc := jsonDocument{
			VideoID: resp.VideoID,
			Lang:    resp.Lang,
			Items:   resp.Cues,
			Text:    resp.Output.PlainText,
			SRT:     resp.Output.SRT,
			Rows:    resp.Output.Rows,
		}
		if doc.Items == nil {
			doc.Items = []domain.Cue{}
		}
		if doc.Rows == nil {
			doc.Rows = []domain.Row{}
		}
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}

// outputFileName returns the file a batch run writes for videoID
func outputFileName(videoID, format string) string {
	switch format {
	case "srt":
		return videoID + ".srt"
	case "json":
		return videoID + ".json"
	case "timestamps":
		return videoID + "-timestamps.txt"
	default:
		return videoID + ".txt"
	}
}
