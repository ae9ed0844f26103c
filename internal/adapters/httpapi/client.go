package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/iandelaney/youtran/internal/application"
	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/ports"
)

const maxResponseBytes = 20_000_000

// Client fetches transcripts from a running server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL. A zero timeout
// means no limit beyond the request context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchTranscript requests the transcript of reference in lang
func (c *Client) FetchTranscript(ctx context.Context, reference, lang string) (*ports.TranscriptResponse, error) {
	q := url.Values{}
	q.Set("url", reference)
	q.Set("lang", lang)
	endpoint := c.baseURL + "/api/transcript?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &application.TransportError{Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &application.TransportError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, &application.TransportError{Err: fmt.Errorf("read response: %w", err)}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var body transcriptBody
		if err := json.Unmarshal(data, &body); err != nil {
			return nil, &application.TransportError{Err: fmt.Errorf("decode response: %w", err)}
		}
		return &ports.TranscriptResponse{
			VideoID: body.VideoID,
			Lang:    body.Lang,
			Cues:    body.Items,
			Output: domain.RenderedOutput{
				PlainText: body.Text,
				SRT:       body.SRT,
				Rows:      domain.ToTimestampRows(body.Items),
			},
		}, nil

	case http.StatusBadRequest:
		msg := decodeError(data).Error
		return nil, &application.ReferenceError{
			Reference: reference,
			Err:       fmt.Errorf("%w: %s", domain.ErrInvalidReference, msg),
		}

	case http.StatusNotFound:
		body := decodeError(data)
		details := body.Details
		if details == "" {
			details = body.Error
		}
		return nil, &application.ProviderError{Lang: lang, Err: errors.New(details)}

	default:
		return nil, &application.TransportError{Err: fmt.Errorf("unexpected HTTP status %s", resp.Status)}
	}
}

func decodeError(data []byte) errorBody {
	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil || body.Error == "" {
		body.Error = strings.TrimSpace(string(data))
	}
	return body
}

var _ ports.TranscriptFetcher = (*Client)(nil)
