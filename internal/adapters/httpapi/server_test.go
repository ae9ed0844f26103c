package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/iandelaney/youtran/internal/application"
	"github.com/iandelaney/youtran/internal/domain"
)

type mockTranscripter struct {
	result  *application.TranscriptResult
	err     error
	gotRef  string
	gotLang string
}

func (m *mockTranscripter) GetTranscript(ctx context.Context, rawReference, lang string) (*application.TranscriptResult, error) {
	m.gotRef = rawReference
	m.gotLang = lang
	return m.result, m.err
}

func sampleResult() *application.TranscriptResult {
	cues := []domain.Cue{
		{StartMs: 0, DurationMs: 1500, Text: "hello"},
		{StartMs: 1500, DurationMs: 2000, Text: "world"},
	}
	out := domain.Render(cues)
	return &application.TranscriptResult{
		VideoID:   "dQw4w9WgXcQ",
		Lang:      "en",
		Cues:      cues,
		PlainText: out.PlainText,
		SRT:       out.SRT,
		Rows:      out.Rows,
	}
}

func TestServer_Transcript_OK(t *testing.T) {
	svc := &mockTranscripter{result: sampleResult()}
	srv := NewServer(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/transcript?url=https%3A%2F%2Fyoutu.be%2FdQw4w9WgXcQ", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", rec.Code, rec.Body.String())
	}
	if svc.gotRef != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("reference = %q", svc.gotRef)
	}
	if svc.gotLang != "en" {
		t.Errorf("lang = %q, want default en", svc.gotLang)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["videoId"] != "dQw4w9WgXcQ" || body["text"] != "hello world" {
		t.Errorf("body = %v", body)
	}
	items, ok := body["items"].([]any)
	if !ok || len(items) != 2 {
		t.Fatalf("items = %v", body["items"])
	}
	first := items[0].(map[string]any)
	if first["text"] != "hello" || first["offset"] != 0.0 || first["duration"] != 1500.0 {
		t.Errorf("first item = %v", first)
	}
	if !strings.HasPrefix(body["srt"].(string), "1\n00:00:00,000 --> 00:00:01,500\nhello\n") {
		t.Errorf("srt = %q", body["srt"])
	}
}

func TestServer_Transcript_EmptyItems(t *testing.T) {
	svc := &mockTranscripter{result: &application.TranscriptResult{VideoID: "dQw4w9WgXcQ", Lang: "en"}}
	rec := httptest.NewRecorder()
	NewServer(svc, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/transcript?url=dQw4w9WgXcQ", nil))

	if !strings.Contains(rec.Body.String(), `"items":[]`) {
		t.Errorf("empty items should encode as [], got %s", rec.Body.String())
	}
}

func TestServer_Transcript_Errors(t *testing.T) {
	tests := []struct {
		name        string
		target      string
		err         error
		wantStatus  int
		wantError   string
		wantDetails string
	}{
		{
			name:       "missing url",
			target:     "/api/transcript",
			wantStatus: http.StatusBadRequest,
			wantError:  "Missing ?url=",
		},
		{
			name:       "bad reference",
			target:     "/api/transcript?url=nonsense",
			err:        &application.ReferenceError{Reference: "nonsense", Err: domain.ErrInvalidReference},
			wantStatus: http.StatusBadRequest,
			wantError:  "Could not parse YouTube video ID.",
		},
		{
			name:        "provider failure",
			target:      "/api/transcript?url=dQw4w9WgXcQ&lang=fr",
			err:         &application.ProviderError{VideoID: "dQw4w9WgXcQ", Lang: "fr", Err: errors.New("captions disabled")},
			wantStatus:  http.StatusNotFound,
			wantError:   "Transcript not available for this video (or blocked/disabled).",
			wantDetails: "captions disabled",
		},
		{
			name:       "unexpected failure",
			target:     "/api/transcript?url=dQw4w9WgXcQ",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to fetch transcript.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := NewServer(&mockTranscripter{err: tt.err}, nil)
			rec := httptest.NewRecorder()
			srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body errorBody
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if body.Error != tt.wantError {
				t.Errorf("error = %q, want %q", body.Error, tt.wantError)
			}
			if tt.wantDetails != "" && body.Details != tt.wantDetails {
				t.Errorf("details = %q, want %q", body.Details, tt.wantDetails)
			}
		})
	}
}

func TestServer_Transcript_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	NewServer(&mockTranscripter{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/transcript?url=x", nil))

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestServer_IndexFallback(t *testing.T) {
	srv := NewServer(&mockTranscripter{}, nil)

	for _, path := range []string{"/", "/watch", "/some/deep/link"} {
		rec := httptest.NewRecorder()
		srv.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

		if rec.Code != http.StatusOK {
			t.Errorf("GET %s status = %d, want 200", path, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "<title>youtran</title>") {
			t.Errorf("GET %s did not serve the client page", path)
		}
	}
}
