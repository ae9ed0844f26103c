package httpapi

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/iandelaney/youtran/internal/application"
	"github.com/iandelaney/youtran/internal/domain"
	"github.com/iandelaney/youtran/internal/logging"
)

//go:embed static/index.html
var static embed.FS

const missingURLMessage = "Missing ?url="

// Transcripter produces a rendered transcript for a reference
type Transcripter interface {
	GetTranscript(ctx context.Context, rawReference, lang string) (*application.TranscriptResult, error)
}

// transcriptBody is the JSON document returned by GET /api/transcript
type transcriptBody struct {
	VideoID string       `json:"videoId"`
	Lang    string       `json:"lang"`
	Items   []domain.Cue `json:"items"`
	Text    string       `json:"text"`
	SRT     string       `json:"srt"`
}

type errorBody struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// Server exposes the transcript service over HTTP and serves the web client
type Server struct {
	svc    Transcripter
	logger *logging.Logger
	mux    *http.ServeMux
}

// NewServer creates a server backed by svc
func NewServer(svc Transcripter, logger *logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		svc:    svc,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("/api/transcript", s.handleTranscript)
	s.mux.HandleFunc("/", s.handleIndex)
	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	rec.Header().Set("Access-Control-Allow-Origin", "*")

	s.mux.ServeHTTP(rec, r)

	s.logger.Infow("Request",
		"method", r.Method,
		"path", r.URL.Path,
		"status", rec.status,
		"duration", time.Since(start),
	)
}

// ListenAndServe serves on port until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(port)),
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Infow("Listening", "url", fmt.Sprintf("http://localhost:%d", port))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	}
}

func (s *Server) handleTranscript(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{Error: "Method not allowed."})
		return
	}

	q := r.URL.Query()
	ref := q.Get("url")
	if ref == "" {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: missingURLMessage})
		return
	}
	lang := q.Get("lang")
	if lang == "" {
		lang = "en"
	}

	result, err := s.svc.GetTranscript(r.Context(), ref, lang)
	if err != nil {
		var refErr *application.ReferenceError
		var provErr *application.ProviderError
		switch {
		case errors.As(err, &refErr):
			writeJSON(w, http.StatusBadRequest, errorBody{Error: refErr.Error()})
		case errors.As(err, &provErr):
			writeJSON(w, http.StatusNotFound, errorBody{Error: provErr.Error(), Details: provErr.Details()})
		default:
			s.logger.Errorw("Transcript request failed", "reference", ref, "error", err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Failed to fetch transcript.", Details: err.Error()})
		}
		return
	}

	items := result.Cues
	if items == nil {
		items = []domain.Cue{}
	}
	writeJSON(w, http.StatusOK, transcriptBody{
		VideoID: result.VideoID,
		Lang:    result.Lang,
		Items:   items,
		Text:    result.PlainText,
		SRT:     result.SRT,
	})
}

// handleIndex serves the web client for every non-API path
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	data, err := static.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "client not available", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		w.Write(data)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
