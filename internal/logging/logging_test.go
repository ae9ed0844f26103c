package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger := NewLogger(verbose, false)
		if logger == nil {
			t.Fatalf("NewLogger(%v) returned nil", verbose)
		}
		if got := logger.Desugar().Core().Enabled(-1); got != verbose {
			t.Errorf("NewLogger(%v) debug enabled = %v", verbose, got)
		}
	}
}

func TestNewLogger_Quiet(t *testing.T) {
	core := NewLogger(false, true).Desugar().Core()
	if core.Enabled(zapcore.InfoLevel) {
		t.Error("quiet logger should drop info lines")
	}
	if !core.Enabled(zapcore.WarnLevel) {
		t.Error("quiet logger should keep warnings")
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		name    string
		verbose bool
		quiet   bool
		want    zapcore.Level
	}{
		{name: "default", want: zapcore.InfoLevel},
		{name: "verbose", verbose: true, want: zapcore.DebugLevel},
		{name: "quiet", quiet: true, want: zapcore.WarnLevel},
		{name: "verbose wins", verbose: true, quiet: true, want: zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Level(tt.verbose, tt.quiet); got != tt.want {
				t.Errorf("Level(%v, %v) = %v, want %v", tt.verbose, tt.quiet, got, tt.want)
			}
		})
	}
}

func TestNop(t *testing.T) {
	logger := Nop()
	logger.Infow("discarded", "key", "value")
}
