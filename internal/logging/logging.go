package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger shared by commands and the server
type Logger = zap.SugaredLogger

// Level picks the minimum log level. Verbose wins over quiet.
func Level(verbose, quiet bool) zapcore.Level {
	switch {
	case verbose:
		return zap.DebugLevel
	case quiet:
		return zap.WarnLevel
	default:
		return zap.InfoLevel
	}
}

// NewLogger builds a console logger writing to stderr. Verbose enables debug
// output; quiet drops everything below warnings.
func NewLogger(verbose, quiet bool) *Logger {
	level := Level(verbose, quiet)

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.DisableStacktrace = !verbose
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return zap.NewNop().Sugar()
}
