package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv names the environment variable that sets the log level.
const LevelEnv = "PAYCALC_LOG_LEVEL"

const defaultLogLevel = "warn"

// Options controls logger construction.
type Options struct {
	Debug bool   // force debug level regardless of LevelEnv
	JSON  bool   // structured JSON instead of console encoding
	Level string // explicit level; overrides LevelEnv when set
	// OutputPath is a file path or zap sink URL; empty means stderr.
	OutputPath string
}

// NewLogger builds a zap logger. It writes to stderr unless OutputPath is set,
// so command output on stdout stays clean for piping.
func NewLogger(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevel()
	raw := opts.Level
	if raw == "" {
		raw = os.Getenv(LevelEnv)
	}
	if err := level.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(raw)))); err != nil || raw == "" {
		_ = level.UnmarshalText([]byte(defaultLogLevel))
	}
	if opts.Debug {
		level.SetLevel(zapcore.DebugLevel)
	}

	encoderCfg := zapcore.EncoderConfig{
		MessageKey:    "message",
		TimeKey:       "timestamp",
		LevelKey:      "level",
		EncodeTime:    zapcore.ISO8601TimeEncoder,
		EncodeLevel:   zapcore.CapitalLevelEncoder,
		StacktraceKey: "stacktrace",
	}
	encoding := "console"
	if opts.JSON {
		encoding = "json"
		encoderCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	}

	sink := opts.OutputPath
	if sink == "" {
		sink = "stderr"
	}

	cfg := zap.Config{
		Level:             level,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{sink},
		ErrorOutputPaths:  []string{sink},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	return cfg.Build()
}

// Adapter exposes a zap logger through the printf-style Logger interface used
// by the calculation and breakeven packages.
type Adapter struct {
	logger *zap.SugaredLogger
}

// NewAdapter wraps logger; nil yields an adapter that discards everything.
func NewAdapter(logger *zap.Logger) Adapter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Adapter{logger: logger.Sugar()}
}

func (a Adapter) Debugf(format string, args ...any) { a.logger.Debugf(format, args...) }
func (a Adapter) Infof(format string, args ...any)  { a.logger.Infof(format, args...) }
func (a Adapter) Warnf(format string, args ...any)  { a.logger.Warnf(format, args...) }
func (a Adapter) Errorf(format string, args ...any) { a.logger.Errorf(format, args...) }
