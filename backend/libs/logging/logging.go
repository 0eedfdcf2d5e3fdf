package logging

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnv controls the minimum level of loggers built here.
const LevelEnv = "LOG_LEVEL"

// Options tunes the logger for the binary using it. Zero value gives JSON on stdout.
type Options struct {
	// Encoding is "json" or "console".
	Encoding string
	// Output is a zap sink path such as "stdout" or "stderr".
	Output string
}

// NewLogger returns a JSON zap logger writing to stdout.
func NewLogger() (*zap.Logger, error) {
	return New(Options{})
}

// New configures a zap logger, level from LOG_LEVEL (info when unset or invalid).
func New(opts Options) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.Set(strings.ToLower(strings.TrimSpace(os.Getenv(LevelEnv)))); err != nil {
		level = zapcore.InfoLevel
	}

	encoding := opts.Encoding
	if encoding != "console" {
		encoding = "json"
	}
	output := opts.Output
	if output == "" {
		output = "stdout"
	}

	enc := encoderConfig()
	if encoding == "console" {
		enc.EncodeLevel = zapcore.CapitalLevelEncoder
		enc.CallerKey = zapcore.OmitKey
	}

	cfg := zap.Config{
		Level: zap.NewAtomicLevelAt(level),
		Sampling: &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		},
		Encoding:         encoding,
		EncoderConfig:    enc,
		OutputPaths:      []string{output},
		ErrorOutputPaths: []string{"stderr"},
	}

	return cfg.Build()
}

func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stack",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     func(t time.Time, enc zapcore.PrimitiveArrayEncoder) { enc.AppendString(t.UTC().Format(time.RFC3339Nano)) },
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}
