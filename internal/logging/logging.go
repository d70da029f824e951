// Package logging builds the application logger.
//
// Two modes: human-readable console output on stderr (the default,
// used when running interactively), or JSON lines to a size-rotated
// file (used for long-running servers). The choice follows from
// whether a log file is configured.
package logging

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Rotation defaults, applied when the corresponding option is zero.
const (
	defaultMaxSizeMB  = 50
	defaultMaxBackups = 3
	defaultMaxAgeDays = 28
)

// Options configures the logger.
type Options struct {
	// Level is the minimum level to emit: debug, info, warn, or error.
	// Empty means info.
	Level string

	// File switches output to JSON lines in a rotated file. Empty
	// keeps console output on stderr.
	File string

	// Rotation settings, only used with File.
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New builds a logger from opts.
func New(opts Options) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if opts.Level != "" {
		parsed, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q", opts.Level)
		}
		level = parsed
	}

	if opts.File != "" {
		sink := zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, defaultMaxSizeMB),
			MaxBackups: orDefault(opts.MaxBackups, defaultMaxBackups),
			MaxAge:     orDefault(opts.MaxAgeDays, defaultMaxAgeDays),
			Compress:   true,
		})
		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			sink,
			level,
		)
		return zap.New(core), nil
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core), nil
}

func orDefault(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
