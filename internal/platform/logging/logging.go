// Package logging builds the process logger.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ward/ward/internal/config"
)

const (
	logFileBackups = 3
	logFileMaxAge  = 28 // days
)

// New returns a timestamped logger. Development writes human readable lines
// to stdout, production writes JSON. When cfg.LogFile is set, JSON is also
// written to a size-rotated file.
func New(cfg *config.Config) zerolog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg *config.Config, stdout io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var console io.Writer = stdout
	if cfg.IsDev() {
		console = zerolog.ConsoleWriter{Out: stdout}
	}

	out := console
	if cfg.LogFile != "" {
		out = zerolog.MultiLevelWriter(console, &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogFileMaxMB,
			MaxBackups: logFileBackups,
			MaxAge:     logFileMaxAge,
			Compress:   true,
		})
	}

	return zerolog.New(out).Level(level).With().
		Timestamp().
		Str("service", "ward-server").
		Str("env", cfg.Env).
		Logger()
}
