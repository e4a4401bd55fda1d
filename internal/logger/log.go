package logger

import (
	"io"
	stdlog "log"
	"os"

	"github.com/rs/zerolog"

	"github.com/stuartin/azenix-challenge/internal/types"
)

// New builds the application logger from config. Output goes to w (stderr
// in the CLI) so that it never mixes with the report on stdout.
//
//   - pretty: zerolog.ConsoleWriter, human readable
//   - otherwise: one JSON object per event
//
// Every event carries a "service" field. Unknown level names fall back to warn.
func New(cfg *types.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.WarnLevel
	}

	out := w
	if cfg.Logging.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: "15:04:05",
		}
	}

	return zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("service", cfg.Logging.Service).
		Logger()
}

// Init creates the logger on stderr and routes the standard library log
// package through it as well.
func Init(cfg *types.Config) zerolog.Logger {
	l := New(cfg, os.Stderr)

	stdlog.SetFlags(0)
	stdlog.SetOutput(l)

	return l
}
