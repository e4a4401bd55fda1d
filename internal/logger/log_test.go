package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stuartin/azenix-challenge/internal/config"
)

func TestNew_LevelAndService(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Pretty = false
	cfg.Logging.Level = "info"

	var buf bytes.Buffer
	l := New(cfg, &buf)
	l.Debug().Msg("hidden")
	l.Info().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected debug to be filtered, got %q", out)
	}
	if !strings.Contains(out, `"message":"shown"`) || !strings.Contains(out, `"service":"log-parse"`) {
		t.Errorf("Expected JSON event with service field, got %q", out)
	}
}

func TestNew_BadLevelFallsBackToWarn(t *testing.T) {
	cfg := config.Default()
	cfg.Logging.Pretty = false
	cfg.Logging.Level = "chatty"

	var buf bytes.Buffer
	l := New(cfg, &buf)
	l.Info().Msg("info")
	l.Warn().Msg("warn")

	out := buf.String()
	if strings.Contains(out, `"message":"info"`) || !strings.Contains(out, `"message":"warn"`) {
		t.Errorf("Expected warn level, got %q", out)
	}
}
