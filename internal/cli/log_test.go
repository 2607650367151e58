package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		debug bool
	}{
		{"info hides debug", log.InfoLevel, false},
		{"verbose shows debug", log.DebugLevel, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)

			logger.Debug("mapped components", "screen", "Login")
			if got := strings.Contains(buf.String(), "mapped components"); got != tt.debug {
				t.Errorf("debug line written = %v, want %v", got, tt.debug)
			}

			logger.Info("loaded descriptor", "bytes", 512)
			if !strings.Contains(buf.String(), "bytes=512") {
				t.Errorf("info line missing key-value pair: %q", buf.String())
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	prog.done("Wrote 3 units to dir")

	out := buf.String()
	if !strings.Contains(out, "Wrote 3 units to dir (") || !strings.Contains(out, "s)") {
		t.Errorf("progress line = %q, want message with elapsed time", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Fatal("loggerFromContext should return the attached logger")
	}
	loggerFromContext(ctx).Info("converting")
	if !strings.Contains(buf.String(), "converting") {
		t.Error("attached logger should write to its writer")
	}
}
