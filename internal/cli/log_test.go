package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/musicbox/pkg/observability"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	p.done("laid out song.mid")

	if !strings.Contains(buf.String(), "laid out song.mid (") {
		t.Errorf("progress output = %q, want message with duration", buf.String())
	}
}

func TestEnableDebugHooks(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := &CLI{Logger: newLogger(&buf, log.DebugLevel)}
	c.EnableDebugHooks()

	ctx := context.Background()
	observability.Pipeline().OnLayoutComplete(ctx, 3, 1, time.Millisecond, nil)
	observability.Pipeline().OnRenderComplete(ctx, "svg", 0, 0, errors.New("boom"))
	observability.Cache().OnCacheHit(ctx, "layout")

	out := buf.String()
	for _, want := range []string{"layout done", "strips=3", "render failed", "boom", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug log missing %q in %q", want, out)
		}
	}
}

func TestDebugHooksSilentAtInfo(t *testing.T) {
	defer observability.Reset()

	var buf bytes.Buffer
	c := &CLI{Logger: newLogger(&buf, log.InfoLevel)}
	c.EnableDebugHooks()
	observability.Cache().OnCacheMiss(context.Background(), "layout")

	if buf.Len() != 0 {
		t.Errorf("info-level logger wrote %q", buf.String())
	}
}
