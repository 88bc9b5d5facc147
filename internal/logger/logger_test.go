package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) got = %v, want %v", in, got, want)
		}
	}
}

func TestMultiHandler_FansOutByLevel(t *testing.T) {
	var debugBuf, warnBuf bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&warnBuf, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	l := slog.New(h).With("component", "form")

	if !h.Enabled(context.Background(), slog.LevelDebug) {
		t.Fatal("Enabled(debug) got = false, want true")
	}

	l.Debug("field updated")
	l.Warn("registration rejected")

	if !strings.Contains(debugBuf.String(), "field updated") || !strings.Contains(debugBuf.String(), "registration rejected") {
		t.Errorf("debug handler missing records: %q", debugBuf.String())
	}
	if strings.Contains(warnBuf.String(), "field updated") {
		t.Errorf("warn handler received a debug record: %q", warnBuf.String())
	}
	if !strings.Contains(warnBuf.String(), "component=form") {
		t.Errorf("warn handler lost attrs: %q", warnBuf.String())
	}
}

func TestInit(t *testing.T) {
	prev := slog.Default()
	defer slog.SetDefault(prev)

	var buf bytes.Buffer
	l := Init(Options{Level: "warn", Output: &buf})
	l.Info("hidden")
	slog.Error("visible")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info record logged at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("default logger not installed: %q", buf.String())
	}
}
