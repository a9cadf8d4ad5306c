package logger

import (
	"context"
	"log/slog"
	"testing"
)

func TestInitLevels(t *testing.T) {
	Init("debug", "json")
	if !L.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("expected debug level to be enabled")
	}

	Init("warn", "text")
	if L.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("expected info level to be disabled at warn")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"  ERROR ", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestContextLogger(t *testing.T) {
	Init("info", "text")

	custom := L.With(slog.String("request_id", "42"))
	ctx := WithContext(context.Background(), custom)

	if got := FromContext(ctx); got != custom {
		t.Fatal("expected logger stored in context to be returned")
	}
	if got := FromContext(context.Background()); got != L {
		t.Fatal("expected global logger for bare context")
	}
}
