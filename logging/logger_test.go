package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: slog.LevelInfo, Format: "json", Output: &buf})
	logger.Info("hello", "key", "value")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded["msg"] != "hello" {
		t.Errorf("msg = %v, want %q", decoded["msg"], "hello")
	}
	if decoded["key"] != "value" {
		t.Errorf("key = %v, want %q", decoded["key"], "value")
	}
}

func TestNewLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: slog.LevelInfo, Output: &buf})
	logger.Info("hello")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("output = %q, want it to contain %q", buf.String(), "hello")
	}
}

func TestNewLogger_DefaultsOutputToStderrNotNil(t *testing.T) {
	logger := NewLogger(Config{})
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
}

func TestSetDefault_AndDefault(t *testing.T) {
	var buf bytes.Buffer
	custom := NewLogger(Config{Output: &buf})
	SetDefault(custom)
	defer SetDefault(NewLogger(Config{}))

	if Default() != custom {
		t.Error("Default() should return the logger set via SetDefault()")
	}

	Info("via package func")
	if !strings.Contains(buf.String(), "via package func") {
		t.Errorf("Info() did not route through the custom default logger: %q", buf.String())
	}
}

func TestWithHook_And_WithTarget(t *testing.T) {
	var buf bytes.Buffer
	base := NewLogger(Config{Output: &buf, Format: "json"})

	tagged := WithHook(base, "connect")
	tagged = WithTarget(tagged, 0x401000)
	tagged.Info("attach")

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["hook"] != "connect" {
		t.Errorf("hook = %v, want %q", decoded["hook"], "connect")
	}
	if decoded["target"] == nil {
		t.Error("expected a target attribute")
	}
}
