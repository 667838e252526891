package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
)

func TestLogger_WritesJSONWithService(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelInfo, "comex", func(context.Context) string { return "abc123" })

	log.Info(context.Background(), "rate refreshed", "pair", "USD-BRL")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, buf.String())
	}
	if rec["msg"] != "rate refreshed" {
		t.Errorf("expected msg 'rate refreshed', got %v", rec["msg"])
	}
	if rec["service"] != "comex" {
		t.Errorf("expected service comex, got %v", rec["service"])
	}
	if rec["pair"] != "USD-BRL" {
		t.Errorf("expected pair USD-BRL, got %v", rec["pair"])
	}
	if rec["trace_id"] != "abc123" {
		t.Errorf("expected trace_id abc123, got %v", rec["trace_id"])
	}
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelWarn, "", nil)

	log.Debug(context.Background(), "hidden")
	log.Info(context.Background(), "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output below warn, got %s", buf.String())
	}

	log.Warn(context.Background(), "shown")
	if buf.Len() == 0 {
		t.Fatal("expected warn record to be written")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"verbose", LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
