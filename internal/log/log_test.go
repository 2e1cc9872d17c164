package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestLogger_Module(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, slog.LevelDebug)
	l.Module("mcp").With("tool", "poly_add").Info("called")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["module"] != "mcp" {
		t.Fatalf("module = %v, want %q", entry["module"], "mcp")
	}
	if entry["tool"] != "poly_add" {
		t.Fatalf("tool = %v, want %q", entry["tool"], "poly_add")
	}
	if entry["msg"] != "called" {
		t.Fatalf("msg = %v, want %q", entry["msg"], "called")
	}
}

func TestLogger_SlogSharesHandler(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, slog.LevelInfo).Module("http")
	slog.NewLogLogger(l.Slog().Handler(), slog.LevelError).Print("accept failed")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["module"] != "http" || entry["level"] != "ERROR" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if entry["msg"] != "accept failed" {
		t.Fatalf("msg = %v, want %q", entry["msg"], "accept failed")
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, slog.LevelWarn)
	l.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %s", buf.String())
	}
	l.Error("kept")
	if buf.Len() == 0 {
		t.Fatal("error should pass warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"verbose": slog.LevelInfo,
		"":        slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSetDefaultIgnoresNil(t *testing.T) {
	before := Default()
	SetDefault(nil)
	if Default() != before {
		t.Fatal("SetDefault(nil) replaced the default logger")
	}
}
