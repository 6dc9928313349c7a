package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"testing"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prevOut, prevFlags, prevLevel := log.Writer(), log.Flags(), CurrentLevel()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(prevOut)
		log.SetFlags(prevFlags)
		SetLevel(prevLevel)
	})
	return &buf
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		"":        LevelInfo,
		"warning": LevelWarn,
		" error ": LevelError,
	}
	for in, want := range cases {
		got, err := ParseLevel(in)
		if err != nil {
			t.Fatalf("ParseLevel(%q): unexpected error: %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelInfo)

	Debug("hidden", nil)
	if buf.Len() != 0 {
		t.Fatalf("expected debug to be dropped, got %q", buf.String())
	}

	Info("shown", Fields{"target": "example.com:80"})
	var rec map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
		t.Fatalf("output is not json: %v (%q)", err, buf.String())
	}
	if rec["level"] != "info" || rec["msg"] != "shown" || rec["target"] != "example.com:80" {
		t.Fatalf("unexpected record: %v", rec)
	}
}

func TestWarnCarriesError(t *testing.T) {
	buf := capture(t)
	SetLevel(LevelDebug)

	fields := Fields{"k": "v"}
	Warn("tray", errors.New("no dbus"), fields)
	if !strings.Contains(buf.String(), `"error":"no dbus"`) {
		t.Fatalf("missing error field: %q", buf.String())
	}
	if _, ok := fields["error"]; ok {
		t.Fatalf("caller's fields were mutated")
	}
}
