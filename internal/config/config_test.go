package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParseTarget(t *testing.T) {
	def := Target{Host: DefaultHost, Port: DefaultPort}
	cases := []struct {
		args []string
		want Target
	}{
		{nil, Target{Host: "www.google.com", Port: 80}},
		{[]string{"example.com"}, Target{Host: "example.com", Port: 80}},
		{[]string{"example.com", "8080"}, Target{Host: "example.com", Port: 8080}},
		{[]string{"192.168.0.3"}, Target{Host: "192.168.0.3", Port: 80}},
		{[]string{"example.com", "8080", "ignored"}, Target{Host: "example.com", Port: 8080}},
	}
	for _, c := range cases {
		got, err := ParseTarget(c.args, def)
		if err != nil {
			t.Fatalf("ParseTarget(%v): unexpected error: %v", c.args, err)
		}
		if got != c.want {
			t.Fatalf("ParseTarget(%v) = %v, want %v", c.args, got, c.want)
		}
	}
}

func TestParseTarget_HostOnlyIgnoresConfiguredPort(t *testing.T) {
	got, err := ParseTarget([]string{"example.com"}, Target{Host: "intranet", Port: 8443})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Port != DefaultPort {
		t.Fatalf("expected port %d, got %d", DefaultPort, got.Port)
	}
}

func TestParseTarget_Invalid(t *testing.T) {
	def := Target{Host: DefaultHost, Port: DefaultPort}
	for _, args := range [][]string{
		{"example.com", "http"},
		{"example.com", "0"},
		{"example.com", "65536"},
		{"  "},
	} {
		if _, err := ParseTarget(args, def); err == nil {
			t.Fatalf("ParseTarget(%v): expected error", args)
		}
	}
}

func TestTargetAddr(t *testing.T) {
	if got := (Target{Host: "example.com", Port: 8080}).URL(); got != "http://example.com:8080" {
		t.Fatalf("unexpected url %q", got)
	}
	if got := (Target{Host: "::1", Port: 80}).Addr(); got != "[::1]:80" {
		t.Fatalf("unexpected addr %q", got)
	}
}

func TestLoadFrom_CreatesDefault(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "monic")
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.WasJustCreated() {
		t.Fatalf("expected config file to be created")
	}
	if _, err := os.Stat(cfg.Path()); err != nil {
		t.Fatalf("config file missing: %v", err)
	}
	if cfg.DefaultTarget() != (Target{Host: "www.google.com", Port: 80}) {
		t.Fatalf("unexpected default target %v", cfg.DefaultTarget())
	}
	if cfg.DialTimeout() != 10*time.Second {
		t.Fatalf("unexpected dial timeout %v", cfg.DialTimeout())
	}
	if cfg.Labels.Exit != "Exit" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	again, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error on reload: %v", err)
	}
	if again.WasJustCreated() {
		t.Fatalf("expected existing config to be reused")
	}
}

func TestLoadFrom_FillsAndClamps(t *testing.T) {
	dir := t.TempDir()
	body := []byte("host: \"intranet\"\nport: 0\ndial_timeout_ms: 120000\nlabels:\n  exit: \"Quitter\"\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), body, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Host != "intranet" || cfg.Port != DefaultPort {
		t.Fatalf("unexpected target %s:%d", cfg.Host, cfg.Port)
	}
	if cfg.DialTimeoutMs != maxDialTimeoutMs {
		t.Fatalf("expected timeout clamped to %d, got %d", maxDialTimeoutMs, cfg.DialTimeoutMs)
	}
	if cfg.Labels.Exit != "Quitter" || cfg.Labels.Title != "monic" {
		t.Fatalf("unexpected labels %+v", cfg.Labels)
	}
}

func TestLoadFrom_BadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("port: [1,"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}
