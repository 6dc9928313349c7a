package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost = "www.google.com"
	DefaultPort = 80

	defaultDialTimeoutMs = 10000
	maxDialTimeoutMs     = 30000
)

// Target is the host/port pair being monitored.
type Target struct {
	Host string
	Port int
}

func (t Target) Addr() string { return net.JoinHostPort(t.Host, strconv.Itoa(t.Port)) }
func (t Target) URL() string  { return "http://" + t.Addr() }
func (t Target) String() string {
	return t.Addr()
}

// ParseTarget reads the optional positional arguments: host, then port.
// Missing arguments fall back to def (host) and DefaultPort (port).
func ParseTarget(args []string, def Target) (Target, error) {
	t := def
	if len(args) == 0 {
		return t, nil
	}
	t.Host = strings.TrimSpace(args[0])
	if t.Host == "" {
		return Target{}, errors.New("host cannot be empty")
	}
	t.Port = DefaultPort
	if len(args) > 1 {
		p, err := strconv.Atoi(strings.TrimSpace(args[1]))
		if err != nil {
			return Target{}, fmt.Errorf("invalid port %q: %w", args[1], err)
		}
		if p < 1 || p > 65535 {
			return Target{}, fmt.Errorf("port out of range: %d", p)
		}
		t.Port = p
	}
	return t, nil
}

type Labels struct {
	Title string `yaml:"title"`
	Exit  string `yaml:"exit"`
}

type Config struct {
	Host          string `yaml:"host"`
	Port          int    `yaml:"port"`
	DialTimeoutMs int    `yaml:"dial_timeout_ms"`
	LogLevel      string `yaml:"log_level"`
	Labels        Labels `yaml:"labels"`

	fileDir  string `yaml:"-"`
	filePath string `yaml:"-"`
	created  bool   `yaml:"-"` // true if config file was created on this run
}

var defaultYAML = []byte(`# monic config
# Default target, used when no host/port arguments are given.
host: "www.google.com"
port: 80

dial_timeout_ms: 10000

# debug | info | warn | error
log_level: "info"

labels:
  title: "monic"
  exit: "Exit"
`)

func paths() (dir, file string) {
	base, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		base = filepath.Join(home, ".config")
	}
	dir = filepath.Join(base, "monic")
	file = filepath.Join(dir, "config.yaml")
	return
}

// ensure creates the config file if missing.
// It returns (created, error).
func ensure(dir, file string) (bool, error) {
	if _, err := os.Stat(file); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(file, defaultYAML, 0o644); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}
	return true, nil
}

// Load reads the config from the user config directory, creating it on first run.
func Load() (*Config, error) {
	dir, _ := paths()
	return LoadFrom(dir)
}

// LoadFrom is Load with an explicit config directory.
func LoadFrom(dir string) (*Config, error) {
	file := filepath.Join(dir, "config.yaml")
	created, err := ensure(dir, file)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", file, err)
	}
	if cfg.Host == "" {
		cfg.Host = DefaultHost
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		cfg.Port = DefaultPort
	}
	if cfg.DialTimeoutMs <= 0 {
		cfg.DialTimeoutMs = defaultDialTimeoutMs
	}
	if cfg.DialTimeoutMs > maxDialTimeoutMs {
		cfg.DialTimeoutMs = maxDialTimeoutMs
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Labels.Title == "" {
		cfg.Labels.Title = "monic"
	}
	if cfg.Labels.Exit == "" {
		cfg.Labels.Exit = "Exit"
	}
	cfg.fileDir, cfg.filePath = dir, file
	cfg.created = created
	return &cfg, nil
}

// Default returns the built-in configuration without touching the filesystem.
func Default() *Config {
	return &Config{
		Host:          DefaultHost,
		Port:          DefaultPort,
		DialTimeoutMs: defaultDialTimeoutMs,
		LogLevel:      "info",
		Labels:        Labels{Title: "monic", Exit: "Exit"},
	}
}

func (c *Config) Dir() string  { return c.fileDir }
func (c *Config) Path() string { return c.filePath }

// DefaultTarget is the target used when no positional arguments are given.
func (c *Config) DefaultTarget() Target { return Target{Host: c.Host, Port: c.Port} }

func (c *Config) DialTimeout() time.Duration {
	return time.Duration(c.DialTimeoutMs) * time.Millisecond
}

// WasJustCreated reports whether the config file was created on this run.
func (c *Config) WasJustCreated() bool { return c.created }
