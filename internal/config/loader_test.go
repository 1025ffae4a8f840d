package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return p
}

func TestLoadYAML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.yaml", "concurrent: true\nlog_level: debug\naddr: :9999\ncors_origins:\n  - http://a.test\n  - http://b.test\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := Config{Concurrent: true, LogLevel: "debug", Addr: ":9999", CORSOrigins: []string{"http://a.test", "http://b.test"}}
	if !reflect.DeepEqual(cfg, want) {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadJSON(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.json", `{"concurrent":true,"log_level":"warn","addr":":7070","cors_origins":["*"]}`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Concurrent || cfg.LogLevel != "warn" || cfg.Addr != ":7070" || len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadTOML(t *testing.T) {
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.toml", "concurrent=false\nlog_level=\"error\"\naddr=\":8081\"\ncors_origins=[\"http://c.test\"]\n")
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Concurrent || cfg.LogLevel != "error" || cfg.Addr != ":8081" || len(cfg.CORSOrigins) != 1 {
		t.Fatalf("unexpected cfg: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	d := t.TempDir()
	p := writeTempFile(t, d, "cfg.txt", "not supported")
	if _, err := Load(p); err == nil {
		t.Fatalf("expected unsupported extension error")
	}
	if _, err := Load(filepath.Join(d, "missing.yaml")); err == nil {
		t.Fatalf("expected error for nonexistent file")
	}
}

func TestLoad_InvalidContent(t *testing.T) {
	d := t.TempDir()
	cases := map[string]string{
		"bad.yaml":   "addr: :8080\n: broken\n",
		"bad.json":   `{ "addr": ":8080", "log_level": }`,
		"bad.toml":   "addr=:8080\nlog_level\n",
		"level.yaml": "log_level: chatty\n",
	}
	for name, content := range cases {
		p := writeTempFile(t, d, name, content)
		if _, err := Load(p); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestWithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if cfg.Addr != DefaultAddr || cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
	cfg = Config{Addr: ":1", LogLevel: "trace"}.WithDefaults()
	if cfg.Addr != ":1" || cfg.LogLevel != "trace" {
		t.Fatalf("defaults must not override set fields: %+v", cfg)
	}
}

func TestLevel(t *testing.T) {
	lvl, err := Config{}.Level()
	if err != nil || lvl != zerolog.InfoLevel {
		t.Fatalf("empty level: got %v, %v", lvl, err)
	}
	lvl, err = Config{LogLevel: "DEBUG"}.Level()
	if err != nil || lvl != zerolog.DebugLevel {
		t.Fatalf("DEBUG: got %v, %v", lvl, err)
	}
	if _, err := (Config{LogLevel: "loud"}).Level(); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestLoad_ExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeTempFile(t, home, "evbus.toml", "addr = \":7070\"\n")

	cfg, err := Load("~/evbus.toml")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Fatalf("addr=%q", cfg.Addr)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cases := map[string]string{
		"":           "",
		"/tmp/a.yml": "/tmp/a.yml",
		"~":          home,
		"~/x/y.json": filepath.Join(home, "x", "y.json"),
		"~other/z":   "~other/z",
	}
	for in, want := range cases {
		got, err := expandHome(in)
		if err != nil || got != want {
			t.Fatalf("expandHome(%q)=%q err=%v want %q", in, got, err, want)
		}
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv(EnvConfigPath, "/etc/evbus.yaml")
	if got := DefaultPath(); got != "/etc/evbus.yaml" {
		t.Fatalf("DefaultPath=%q", got)
	}
}
