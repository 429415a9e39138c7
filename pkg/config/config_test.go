package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/ktile/pkg/cache"
	"github.com/matzehuels/ktile/pkg/errors"
)

func TestDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")
	cfg := Default()
	want := Config{
		Solver: "gini",
		Cache:  cache.Options{Backend: "file", Dir: "/tmp/xdg-cache/ktile"},
		Server: Server{Addr: ":8080"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Default mismatch (-want +got):\n%s", diff)
	}
}

func TestParse(t *testing.T) {
	text := `
workers = 4
solver = "gophersat"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
redis_db = 2
ttl = "48h"

[server]
addr = "127.0.0.1:9000"
`
	base := Config{Solver: "gini", Cache: cache.Options{Backend: "file", Dir: "/c"}, Server: Server{Addr: ":8080"}}
	cfg, err := Parse(text, base)
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		Workers: 4,
		Solver:  "gophersat",
		Cache: cache.Options{
			Backend:   "redis",
			Dir:       "/c",
			RedisAddr: "localhost:6379",
			RedisDB:   2,
			TTL:       48 * time.Hour,
		},
		Server: Server{Addr: "127.0.0.1:9000"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"syntax", "workers = "},
		{"unknown key", "wokers = 3"},
		{"unknown nested key", "[cache]\nbackedn = \"file\""},
		{"negative workers", "workers = -1"},
		{"bad solver", `solver = "minisat"`},
		{"bad backend", "[cache]\nbackend = \"memcached\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.text, Default())
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want invalid config", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))

	// Missing default file falls back to defaults.
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("Load without file mismatch (-want +got):\n%s", diff)
	}

	path := filepath.Join(dir, "ktile", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("workers = 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 3 || cfg.Solver != "gini" {
		t.Errorf("Load = %+v", cfg)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: err = %v", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/etc/xdg")
	got, err := Path()
	if err != nil {
		t.Fatal(err)
	}
	if got != "/etc/xdg/ktile/config.toml" {
		t.Errorf("Path = %s", got)
	}
}
