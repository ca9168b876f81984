package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Port != 9099 {
		t.Errorf("Server.Port = %d, want 9099", cfg.Server.Port)
	}
	if cfg.Address() != "127.0.0.1:9099" {
		t.Errorf("Address() = %q, want 127.0.0.1:9099", cfg.Address())
	}
	if cfg.Parser.Arrow != "->" {
		t.Errorf("Parser.Arrow = %q, want ->", cfg.Parser.Arrow)
	}
	if cfg.Parser.IDSeparator != "_" {
		t.Errorf("Parser.IDSeparator = %q, want _", cfg.Parser.IDSeparator)
	}
	if !cfg.SkipTerminals() {
		t.Error("SkipTerminals() = false, want true")
	}
	if !cfg.Color() {
		t.Error("Color() = false, want true")
	}
	if cfg.Parser.Strict {
		t.Error("Parser.Strict = true, want false")
	}
	if len(cfg.ParserOptions()) != 2 {
		t.Errorf("len(ParserOptions()) = %d, want 2", len(cfg.ParserOptions()))
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := writeFile(t, "treeproc.toml", `
[server]
host = "0.0.0.0"
port = 8088
read_timeout = "5s"

[parser]
strict = true
arrow = "-->"
workers = 4

[report]
skip_terminals = false

[log]
verbosity = 2
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Address() != "0.0.0.0:8088" {
		t.Errorf("Address() = %q", cfg.Address())
	}
	if cfg.Server.ReadTimeout.Duration != 5*time.Second {
		t.Errorf("ReadTimeout = %v, want 5s", cfg.Server.ReadTimeout.Duration)
	}
	if cfg.Server.WriteTimeout.Duration != 30*time.Second {
		t.Errorf("WriteTimeout = %v, want default 30s", cfg.Server.WriteTimeout.Duration)
	}
	if !cfg.Parser.Strict || cfg.Parser.Arrow != "-->" || cfg.Parser.Workers != 4 {
		t.Errorf("Parser = %+v", cfg.Parser)
	}
	if cfg.SkipTerminals() {
		t.Error("SkipTerminals() = true, want false")
	}
	if cfg.Log.Verbosity != 2 {
		t.Errorf("Log.Verbosity = %d, want 2", cfg.Log.Verbosity)
	}
	if cfg.Path != path {
		t.Errorf("Path = %q, want %q", cfg.Path, path)
	}
	if len(cfg.ParserOptions()) != 3 {
		t.Errorf("len(ParserOptions()) = %d, want 3", len(cfg.ParserOptions()))
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "treeproc.yaml", `
server:
  port: 9100
  write_timeout: 1m
parser:
  id_separator: "#"
report:
  color: false
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("Server.Port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout.Duration != time.Minute {
		t.Errorf("WriteTimeout = %v, want 1m", cfg.Server.WriteTimeout.Duration)
	}
	if cfg.Parser.IDSeparator != "#" {
		t.Errorf("IDSeparator = %q, want #", cfg.Parser.IDSeparator)
	}
	if cfg.Color() {
		t.Error("Color() = true, want false")
	}
	if !cfg.SkipTerminals() {
		t.Error("SkipTerminals() = false, want default true")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad toml", "bad.toml", "[server\nport = 1"},
		{"bad yaml", "bad.yaml", "server: [unclosed"},
		{"bad duration", "dur.toml", "[server]\nread_timeout = \"soon\""},
		{"port out of range", "port.toml", "[server]\nport = 70000"},
		{"negative workers", "workers.toml", "[parser]\nworkers = -2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.file, tt.content)
			if _, err := Load(path); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing) error = nil, want error")
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(EnvVar, "")

	cfg, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve() without files error = %v", err)
	}
	if cfg.Path != "" || cfg.Server.Port != 9099 {
		t.Errorf("Resolve() = %+v, want defaults", cfg)
	}

	if err := os.WriteFile(DefaultFile, []byte("[server]\nport = 9200\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Server.Port != 9200 {
		t.Errorf("Server.Port = %d, want 9200 from %s", cfg.Server.Port, DefaultFile)
	}

	envPath := writeFile(t, "env.toml", "[server]\nport = 9300\n")
	t.Setenv(EnvVar, envPath)
	cfg, err = Resolve("")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if cfg.Server.Port != 9300 {
		t.Errorf("Server.Port = %d, want 9300 from %s", cfg.Server.Port, EnvVar)
	}

	if _, err := Resolve(filepath.Join(dir, "nope.toml")); err == nil {
		t.Error("Resolve(missing explicit path) error = nil, want error")
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{90 * time.Second}
	text, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "1m30s" {
		t.Errorf("MarshalText() = %q, want 1m30s", text)
	}
}
