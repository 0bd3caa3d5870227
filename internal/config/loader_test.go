package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "b2048.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchDefault(t *testing.T) {
	cfg := Default()
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML = %+v, Default() = %+v", cfg, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
tick_rate: 60
log:
  level: debug
ssh:
  idle_timeout: 90s
spectate:
  address: "127.0.0.1:8048"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.TickRate != 60 || cfg.Log.Level != "debug" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.SSH.IdleTimeout != 90*time.Second {
		t.Errorf("IdleTimeout = %s, expected 90s", cfg.SSH.IdleTimeout)
	}
	if cfg.Spectate.Address != "127.0.0.1:8048" {
		t.Errorf("Spectate.Address = %q", cfg.Spectate.Address)
	}
	// Fields absent from the file keep their defaults.
	if cfg.DBPath != Default().DBPath || cfg.SSH.Address != ":2048" {
		t.Errorf("defaults lost: db %q ssh %q", cfg.DBPath, cfg.SSH.Address)
	}
	if cfg.Source != path {
		t.Errorf("Source = %q, expected %q", cfg.Source, path)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr string
	}{
		{
			name:    "missing file",
			path:    filepath.Join(t.TempDir(), "nope.yaml"),
			wantErr: "failed to read config",
		},
		{
			name:    "invalid yaml",
			path:    writeConfig(t, "tick_rate: [oops"),
			wantErr: "failed to parse config",
		},
		{
			name:    "bad duration",
			path:    writeConfig(t, "ssh:\n  idle_timeout: soon\n"),
			wantErr: "failed to parse config",
		},
		{
			name:    "out of range tick rate",
			path:    writeConfig(t, "tick_rate: 0\n"),
			wantErr: "tick_rate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, expected it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Source != "embedded" {
		t.Errorf("Source = %q, expected embedded", cfg.Source)
	}
}

func TestLoadPrefersUserConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	dir := filepath.Join(home, ".b2048")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("tick_rate: 45\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.TickRate != 45 || cfg.Source != path {
		t.Errorf("Load() = tick %d from %q", cfg.TickRate, cfg.Source)
	}
}
