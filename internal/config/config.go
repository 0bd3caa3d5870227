// Package config loads the YAML application configuration.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"time"
)

//go:embed defaults/b2048.yaml
var defaultYAML []byte

// Config is the application configuration.
type Config struct {
	TickRate int            `yaml:"tick_rate"`
	DBPath   string         `yaml:"db_path"`
	Log      LogConfig      `yaml:"log"`
	SSH      SSHConfig      `yaml:"ssh"`
	Spectate SpectateConfig `yaml:"spectate"`

	// Source is the file the config was read from, or "embedded".
	Source string `yaml:"-"`
}

// LogConfig controls the application logger.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// SSHConfig controls the SSH server started by `serve`.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// SpectateConfig controls the WebSocket spectator feed.
type SpectateConfig struct {
	Address string `yaml:"address"`
}

// Default returns the built-in configuration. It matches the embedded YAML.
func Default() Config {
	return Config{
		TickRate: 30,
		DBPath:   "~/.b2048/scores.db",
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Address:     ":2048",
			HostKey:     "~/.b2048/ssh_host_ed25519",
			IdleTimeout: 10 * time.Minute,
		},
		Source: "embedded",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.TickRate <= 0 || c.TickRate > 240:
		return fmt.Errorf("config: tick_rate %d out of range 1..240", c.TickRate)
	case c.DBPath == "":
		return errors.New("config: db_path is empty")
	case c.SSH.IdleTimeout < 0:
		return fmt.Errorf("config: negative ssh.idle_timeout %s", c.SSH.IdleTimeout)
	}
	return nil
}
