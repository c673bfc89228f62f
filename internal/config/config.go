// If you are AI: This file defines the configuration structure for flvdemux.
// It uses strict YAML decoding (or TOML by file extension) and explicit defaults.

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the complete configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Server ServerConfig `yaml:"server" toml:"server"`
	Demux  DemuxConfig  `yaml:"demux" toml:"demux"`
	Probe  ProbeConfig  `yaml:"probe" toml:"probe"`
	Log    LogConfig    `yaml:"log" toml:"log"`
}

// ServerConfig defines HTTP server settings.
type ServerConfig struct {
	HTTPPort        int    `yaml:"http_port" toml:"http_port"`               // Port for demux, API and health endpoints
	MetricsPath     string `yaml:"metrics_path" toml:"metrics_path"`         // Prometheus scrape path
	ShutdownSeconds int    `yaml:"shutdown_seconds" toml:"shutdown_seconds"` // Graceful shutdown timeout
}

// DemuxConfig defines how byte streams are fed to the demuxer.
type DemuxConfig struct {
	ChunkSize   int `yaml:"chunk_size" toml:"chunk_size"`     // Bytes read per Feed call
	MaxSessions int `yaml:"max_sessions" toml:"max_sessions"` // Concurrent network sessions, 0 = unlimited
}

// ProbeConfig defines batch file probing.
type ProbeConfig struct {
	Workers  int  `yaml:"workers" toml:"workers"`   // Files demuxed in parallel
	Metadata bool `yaml:"metadata" toml:"metadata"` // Decode onMetaData payloads
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level       string `yaml:"level" toml:"level"`
	Development bool   `yaml:"development" toml:"development"`
	File        string `yaml:"file,omitempty" toml:"file"`
	MaxSize     int    `yaml:"max_size" toml:"max_size"`       // MB
	MaxBackups  int    `yaml:"max_backups" toml:"max_backups"` // files
	MaxAge      int    `yaml:"max_age" toml:"max_age"`         // days
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Load reads configuration from a YAML or TOML file.
// An empty path yields the defaults.
// Returns an error if the file cannot be read or decoded, or has unknown fields.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read config file")
	}

	var cfg Config
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, errors.Wrap(err, "decode config")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("decode config: unknown field %q", undecoded[0].String())
		}
	} else {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true) // Reject unknown fields

		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Wrap(err, "decode config")
		}
	}

	// Apply defaults
	cfg.setDefaults()

	return &cfg, nil
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = "/metrics"
	}
	if c.Server.ShutdownSeconds == 0 {
		c.Server.ShutdownSeconds = 5
	}
	if c.Demux.ChunkSize == 0 {
		c.Demux.ChunkSize = 32 * 1024
	}
	if c.Probe.Workers == 0 {
		c.Probe.Workers = 4
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.MaxSize == 0 {
		c.Log.MaxSize = 100
	}
	if c.Log.MaxBackups == 0 {
		c.Log.MaxBackups = 5
	}
	if c.Log.MaxAge == 0 {
		c.Log.MaxAge = 7
	}
}
