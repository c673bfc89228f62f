// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap/zapcore"
)

// maxChunkSize caps a single Feed; larger reads gain nothing over the u24 tag size limit.
const maxChunkSize = 16 * 1024 * 1024

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return errors.Wrap(err, "server config")
	}
	if err := c.Demux.Validate(); err != nil {
		return errors.Wrap(err, "demux config")
	}
	if c.Probe.Workers < 1 || c.Probe.Workers > 1024 {
		return errors.Errorf("probe config: workers must be between 1 and 1024, got %d", c.Probe.Workers)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return errors.Errorf("log config: unknown level %q", c.Log.Level)
	}
	return nil
}

// Validate checks server configuration values.
func (s *ServerConfig) Validate() error {
	if s.HTTPPort <= 0 || s.HTTPPort > 65535 {
		return errors.Errorf("http_port must be between 1 and 65535, got %d", s.HTTPPort)
	}
	if !strings.HasPrefix(s.MetricsPath, "/") {
		return errors.Errorf("metrics_path must start with /, got %q", s.MetricsPath)
	}
	if s.ShutdownSeconds < 0 {
		return errors.Errorf("shutdown_seconds must not be negative, got %d", s.ShutdownSeconds)
	}
	return nil
}

// Validate checks demux configuration values.
func (d *DemuxConfig) Validate() error {
	if d.ChunkSize <= 0 || d.ChunkSize > maxChunkSize {
		return errors.Errorf("chunk_size must be between 1 and %d, got %d", maxChunkSize, d.ChunkSize)
	}
	if d.MaxSessions < 0 {
		return errors.Errorf("max_sessions must not be negative, got %d", d.MaxSessions)
	}
	return nil
}
