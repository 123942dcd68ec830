// Package config loads the nvpd configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level nvpd configuration.
type Config struct {
	Controller ControllerConfig `yaml:"controller"`
	Network    NetworkConfig    `yaml:"network"`
	Server     ServerConfig     `yaml:"server"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"logLevel"`
}

// Duration decodes yaml durations like "30s" or "1m".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// ControllerConfig is the NVP controller connection.
type ControllerConfig struct {
	URL      string `yaml:"url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	InsecureSkipVerify bool     `yaml:"insecureSkipVerify"`
	Timeout            Duration `yaml:"timeout"`
}

// NetworkConfig tunes the driver's switch fan-out.
type NetworkConfig struct {
	// MaxPortsPerSwitch bounds ports per logical switch before the
	// network spans onto a new one. 0 disables the bound.
	MaxPortsPerSwitch int `yaml:"maxPortsPerSwitch"`

	// TenantID, when set, is tagged onto every created controller object.
	TenantID string `yaml:"tenantID"`
}

// ServerConfig is the admin API listener.
type ServerConfig struct {
	ListenAddr string `yaml:"listenAddr"`
}

// Load reads, parses and validates a config file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Controller.Timeout == 0 {
		c.Controller.Timeout = Duration(30 * time.Second)
	}
	if c.Server.ListenAddr == "" {
		c.Server.ListenAddr = ":8480"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	if c.Controller.URL == "" {
		return fmt.Errorf("controller.url is required")
	}
	if c.Network.MaxPortsPerSwitch < 0 {
		return fmt.Errorf("network.maxPortsPerSwitch must be >= 0, got %d", c.Network.MaxPortsPerSwitch)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logLevel %q", c.LogLevel)
	}
	return nil
}
