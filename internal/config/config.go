package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/portsweep/portsweep/internal/logging"
)

// Default scanning parameters. The worker bound keeps a full 65535-port sweep
// from exhausting file descriptors and ephemeral ports.
const (
	DefaultWorkerCount     = 50
	DefaultProbeTimeout    = 1 * time.Second
	DefaultLivenessPort    = 80
	DefaultLivenessTimeout = 3 * time.Second
	DefaultPorts           = "21,22,80,135,139,443,445,3389"
)

// Config represents the complete portsweep configuration.
type Config struct {
	// Scanning configuration
	Scanning ScanningConfig `yaml:"scanning" json:"scanning"`

	// Logging configuration
	Logging logging.Config `yaml:"logging" json:"logging"`
}

// ScanningConfig holds scanning-related settings.
type ScanningConfig struct {
	// Number of concurrent in-flight probes per host scan
	WorkerCount int `yaml:"worker_count" json:"worker_count"`

	// Timeout for a single port probe
	ProbeTimeout time.Duration `yaml:"probe_timeout" json:"probe_timeout"`

	// Port used by the liveness pre-check
	LivenessPort int `yaml:"liveness_port" json:"liveness_port"`

	// Timeout for the liveness pre-check
	LivenessTimeout time.Duration `yaml:"liveness_timeout" json:"liveness_timeout"`

	// Default ports to scan when no explicit list is given, comma-separated
	DefaultPorts string `yaml:"default_ports" json:"default_ports"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Scanning: ScanningConfig{
			WorkerCount:     DefaultWorkerCount,
			ProbeTimeout:    DefaultProbeTimeout,
			LivenessPort:    DefaultLivenessPort,
			LivenessTimeout: DefaultLivenessTimeout,
			DefaultPorts:    DefaultPorts,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file, falling back to defaults when the
// file does not exist.
func Load(path string) (*Config, error) {
	config := Default()

	if path == "" {
		return config, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Save saves configuration to a file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Scanning.WorkerCount <= 0 {
		return fmt.Errorf("worker count must be positive")
	}
	if c.Scanning.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive")
	}
	if c.Scanning.LivenessPort < 1 || c.Scanning.LivenessPort > 65535 {
		return fmt.Errorf("liveness port must be between 1 and 65535")
	}
	if c.Scanning.LivenessTimeout <= 0 {
		return fmt.Errorf("liveness timeout must be positive")
	}
	if c.Scanning.DefaultPorts == "" {
		return fmt.Errorf("default ports must not be empty")
	}

	validLogLevels := map[logging.LogLevel]bool{
		logging.LevelDebug: true,
		logging.LevelInfo:  true,
		logging.LevelWarn:  true,
		logging.LevelError: true,
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	validLogFormats := map[logging.LogFormat]bool{
		logging.FormatText: true,
		logging.FormatJSON: true,
	}
	if !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("invalid log format: %s", c.Logging.Format)
	}

	return nil
}
