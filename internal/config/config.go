// Package config manages remote configuration and state persistence
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/hijinks/hijinks/internal/boxee"
)

const (
	// ConfigDirName is the name of the config directory
	ConfigDirName = ".hijinks"
	// ConfigFileName is the name of the config file
	ConfigFileName = "config.json"

	// DefaultApplication is the application id the box expects from remotes
	DefaultApplication = "iphone_remote"
	// DefaultSharedKey is the key the box signs discovery with
	DefaultSharedKey = "b0xeeRem0tE!"
	// DefaultChallenge is sent alongside the signature
	DefaultChallenge = "boxee_cmd_client"
	// DefaultVersion is the remote protocol version; the box ignores it
	DefaultVersion = "0.1"
	// DefaultBroadcastAddr is where discovery requests are sent
	DefaultBroadcastAddr = "255.255.255.255:2562"
	// DefaultListenPort is the local UDP port replies arrive on
	DefaultListenPort = 2563
	// DefaultVolumeStep is the volume change per keypress, in percent
	DefaultVolumeStep = 2
)

// Config holds the remote configuration. It is treated as immutable once
// loaded and is passed by value to every component.
type Config struct {
	// Application, SharedKey, Challenge and Version identify the remote to the box
	Application string `json:"application"`
	SharedKey   string `json:"shared_key"`
	Challenge   string `json:"challenge"`
	Version     string `json:"version"`

	// BroadcastAddr is the discovery target, host:port
	BroadcastAddr string `json:"broadcast_addr"`
	// ListenPort is the local UDP port; 0 picks an ephemeral one
	ListenPort int `json:"listen_port"`

	// DeviceAddress and DevicePort skip discovery when both are set
	DeviceAddress string `json:"device_address,omitempty"`
	DevicePort    int    `json:"device_port,omitempty"`

	VolumeStep          int  `json:"volume_step"`
	DiscoveryTimeoutSec int  `json:"discovery_timeout_sec"`
	PollIntervalSec     int  `json:"poll_interval_sec"`
	HTTPTimeoutSec      int  `json:"http_timeout_sec"`
	ForwardUnmapped     bool `json:"forward_unmapped"`

	// Debug enables debug-level logging
	Debug    bool   `json:"debug"`
	LogLevel string `json:"log_level"`
}

// Paths holds commonly used paths
type Paths struct {
	// ConfigDir is ~/.hijinks
	ConfigDir string
	// ConfigFile is ~/.hijinks/config.json
	ConfigFile string
	// LogsDir is ~/.hijinks/logs
	LogsDir string
}

// GetPaths returns the standard paths
func GetPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ConfigDirName)
	return &Paths{
		ConfigDir:  configDir,
		ConfigFile: filepath.Join(configDir, ConfigFileName),
		LogsDir:    filepath.Join(configDir, "logs"),
	}, nil
}

// EnsureDirectories creates all required directories
func (p *Paths) EnsureDirectories() error {
	dirs := []string{p.ConfigDir, p.LogsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// Default returns a new Config with default values
func Default() Config {
	return Config{
		Application:         DefaultApplication,
		SharedKey:           DefaultSharedKey,
		Challenge:           DefaultChallenge,
		Version:             DefaultVersion,
		BroadcastAddr:       DefaultBroadcastAddr,
		ListenPort:          DefaultListenPort,
		VolumeStep:          DefaultVolumeStep,
		DiscoveryTimeoutSec: 10,
		PollIntervalSec:     1,
		HTTPTimeoutSec:      5,
		ForwardUnmapped:     true,
		LogLevel:            "info",
	}
}

// Load reads configuration from path, or from the default location when
// path is empty. A missing file yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		paths, err := GetPaths()
		if err != nil {
			return Config{}, err
		}
		path = paths.ConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the configuration to path
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate reports every invalid field at once
func (c Config) Validate() error {
	var errs []error

	if c.Application == "" {
		errs = append(errs, errors.New("application must not be empty"))
	}
	if c.SharedKey == "" {
		errs = append(errs, errors.New("shared_key must not be empty"))
	}
	if c.Challenge == "" {
		errs = append(errs, errors.New("challenge must not be empty"))
	}
	if _, port, err := net.SplitHostPort(c.BroadcastAddr); err != nil {
		errs = append(errs, fmt.Errorf("broadcast_addr %q: %w", c.BroadcastAddr, err))
	} else if n, err := strconv.Atoi(port); err != nil || !validPort(n) {
		errs = append(errs, fmt.Errorf("broadcast_addr %q: invalid port", c.BroadcastAddr))
	}
	if c.ListenPort < 0 || c.ListenPort > 65535 {
		errs = append(errs, fmt.Errorf("listen_port %d out of range", c.ListenPort))
	}
	if c.DevicePort != 0 && !validPort(c.DevicePort) {
		errs = append(errs, fmt.Errorf("device_port %d out of range", c.DevicePort))
	}
	if c.DevicePort != 0 && c.DeviceAddress == "" {
		errs = append(errs, errors.New("device_port set without device_address"))
	}
	if c.VolumeStep <= 0 {
		errs = append(errs, fmt.Errorf("volume_step must be positive, got %d", c.VolumeStep))
	}
	if c.DiscoveryTimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("discovery_timeout_sec must not be negative, got %d", c.DiscoveryTimeoutSec))
	}
	if c.PollIntervalSec <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval_sec must be positive, got %d", c.PollIntervalSec))
	}
	if c.HTTPTimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("http_timeout_sec must be positive, got %d", c.HTTPTimeoutSec))
	}

	return errors.Join(errs...)
}

func validPort(n int) bool {
	return n > 0 && n <= 65535
}

// Redacted returns a copy that is safe to print, with the shared key masked
func (c Config) Redacted() Config {
	if c.SharedKey != "" {
		c.SharedKey = "[REDACTED]"
	}
	return c
}

// Signature returns the discovery signature derived from Challenge and SharedKey
func (c Config) Signature() string {
	return boxee.Signature(c.Challenge, c.SharedKey)
}

// StaticEndpoint returns the configured device endpoint, zero when discovery is needed
func (c Config) StaticEndpoint() boxee.Endpoint {
	if c.DeviceAddress == "" || c.DevicePort == 0 {
		return boxee.Endpoint{}
	}
	return boxee.Endpoint{Address: c.DeviceAddress, Port: c.DevicePort}
}

// DiscoveryTimeout bounds the wait for a discovery reply; 0 waits forever
func (c Config) DiscoveryTimeout() time.Duration {
	return time.Duration(c.DiscoveryTimeoutSec) * time.Second
}

// PollInterval is the delay between status refreshes
func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSec) * time.Second
}

// HTTPTimeout bounds a single control API call
func (c Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}
