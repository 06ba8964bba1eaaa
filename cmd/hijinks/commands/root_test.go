package commands

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func newTestCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addGlobalFlags(cmd.Flags())
	if err := cmd.Flags().Parse(args); err != nil {
		t.Fatalf("Parse(%v) error = %v", args, err)
	}
	return cmd
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := writeConfig(t, `{"broadcast_addr": "192.168.1.255:2562", "poll_interval_sec": 3}`)

	cmd := newTestCmd(t,
		"--config", path,
		"--address", "10.0.0.5",
		"--port", "8080",
		"--timeout", "0",
		"-v",
	)
	cfg, err := loadConfig(cmd)
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}

	if cfg.BroadcastAddr != "192.168.1.255:2562" {
		t.Errorf("BroadcastAddr = %q, want value from file", cfg.BroadcastAddr)
	}
	if cfg.PollIntervalSec != 3 {
		t.Errorf("PollIntervalSec = %d, want 3", cfg.PollIntervalSec)
	}
	if got := cfg.StaticEndpoint().String(); got != "10.0.0.5:8080" {
		t.Errorf("StaticEndpoint() = %q, want 10.0.0.5:8080", got)
	}
	if cfg.DiscoveryTimeoutSec != 0 {
		t.Errorf("DiscoveryTimeoutSec = %d, want 0", cfg.DiscoveryTimeoutSec)
	}
	if !cfg.Debug {
		t.Error("--verbose did not enable debug")
	}
}

func TestLoadConfig_UnsetFlagsKeepDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	cfg, err := loadConfig(newTestCmd(t, "--config", path))
	if err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.ListenPort != 2563 {
		t.Errorf("ListenPort = %d, want 2563", cfg.ListenPort)
	}
	if !cfg.StaticEndpoint().IsZero() {
		t.Errorf("StaticEndpoint() = %v, want zero", cfg.StaticEndpoint())
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.json")

	_, err := loadConfig(newTestCmd(t, "--config", path, "--port", "8080", "--interval", "0"))
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"device_port set without device_address", "poll_interval_sec"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestDescribeDiscovery(t *testing.T) {
	tests := []struct {
		name string
		file string
		args []string
		want string
	}{
		{
			name: "broadcast by default",
			file: `{}`,
			want: "broadcast to 255.255.255.255:2562",
		},
		{
			name: "device in config file",
			file: `{"device_address": "192.168.1.20", "device_port": 8800}`,
			want: "skipped, using 192.168.1.20:8800",
		},
		{
			name: "flags override file",
			file: `{"device_address": "192.168.1.20", "device_port": 8800}`,
			args: []string{"--port", "9000"},
			want: "skipped, using 192.168.1.20:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file)
			cfg, err := loadConfig(newTestCmd(t, append([]string{"--config", path}, tt.args...)...))
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if got := describeDiscovery(cfg); got != tt.want {
				t.Errorf("describeDiscovery() = %q, want %q", got, tt.want)
			}
		})
	}
}
