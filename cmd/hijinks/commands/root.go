package commands

import (
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/hijinks/hijinks/internal/boxee"
	"github.com/hijinks/hijinks/internal/config"
	"github.com/hijinks/hijinks/internal/discovery"
	"github.com/hijinks/hijinks/internal/logging"
	"github.com/hijinks/hijinks/internal/remote"
	"github.com/hijinks/hijinks/internal/ui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

var rootCmd = &cobra.Command{
	Use:   "hijinks",
	Short: "Hijinks - terminal remote control for Boxee",
	Long: `Hijinks finds a Boxee box on the local network and drives it from the
terminal: navigation, volume, playback and text entry.

Run without a command to start the interactive remote.
Use "hijinks [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRemote,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	addGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(remoteCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(debugCmd)
}

// versionCmd shows version info
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Hijinks\n")
		fmt.Printf("  Version:  %s\n", Version)
		fmt.Printf("  Commit:   %s\n", Commit)
	},
}

// addGlobalFlags registers the flags every command inherits
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.BoolP("verbose", "v", false, "Enable verbose output")
	flags.String("config", "", "Config file (default: ~/.hijinks/config.json)")
	flags.Bool("no-color", false, "Disable colored output")

	// Connection flags override the config file
	flags.String("address", "", "Box address, skips discovery together with --port")
	flags.Int("port", 0, "Box HTTP port")
	flags.String("broadcast", "", "Discovery broadcast address (host:port)")
	flags.Int("listen-port", 0, "Local UDP port for discovery replies")
	flags.Int("timeout", 0, "Discovery timeout in seconds (0 waits forever)")
	flags.Int("interval", 0, "Status poll interval in seconds")
}

// loadConfig reads the config file and applies flag overrides
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("address") {
		cfg.DeviceAddress, _ = flags.GetString("address")
	}
	if flags.Changed("port") {
		cfg.DevicePort, _ = flags.GetInt("port")
	}
	if flags.Changed("broadcast") {
		cfg.BroadcastAddr, _ = flags.GetString("broadcast")
	}
	if flags.Changed("listen-port") {
		cfg.ListenPort, _ = flags.GetInt("listen-port")
	}
	if flags.Changed("timeout") {
		cfg.DiscoveryTimeoutSec, _ = flags.GetInt("timeout")
	}
	if flags.Changed("interval") {
		cfg.PollIntervalSec, _ = flags.GetInt("interval")
	}
	if noColor, _ := flags.GetBool("no-color"); noColor {
		ui.SetNoColor(true)
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		cfg.Debug = true
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// initLogging starts file logging under ~/.hijinks/logs. Console output is
// only used when the terminal is not owned by the remote screen.
func initLogging(cfg config.Config, console bool) (io.Closer, error) {
	paths, err := config.GetPaths()
	if err != nil {
		return nil, err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, err
	}

	lc := logging.DefaultConfig()
	lc.Directory = paths.LogsDir
	lc.Level = cfg.LogLevel
	if cfg.Debug {
		lc.Level = zerolog.DebugLevel.String()
	}
	lc.Console = console
	lc.ConsoleOut = os.Stderr
	return logging.Init(lc)
}

// newSession builds a session with a live HTTP client and a broadcast
// discoverer
func newSession(cfg config.Config) *remote.Session {
	client := boxee.NewClient(&http.Client{Timeout: cfg.HTTPTimeout()}, logging.Component("boxee"))
	disc := discovery.NewClient(cfg, logging.Component("discovery"))
	return remote.NewSession(cfg, client, disc, logging.Component("remote"))
}
