package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hijinks/hijinks/internal/config"
)

// debugCmd is the parent command for debug subcommands
var debugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Debug and diagnostic commands",
	Long:  `Commands for debugging and diagnosing issues with Hijinks.`,
}

// debugFlagsCmd prints resolved flag values for debugging
var debugFlagsCmd = &cobra.Command{
	Use:   "flags",
	Short: "Print resolved flag values for debugging",
	Long: `Print the resolved values of global flags for debugging purposes.

This is useful to verify that connection flags are being correctly
parsed and inherited from the command line. The discovery line also
accounts for device_address and device_port in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		configPath, _ := cmd.Flags().GetString("config")
		noColor, _ := cmd.Flags().GetBool("no-color")
		address, _ := cmd.Flags().GetString("address")
		port, _ := cmd.Flags().GetInt("port")
		broadcast, _ := cmd.Flags().GetString("broadcast")
		listenPort, _ := cmd.Flags().GetInt("listen-port")
		timeout, _ := cmd.Flags().GetInt("timeout")
		interval, _ := cmd.Flags().GetInt("interval")

		fmt.Println("Resolved Flag Values:")
		fmt.Printf("  --verbose:     %v\n", verbose)
		fmt.Printf("  --config:      %q\n", configPath)
		fmt.Printf("  --no-color:    %v\n", noColor)
		fmt.Printf("  --address:     %q\n", address)
		fmt.Printf("  --port:        %d\n", port)
		fmt.Printf("  --broadcast:   %q\n", broadcast)
		fmt.Printf("  --listen-port: %d\n", listenPort)
		fmt.Printf("  --timeout:     %d\n", timeout)
		fmt.Printf("  --interval:    %d\n", interval)

		cfg, err := loadConfig(cmd)
		if err != nil {
			fmt.Printf("  Discovery:     unknown (%v)\n", err)
			return nil
		}
		fmt.Printf("  Discovery:     %s\n", describeDiscovery(cfg))
		return nil
	},
}

// describeDiscovery reports how the box will be found with cfg
func describeDiscovery(cfg config.Config) string {
	if ep := cfg.StaticEndpoint(); !ep.IsZero() {
		return "skipped, using " + ep.String()
	}
	return "broadcast to " + cfg.BroadcastAddr
}

func init() {
	debugCmd.AddCommand(debugFlagsCmd)
}
