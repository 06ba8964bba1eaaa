package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hijinks/hijinks/internal/discovery"
	"github.com/hijinks/hijinks/internal/logging"
	"github.com/hijinks/hijinks/internal/ui"
)

// discoverCmd broadcasts once and prints the box that answers
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find a Boxee box on the local network",
	Long: `Broadcast a discovery request and print the first box that answers.

A configured device address is ignored; this always broadcasts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		closer, err := initLogging(cfg, cfg.Debug)
		if err != nil {
			return err
		}
		defer closer.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		client := discovery.NewClient(cfg, logging.Component("discovery"))

		spinner := ui.NewSpinner(os.Stderr, "Broadcasting to "+cfg.BroadcastAddr+"...")
		spinner.Start()
		res, err := client.Discover(ctx)
		spinner.Stop()
		if err != nil {
			return err
		}

		fmt.Println()
		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"Address", "Port", "Name", "Application", "Version", "Auth"})
		tw.SetBorder(true)
		tw.SetAutoWrapText(false)
		tw.Append([]string{
			res.Endpoint.Address,
			strconv.Itoa(res.Endpoint.Port),
			res.Reply.Name,
			res.Reply.Application,
			res.Reply.Version,
			strconv.FormatBool(res.Reply.AuthRequired),
		})
		tw.Render()
		fmt.Println()
		return nil
	},
}
