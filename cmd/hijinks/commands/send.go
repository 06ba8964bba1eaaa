package commands

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hijinks/hijinks/internal/boxee"
)

// sendCmd runs one control API call
var sendCmd = &cobra.Command{
	Use:   "send <command> [arg]",
	Short: "Send a single command to the box",
	Long: `Send one command to the box and print its response.

Examples:
  hijinks send pause
  hijinks send SetVolume 40
  hijinks send SendKey 270`,
	Args: cobra.RangeArgs(1, 2),
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

		c := boxee.Command{Name: args[0]}
		if len(args) == 2 {
			c.Arg = args[1]
		}

		sess := newSession(cfg)
		if _, err := sess.Discover(ctx); err != nil {
			return err
		}

		body, err := sess.RunCommand(ctx, c)
		if err != nil {
			return err
		}
		fmt.Println(strings.TrimSpace(body))
		return nil
	},
}
