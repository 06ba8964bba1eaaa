package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/hijinks/hijinks/internal/keymap"
	"github.com/hijinks/hijinks/internal/ui"
)

// keysCmd prints the key bindings
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List key bindings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		tw := tablewriter.NewWriter(os.Stdout)
		tw.SetHeader([]string{"Key", "Group", "Action", "Sends"})
		tw.SetBorder(true)
		tw.SetAutoWrapText(false)

		tw.Append([]string{keymap.KeyQuit.String(), "-", "quit", "-"})
		tw.Append([]string{keymap.KeyModeToggle.String(), "-", "keyboard mode on/off", "-"})
		for _, b := range keymap.Bindings() {
			tw.Append([]string{b.Key.String(), b.Group, b.Description, b.CommandText(cfg.VolumeStep)})
		}
		tw.Render()

		fmt.Println("\n" + ui.RenderDim("In keyboard mode every key sends SendKey(61696+code), backspace sends SendKey(61704)."))
		return nil
	},
}
