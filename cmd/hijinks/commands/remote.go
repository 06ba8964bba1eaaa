package commands

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/hijinks/hijinks/internal/poller"
	"github.com/hijinks/hijinks/internal/remote"
	"github.com/hijinks/hijinks/internal/ui"
)

// remoteCmd runs the interactive remote
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Start the interactive remote",
	Long: `Find the box, then show the remote screen. Keys are sent to the box as
they are typed and the screen shows what is playing and the volume.

Press ` + "`" + ` to switch keyboard mode on and off. In keyboard mode every key
is typed into the box's text field. Press q (outside keyboard mode) or
Ctrl+C to quit.`,
	RunE: runRemote,
}

func runRemote(cmd *cobra.Command, args []string) error {
	if !ui.IsInteractive() {
		return errors.New("the remote needs an interactive terminal; try 'hijinks send' instead")
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closer, err := initLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess := newSession(cfg)
	log.Info().Str("session", sess.ID()).Msg("remote starting")

	spinner := ui.NewSpinner(os.Stderr, "Looking for a Boxee box...")
	spinner.Start()
	ep, err := sess.Discover(ctx)
	spinner.Stop()
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, ui.RenderSuccess("Found box at "+ep.String()))

	p := poller.New[remote.Status](cfg.PollInterval(), sess.Refresh)
	p.Start(ctx)
	defer p.Stop()

	err = ui.Run(ctx, sess, p.Results(), ui.Options{
		Endpoint:   ep.String(),
		VolumeStep: cfg.VolumeStep,
	})
	if err != nil {
		return err
	}
	log.Info().Str("session", sess.ID()).Msg("remote stopped")
	return nil
}
