package internal

import (
	"context"
	"os"
	"os/signal"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/ngerakines/aurora"
	"github.com/ngerakines/aurora/client"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var streamCmd = &cobra.Command{
	Use:   "stream",
	Short: "Drive panels directly over the external control stream",
}

var streamFillCmd = &cobra.Command{
	Use:   "fill <#RRGGBB>",
	Short: "Set every panel to one color",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		stream, err := a.Effects.Stream(ctx)
		if err != nil {
			return err
		}
		defer stream.Close()
		return aurora.ClearPanels(ctx, a.Layout, stream, args[0])
	}),
}

var (
	breathFrom    string
	breathTo      string
	breathSeconds int
)

var streamBreathCmd = &cobra.Command{
	Use:   "breath",
	Short: "Fade every panel between two colors until interrupted",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		from, err := colorful.Hex(breathFrom)
		if err != nil {
			return err
		}
		to, err := colorful.Hex(breathTo)
		if err != nil {
			return err
		}
		panels, err := a.Layout.PanelIDs(ctx)
		if err != nil {
			return err
		}

		stream, err := a.Effects.Stream(ctx)
		if err != nil {
			return err
		}
		defer stream.Close()

		action, err := aurora.NewBreathAction(stream, panels, to, from, breathSeconds)
		if err != nil {
			return err
		}
		if err := action.Start(); err != nil {
			return err
		}

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt)
		<-c

		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := action.Stop(stopCtx); err != nil {
			log.WithError(err).Error("Error stopping breath action.")
			return err
		}
		return nil
	}),
}

func init() {
	streamBreathCmd.Flags().StringVar(&breathFrom, "from", "#000000", "color to fade from")
	streamBreathCmd.Flags().StringVar(&breathTo, "to", "#ffffff", "color to fade to")
	streamBreathCmd.Flags().IntVar(&breathSeconds, "seconds", 4, "length of one breath")

	streamCmd.AddCommand(streamFillCmd, streamBreathCmd)
	RootCmd.AddCommand(streamCmd)
}
