package internal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ngerakines/aurora/client"
	"github.com/spf13/cobra"
)

var effectCmd = &cobra.Command{
	Use:   "effect [name]",
	Short: "Print or select the active effect",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		if len(args) == 1 {
			return a.Effects.Select(ctx, args[0])
		}
		current, err := a.Effects.Current(ctx)
		if err != nil {
			return err
		}
		fmt.Println(current)
		return nil
	}),
}

var effectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored effects",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		effects, err := a.Effects.List(ctx)
		if err != nil {
			return err
		}
		for _, effect := range effects {
			fmt.Println(effect)
		}
		return nil
	}),
}

var effectRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Select a random effect other than the active one",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		selected, err := a.Effects.Random(ctx)
		if err != nil {
			return err
		}
		fmt.Println(selected)
		return nil
	}),
}

var effectShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print an effect definition, or every definition when no name is given",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		var (
			details []byte
			err     error
		)
		if len(args) == 1 {
			details, err = a.Effects.Details(ctx, args[0])
		} else {
			details, err = a.Effects.DetailsAll(ctx)
		}
		if err != nil {
			return err
		}
		fmt.Println(string(details))
		return nil
	}),
}

var effectDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored effect",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		return a.Effects.Delete(ctx, args[0])
	}),
}

var effectRenameCmd = &cobra.Command{
	Use:   "rename <name> <new name>",
	Short: "Rename a stored effect",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		return a.Effects.Rename(ctx, args[0], args[1])
	}),
}

var panelsCmd = &cobra.Command{
	Use:   "panels",
	Short: "Print the panel count and positions",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		count, err := a.Layout.PanelCount(ctx)
		if err != nil {
			return err
		}
		positions, err := a.Layout.PanelPositions(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%d panels\n", count)
		for _, p := range positions {
			fmt.Printf("%5d  x=%-5d y=%-5d o=%-3d shape=%d\n", p.PanelID, p.X, p.Y, p.O, p.ShapeType)
		}
		return nil
	}),
}

var rhythmCmd = &cobra.Command{
	Use:   "rhythm [mic|aux]",
	Short: "Print rhythm module status or set its sound source",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		if len(args) == 1 {
			switch args[0] {
			case "mic":
				return a.Rhythm.SetMode(ctx, client.RhythmMicrophone)
			case "aux":
				return a.Rhythm.SetMode(ctx, client.RhythmAux)
			default:
				return fmt.Errorf("unknown rhythm source %q", args[0])
			}
		}
		connected, err := a.Rhythm.Connected(ctx)
		if err != nil {
			return err
		}
		fmt.Println("connected: " + strconv.FormatBool(connected))
		if !connected {
			return nil
		}
		active, err := a.Rhythm.Active(ctx)
		if err != nil {
			return err
		}
		mode, err := a.Rhythm.Mode(ctx)
		if err != nil {
			return err
		}
		fmt.Println("active:    " + strconv.FormatBool(active))
		fmt.Printf("mode:      %d\n", mode)
		return nil
	}),
}

func init() {
	effectCmd.AddCommand(effectListCmd, effectRandomCmd, effectShowCmd, effectDeleteCmd, effectRenameCmd)
	RootCmd.AddCommand(effectCmd, panelsCmd, rhythmCmd)
}
