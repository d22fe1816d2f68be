package internal

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ngerakines/aurora/client"
	"github.com/spf13/cobra"
)

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn the panels on",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		return a.State.SetOn(ctx, true)
	}),
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn the panels off",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		return a.State.SetOff(ctx, true)
	}),
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Switch the panels on or off",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		return a.State.Toggle(ctx)
	}),
}

var identifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Briefly flash the panels",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		return a.Identify(ctx)
	}),
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print controller details",
	Args:  cobra.NoArgs,
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		info, err := a.Info(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("name:       %s\n", info.Name)
		fmt.Printf("model:      %s\n", info.Model)
		fmt.Printf("serial:     %s\n", info.SerialNo)
		fmt.Printf("firmware:   %s\n", info.FirmwareVersion)
		fmt.Printf("on:         %t\n", info.State.On.Value)
		fmt.Printf("color mode: %s\n", info.State.ColorMode)
		fmt.Printf("effect:     %s\n", info.Effects.Select)
		return nil
	}),
}

var rgbCmd = &cobra.Command{
	Use:   "rgb [RRGGBB]",
	Short: "Print or set the color",
	Args:  cobra.MaximumNArgs(1),
	RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
		if len(args) == 1 {
			return a.State.SetHex(ctx, args[0])
		}
		color, ok, err := a.State.RGB(ctx)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("unavailable")
			return nil
		}
		fmt.Println(color)
		return nil
	}),
}

type stateProperty struct {
	name  string
	short string
	get   func(*client.State, context.Context) (int, error)
	set   func(*client.State, context.Context, int) error
	raise func(*client.State, context.Context, int) error
}

var stateProperties = []stateProperty{
	{"brightness", "Print or set brightness (0-100)",
		(*client.State).Brightness, (*client.State).SetBrightness, (*client.State).RaiseBrightness},
	{"hue", "Print or set hue (0-360)",
		(*client.State).Hue, (*client.State).SetHue, (*client.State).RaiseHue},
	{"sat", "Print or set saturation (0-100)",
		(*client.State).Saturation, (*client.State).SetSaturation, (*client.State).RaiseSaturation},
	{"ct", "Print or set color temperature",
		(*client.State).ColorTemperature, (*client.State).SetColorTemperature, (*client.State).RaiseColorTemperature},
}

func newPropertyCmd(p stateProperty) *cobra.Command {
	var increment int
	cmd := &cobra.Command{
		Use:   p.name + " [value]",
		Short: p.short,
		Args:  cobra.MaximumNArgs(1),
		RunE: withClient(func(ctx context.Context, a *client.Aurora, args []string) error {
			if increment != 0 {
				return p.raise(a.State, ctx, increment)
			}
			if len(args) == 1 {
				value, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid %s %q", p.name, args[0])
				}
				return p.set(a.State, ctx, value)
			}
			value, err := p.get(a.State, ctx)
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		}),
	}
	cmd.Flags().IntVar(&increment, "increment", 0, "change by a relative amount instead")
	return cmd
}

func init() {
	RootCmd.AddCommand(onCmd, offCmd, toggleCmd, identifyCmd, infoCmd, rgbCmd)
	for _, p := range stateProperties {
		RootCmd.AddCommand(newPropertyCmd(p))
	}
}
