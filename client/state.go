package client

import (
	"context"

	"github.com/pkg/errors"
)

const stateEndpoint = "state"

// State reads and writes power and color properties.
type State struct {
	requester *Requester
}

// ColorMode returns the current color mode, for example "hs", "ct" or "effect".
func (s *State) ColorMode(ctx context.Context) (string, error) {
	return getValue[string](ctx, s.requester, "state/colorMode")
}

// On reports whether the device is on.
func (s *State) On(ctx context.Context) (bool, error) {
	return getValue[bool](ctx, s.requester, "state/on/value")
}

// SetOn turns the device on or off.
func (s *State) SetOn(ctx context.Context, on bool) error {
	return s.requester.Put(ctx, stateEndpoint, map[string]interface{}{"on": on}, nil)
}

// Off reports whether the device is off.
func (s *State) Off(ctx context.Context) (bool, error) {
	on, err := s.On(ctx)
	return !on, err
}

// SetOff turns the device off when off is true and on otherwise.
func (s *State) SetOff(ctx context.Context, off bool) error {
	return s.SetOn(ctx, !off)
}

// Toggle reads the power state and writes its negation. It is not atomic: a concurrent
// toggle between the read and the write is overwritten.
func (s *State) Toggle(ctx context.Context) error {
	on, err := s.On(ctx)
	if err != nil {
		return err
	}
	return s.SetOn(ctx, !on)
}

// property is a bounded state value such as brightness or hue.
type property struct {
	requester *Requester
	key       string
}

func (p property) value(ctx context.Context) (int, error) {
	return getValue[int](ctx, p.requester, "state/"+p.key+"/value")
}

func (p property) min(ctx context.Context) (int, error) {
	return getValue[int](ctx, p.requester, "state/"+p.key+"/min")
}

func (p property) max(ctx context.Context) (int, error) {
	return getValue[int](ctx, p.requester, "state/"+p.key+"/max")
}

func (p property) set(ctx context.Context, value int) error {
	body := map[string]interface{}{p.key: map[string]int{"value": value}}
	return p.requester.Put(ctx, stateEndpoint, body, nil)
}

// raise sends a relative change and lets the device apply it.
func (p property) raise(ctx context.Context, amount int) error {
	body := map[string]interface{}{p.key: map[string]int{"increment": amount}}
	return p.requester.Put(ctx, stateEndpoint, body, nil)
}

func (s *State) brightness() property  { return property{s.requester, "brightness"} }
func (s *State) hue() property         { return property{s.requester, "hue"} }
func (s *State) saturation() property  { return property{s.requester, "sat"} }
func (s *State) temperature() property { return property{s.requester, "ct"} }

// Brightness returns the brightness (0-100).
func (s *State) Brightness(ctx context.Context) (int, error) { return s.brightness().value(ctx) }

// SetBrightness sets the brightness (0-100).
func (s *State) SetBrightness(ctx context.Context, level int) error {
	return s.brightness().set(ctx, level)
}

func (s *State) BrightnessMin(ctx context.Context) (int, error) { return s.brightness().min(ctx) }
func (s *State) BrightnessMax(ctx context.Context) (int, error) { return s.brightness().max(ctx) }

// RaiseBrightness changes brightness by amount; negative amounts lower it.
func (s *State) RaiseBrightness(ctx context.Context, amount int) error {
	return s.brightness().raise(ctx, amount)
}

func (s *State) LowerBrightness(ctx context.Context, amount int) error {
	return s.RaiseBrightness(ctx, -amount)
}

// Hue returns the hue (0-360).
func (s *State) Hue(ctx context.Context) (int, error) { return s.hue().value(ctx) }

// SetHue sets the hue (0-360).
func (s *State) SetHue(ctx context.Context, level int) error { return s.hue().set(ctx, level) }

func (s *State) HueMin(ctx context.Context) (int, error) { return s.hue().min(ctx) }
func (s *State) HueMax(ctx context.Context) (int, error) { return s.hue().max(ctx) }

func (s *State) RaiseHue(ctx context.Context, amount int) error { return s.hue().raise(ctx, amount) }
func (s *State) LowerHue(ctx context.Context, amount int) error { return s.RaiseHue(ctx, -amount) }

// Saturation returns the saturation (0-100).
func (s *State) Saturation(ctx context.Context) (int, error) { return s.saturation().value(ctx) }

// SetSaturation sets the saturation (0-100).
func (s *State) SetSaturation(ctx context.Context, level int) error {
	return s.saturation().set(ctx, level)
}

func (s *State) SaturationMin(ctx context.Context) (int, error) { return s.saturation().min(ctx) }
func (s *State) SaturationMax(ctx context.Context) (int, error) { return s.saturation().max(ctx) }

func (s *State) RaiseSaturation(ctx context.Context, amount int) error {
	return s.saturation().raise(ctx, amount)
}

func (s *State) LowerSaturation(ctx context.Context, amount int) error {
	return s.RaiseSaturation(ctx, -amount)
}

// ColorTemperature returns the color temperature in kelvin.
func (s *State) ColorTemperature(ctx context.Context) (int, error) {
	return s.temperature().value(ctx)
}

// SetColorTemperature sets the color temperature in kelvin.
func (s *State) SetColorTemperature(ctx context.Context, kelvin int) error {
	return s.temperature().set(ctx, kelvin)
}

func (s *State) ColorTemperatureMin(ctx context.Context) (int, error) {
	return s.temperature().min(ctx)
}

func (s *State) ColorTemperatureMax(ctx context.Context) (int, error) {
	return s.temperature().max(ctx)
}

func (s *State) RaiseColorTemperature(ctx context.Context, amount int) error {
	return s.temperature().raise(ctx, amount)
}

func (s *State) LowerColorTemperature(ctx context.Context, amount int) error {
	return s.RaiseColorTemperature(ctx, -amount)
}

// RGB computes the current color from hue, saturation and brightness. ok is false when
// the controller returned no content for any of the three.
func (s *State) RGB(ctx context.Context) (color RGB, ok bool, err error) {
	var values [3]int
	for i, p := range []property{s.hue(), s.saturation(), s.brightness()} {
		values[i], err = p.value(ctx)
		if errors.Is(err, ErrNoContent) {
			return RGB{}, false, nil
		}
		if err != nil {
			return RGB{}, false, err
		}
	}
	return RGBFromHSV(float64(values[0]), float64(values[1]), float64(values[2])), true, nil
}

// SetRGB converts the color to hue, saturation and brightness and writes all three in
// one request.
func (s *State) SetRGB(ctx context.Context, color RGB) error {
	if err := color.Validate(); err != nil {
		return err
	}
	h, sat, v := HSVFromRGB(color)
	body := map[string]interface{}{
		"hue":        map[string]int{"value": int(h)},
		"sat":        map[string]int{"value": int(sat)},
		"brightness": map[string]int{"value": int(v)},
	}
	return s.requester.Put(ctx, stateEndpoint, body, nil)
}

// SetHex is SetRGB for a six digit hex string such as "FF00A0".
func (s *State) SetHex(ctx context.Context, hex string) error {
	color, err := ParseHex(hex)
	if err != nil {
		return err
	}
	return s.SetRGB(ctx, color)
}
