package client

import (
	"fmt"
	"math"
	"regexp"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var hexColorPattern = regexp.MustCompile(`^[A-Fa-f0-9]{6}$`)

// RGB is a color as three 0-255 channels.
type RGB struct {
	R, G, B int
}

func (c RGB) String() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// Validate checks every channel is within 0-255.
func (c RGB) Validate() error {
	for _, ch := range []struct {
		name  string
		value int
	}{{"red", c.R}, {"green", c.G}, {"blue", c.B}} {
		if ch.value < 0 || ch.value > 255 {
			return &ValidationError{Field: ch.name, Value: ch.value, Err: ErrInvalidColor}
		}
	}
	return nil
}

// ParseHex parses a six digit hex string such as "FF00A0". No leading '#' is accepted.
func ParseHex(s string) (RGB, error) {
	if !hexColorPattern.MatchString(s) {
		return RGB{}, &ValidationError{Field: "hex color", Value: s, Err: ErrInvalidColor}
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return RGB{}, &ValidationError{Field: "hex color", Value: s, Err: ErrInvalidColor}
	}
	r, g, b := c.RGB255()
	return RGB{int(r), int(g), int(b)}, nil
}

// RGBFromHSV converts hue (0-360), saturation (0-100) and brightness (0-100) to RGB.
// Channels are truncated, not rounded. The sector arithmetic runs step by step in the
// usual colorsys order, so truncation lands on the same values as other clients.
func RGBFromHSV(hue, saturation, brightness float64) RGB {
	h := math.Mod(hue, 360) / 360
	if h < 0 {
		h += 1
	}
	s := saturation / 100
	v := brightness / 100
	if s == 0 {
		return RGB{int(v * 255), int(v * 255), int(v * 255)}
	}

	// Conversions keep products rounded so no platform fuses them into an FMA.
	i := int(h * 6.0)
	f := float64(h*6.0) - float64(i)
	p := v * (1.0 - s)
	q := v * (1.0 - float64(s*f))
	t := v * (1.0 - float64(s*(1.0-f)))

	var r, g, b float64
	switch i % 6 {
	case 0:
		r, g, b = v, t, p
	case 1:
		r, g, b = q, v, p
	case 2:
		r, g, b = p, v, t
	case 3:
		r, g, b = p, q, v
	case 4:
		r, g, b = t, p, v
	default:
		r, g, b = v, p, q
	}
	return RGB{R: int(r * 255), G: int(g * 255), B: int(b * 255)}
}

// HSVFromRGB converts RGB to hue (0-360), saturation (0-100) and brightness (0-100).
func HSVFromRGB(c RGB) (hue, saturation, brightness float64) {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v := maxc
	if minc == maxc {
		return 0, 0, v * 100
	}
	rangec := maxc - minc
	s := rangec / maxc
	rc := (maxc - r) / rangec
	gc := (maxc - g) / rangec
	bc := (maxc - b) / rangec

	var h float64
	switch {
	case r == maxc:
		h = bc - gc
	case g == maxc:
		h = 2.0 + rc - bc
	default:
		h = 4.0 + gc - rc
	}
	h = math.Mod(h/6.0, 1.0)
	if h < 0 {
		h += 1
	}
	return h * 360, s * 100, v * 100
}
