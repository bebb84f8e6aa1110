package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// ParseHex parses "#rrggbb" (or the short "#rgb" form).
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{R: c.R, G: c.G, B: c.B}, nil
}

// MustParseHex is ParseHex for compile-time constants.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

func (c Color) String() string { return c.Hex() }

// Clamped returns the color with every channel limited to [0, 1].
func (c Color) Clamped() Color {
	cc := colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped()
	return Color{R: cc.R, G: cc.G, B: cc.B}
}

// Mix interpolates per channel in the color's own space, no gamma handling.
// t=0 yields exactly a and t=1 yields exactly b.
func Mix(a, b Color, t float64) Color {
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
	}
}

func lerp(a, b, t float64) float64 { return a*(1-t) + b*t }
