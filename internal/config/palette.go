package config

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses a "#rrggbb" hex string, falling back to mid gray on
// malformed input so a bad config file never blanks the scene.
func ParseColor(hex string) color.RGBA {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// SandPalette derives n particle colors from the configured sand hue by
// jittering value and saturation around it. Deterministic: particle i always
// gets the same color for a given base hue.
func SandPalette(hex string, n int) []color.RGBA {
	base, err := colorful.Hex(hex)
	if err != nil {
		base = colorful.Color{R: 0.82, G: 0.66, B: 0.39}
	}
	h, s, v := base.Hsv()

	out := make([]color.RGBA, n)
	for i := range out {
		// Cycle through a small fan of shades rather than random jitter so
		// respawns look identical.
		f := float64(i%7) / 7.0
		c := colorful.Hsv(h+f*14-7, clamp01(s-0.12+f*0.2), clamp01(v-0.15+f*0.25))
		r, g, b := c.RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
