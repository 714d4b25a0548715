package render

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/termkit/terminal"
)

// BlendMode selects a compositing operation for layering colors
type BlendMode uint8

const (
	// BlendReplace takes the source color as-is
	BlendReplace BlendMode = iota

	// BlendAlpha weighs source over destination by the source alpha
	BlendAlpha

	// BlendAdd sums channels, clamped
	BlendAdd

	// BlendMax takes the per-channel maximum
	BlendMax

	// BlendScreen inverts, multiplies, inverts: brightens without clipping
	BlendScreen
)

func toColorful(c terminal.Color) colorful.Color {
	r, g, b, _ := c.RGBA()
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func fromColorful(c colorful.Color) terminal.Color {
	cc := c.Clamped()
	return terminal.RGB(uint8(cc.R*255+0.5), uint8(cc.G*255+0.5), uint8(cc.B*255+0.5))
}

// Blend composites src over dst. A default-colored src leaves dst untouched;
// blending never produces a default color.
func Blend(dst, src terminal.Color, mode BlendMode) terminal.Color {
	if src.IsDefault() {
		return dst
	}
	if dst.IsDefault() || mode == BlendReplace {
		return src
	}

	d := toColorful(dst)
	s := toColorful(src)

	switch mode {
	case BlendAlpha:
		_, _, _, a := src.RGBA()
		return fromColorful(d.BlendRgb(s, float64(a)/255))
	case BlendAdd:
		return fromColorful(colorful.Color{R: d.R + s.R, G: d.G + s.G, B: d.B + s.B})
	case BlendMax:
		return fromColorful(colorful.Color{
			R: max(d.R, s.R),
			G: max(d.G, s.G),
			B: max(d.B, s.B),
		})
	case BlendScreen:
		return fromColorful(colorful.Color{
			R: 1 - (1-d.R)*(1-s.R),
			G: 1 - (1-d.G)*(1-s.G),
			B: 1 - (1-d.B)*(1-s.B),
		})
	}
	return src
}
