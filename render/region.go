// Package render provides drawing helpers over a terminal cell buffer:
// windowed regions with text/line/fill primitives and a color blender.
// Widget state machines live above this layer.
package render

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/lixenwraith/termkit/terminal"
)

// splitGraphemes breaks a string into grapheme clusters
func splitGraphemes(s string) []string {
	var out []string
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		out = append(out, gr.Str())
	}
	return out
}

// LineStyle selects box-drawing characters
type LineStyle uint8

const (
	LineSingle LineStyle = iota
	LineDouble
)

func (s LineStyle) horizontal() string {
	if s == LineDouble {
		return "═"
	}
	return "─"
}

func (s LineStyle) vertical() string {
	if s == LineDouble {
		return "║"
	}
	return "│"
}

// Region is a clipped window into a cell buffer. All coordinates are
// region-local; writes outside the region are dropped.
type Region struct {
	buf  *terminal.CellBuffer
	x, y int
	w, h int
}

// NewRegion creates a region; it is clipped against the buffer by the
// buffer's own bounds checks
func NewRegion(buf *terminal.CellBuffer, x, y, w, h int) Region {
	return Region{buf: buf, x: x, y: y, w: w, h: h}
}

// Width returns the region width
func (r Region) Width() int { return r.w }

// Height returns the region height
func (r Region) Height() int { return r.h }

// Sub returns a nested region clipped to this one
func (r Region) Sub(x, y, w, h int) Region {
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if x+w > r.w {
		w = r.w - x
	}
	if y+h > r.h {
		h = r.h - y
	}
	return Region{buf: r.buf, x: r.x + x, y: r.y + y, w: w, h: h}
}

func (r Region) set(x, y int, c terminal.Cell) {
	if x < 0 || x >= r.w || y < 0 || y >= r.h {
		return
	}
	r.buf.SetCell(r.x+x, r.y+y, c)
}

// Fill paints the whole region with a background color
func (r Region) Fill(bg terminal.Color) {
	c := terminal.Cell{Bg: bg}
	for y := 0; y < r.h; y++ {
		for x := 0; x < r.w; x++ {
			r.set(x, y, c)
		}
	}
}

// Text writes a string at (x, y), clipped to the region
func (r Region) Text(x, y int, s string, fg, bg terminal.Color, attrs terminal.Attr) {
	if y < 0 || y >= r.h {
		return
	}
	// Clip through a bounded sub-buffer write: rely on buffer grapheme
	// handling, then overwrite anything that spilled past the region
	col := x
	for _, ch := range splitGraphemes(s) {
		w := runewidth.StringWidth(ch)
		if w < 1 {
			w = 1
		}
		if col >= r.w {
			break
		}
		if col >= 0 && col+w <= r.w {
			r.set(col, y, terminal.Cell{Ch: ch, Fg: fg, Bg: bg, Attrs: attrs})
			if w > 1 {
				r.set(col+1, y, terminal.Cell{Ch: terminal.Continuation, Fg: fg, Bg: bg, Attrs: attrs})
			}
		}
		col += w
	}
}

// TextCenter writes a horizontally centered line
func (r Region) TextCenter(y int, s string, fg, bg terminal.Color, attrs terminal.Attr) {
	w := runewidth.StringWidth(s)
	r.Text((r.w-w)/2, y, s, fg, bg, attrs)
}

// HLine draws a horizontal rule across the region at row y
func (r Region) HLine(y int, style LineStyle, fg terminal.Color) {
	ch := style.horizontal()
	for x := 0; x < r.w; x++ {
		r.set(x, y, terminal.Cell{Ch: ch, Fg: fg})
	}
}

// VLine draws a vertical rule down the region at column x
func (r Region) VLine(x int, style LineStyle, fg terminal.Color) {
	ch := style.vertical()
	for y := 0; y < r.h; y++ {
		r.set(x, y, terminal.Cell{Ch: ch, Fg: fg})
	}
}

// Box draws a border around the region's edge
func (r Region) Box(style LineStyle, fg terminal.Color) {
	if r.w < 2 || r.h < 2 {
		return
	}
	tl, tr, bl, br := "┌", "┐", "└", "┘"
	if style == LineDouble {
		tl, tr, bl, br = "╔", "╗", "╚", "╝"
	}
	hch := style.horizontal()
	vch := style.vertical()
	for x := 1; x < r.w-1; x++ {
		r.set(x, 0, terminal.Cell{Ch: hch, Fg: fg})
		r.set(x, r.h-1, terminal.Cell{Ch: hch, Fg: fg})
	}
	for y := 1; y < r.h-1; y++ {
		r.set(0, y, terminal.Cell{Ch: vch, Fg: fg})
		r.set(r.w-1, y, terminal.Cell{Ch: vch, Fg: fg})
	}
	r.set(0, 0, terminal.Cell{Ch: tl, Fg: fg})
	r.set(r.w-1, 0, terminal.Cell{Ch: tr, Fg: fg})
	r.set(0, r.h-1, terminal.Cell{Ch: bl, Fg: fg})
	r.set(r.w-1, r.h-1, terminal.Cell{Ch: br, Fg: fg})
}
