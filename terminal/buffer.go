package terminal

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// RenderCell is an immutable change record produced by the diff pass.
// Ordering is row-major (Y ascending, then X) so backends can lean on
// implicit cursor advance.
type RenderCell struct {
	X, Y int
	Cell Cell
}

// CellBuffer is a width×height grid of cells plus a shadow copy of the
// previous frame. Writers mutate the current grid in place; Diff compares
// the two, reports the changes and promotes current to previous.
type CellBuffer struct {
	cur    []Cell
	prev   []Cell
	width  int
	height int

	// prevValid is false until the first Diff completes (and after Resize),
	// forcing the full-redraw path
	prevValid bool
}

// NewCellBuffer creates a buffer with the specified dimensions
func NewCellBuffer(width, height int) *CellBuffer {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	b := &CellBuffer{width: width, height: height}
	size := width * height
	b.cur = make([]Cell, size)
	b.prev = make([]Cell, size)
	return b
}

// Width returns the buffer width in cells
func (b *CellBuffer) Width() int { return b.width }

// Height returns the buffer height in cells
func (b *CellBuffer) Height() int { return b.height }

func (b *CellBuffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// SetCell writes a single cell; out-of-bounds writes are dropped
func (b *CellBuffer) SetCell(x, y int, c Cell) {
	if !b.inBounds(x, y) {
		return
	}
	b.cur[y*b.width+x] = c
}

// Cell returns the current cell at (x, y); the zero Cell out of bounds
func (b *CellBuffer) Cell(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cur[y*b.width+x]
}

// Fill overwrites the whole grid with one cell
func (b *CellBuffer) Fill(c Cell) {
	if len(b.cur) == 0 {
		return
	}
	b.cur[0] = c
	// Exponential copy
	for filled := 1; filled < len(b.cur); filled *= 2 {
		copy(b.cur[filled:], b.cur[:filled])
	}
}

// FillRect overwrites a rectangle, clipped to the grid
func (b *CellBuffer) FillRect(x, y, w, h int, c Cell) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			b.SetCell(col, row, c)
		}
	}
}

// SetText writes a string starting at (x, y), splitting it into grapheme
// clusters. A double-width grapheme owns two cells, the trailing one holding
// the Continuation marker. Returns the number of columns written.
func (b *CellBuffer) SetText(x, y int, s string, fg, bg Color, attrs Attr) int {
	col := x
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		ch := gr.Str()
		w := runewidth.StringWidth(ch)
		if w < 1 {
			w = 1
		}
		b.SetCell(col, y, Cell{Ch: ch, Fg: fg, Bg: bg, Attrs: attrs})
		if w > 1 {
			b.SetCell(col+1, y, Cell{Ch: Continuation, Fg: fg, Bg: bg, Attrs: attrs})
		}
		col += w
	}
	return col - x
}

// Resize reallocates both grids and treats every cell as changed.
// Partial reconciliation across dimension changes is never attempted.
func (b *CellBuffer) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == b.width && height == b.height {
		return
	}
	size := width * height
	b.cur = make([]Cell, size)
	b.prev = make([]Cell, size)
	b.width = width
	b.height = height
	b.prevValid = false
}

// Invalidate forces the next Diff to report every cell, the full-redraw
// path used after a backend re-init
func (b *CellBuffer) Invalidate() {
	b.prevValid = false
}

// Diff compares current against previous cell-by-cell and returns the
// changed cells in row-major order. On the first call (or after
// Resize/Invalidate) every cell is reported. After the comparison the
// current grid is copied into the previous one, so calling Diff twice
// without intervening mutation yields an empty second result.
func (b *CellBuffer) Diff() []RenderCell {
	var changes []RenderCell
	if !b.prevValid {
		changes = make([]RenderCell, 0, len(b.cur))
		for y := 0; y < b.height; y++ {
			for x := 0; x < b.width; x++ {
				changes = append(changes, RenderCell{X: x, Y: y, Cell: b.cur[y*b.width+x]})
			}
		}
	} else {
		for y := 0; y < b.height; y++ {
			row := y * b.width
			for x := 0; x < b.width; x++ {
				if !b.cur[row+x].Equal(b.prev[row+x]) {
					changes = append(changes, RenderCell{X: x, Y: y, Cell: b.cur[row+x]})
				}
			}
		}
	}
	copy(b.prev, b.cur)
	b.prevValid = true
	return changes
}
