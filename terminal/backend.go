package terminal

import (
	"bytes"
	"sort"

	"github.com/mattn/go-runewidth"
)

// BackendType names a render backend for configuration
type BackendType string

const (
	BackendAuto  BackendType = "auto"
	BackendAnsi  BackendType = "ansi"
	BackendKitty BackendType = "kitty"
)

// Capabilities describes what a render backend can emit
type Capabilities struct {
	TrueColor          bool
	Images             bool
	SynchronizedOutput bool
	StyledUnderlines   bool
}

// RenderBackend converts cell change lists into terminal output bytes.
// Init/RenderBuffer/Cleanup return complete byte strings for the caller to
// write; the backend never touches the terminal itself.
type RenderBackend interface {
	Name() string
	Capabilities() Capabilities

	// Detect reports whether the backend's terminal is present, judged from
	// environment variables only
	Detect() bool

	// Init returns the startup sequence (enter alternate screen, hide cursor)
	Init() []byte

	// RenderBuffer turns a row-major change list into minimal escape output
	RenderBuffer(changes []RenderCell, width, height int) []byte

	// Cleanup returns the teardown sequence (reset attributes, show cursor,
	// leave alternate screen)
	Cleanup() []byte
}

// RenderState is the per-backend cursor/style cache. After emitting any
// cursor- or style-changing sequence it matches terminal state exactly, so
// redundant sequences are never re-emitted.
type RenderState struct {
	LastX, LastY int
	LastFg       Color
	LastBg       Color
	LastAttrs    Attr

	// StyleValid is false while LastFg/LastBg/LastAttrs are unknown
	StyleValid bool
}

// Reset marks cursor and style as unknown (the -1 sentinel)
func (s *RenderState) Reset() {
	s.LastX = -1
	s.LastY = -1
	s.LastFg = 0
	s.LastBg = 0
	s.LastAttrs = AttrNone
	s.StyleValid = false
}

// emitter holds the cursor/style optimization shared by all backends
type emitter struct {
	state     RenderState
	truecolor bool
}

// renderCells emits movement, style and character bytes for each change.
// Callers should already provide row-major order; the sort is defensive.
func (e *emitter) renderCells(w *bytes.Buffer, changes []RenderCell) {
	sort.SliceStable(changes, func(i, j int) bool {
		if changes[i].Y != changes[j].Y {
			return changes[i].Y < changes[j].Y
		}
		return changes[i].X < changes[j].X
	})

	for _, rc := range changes {
		if rc.Cell.Ch == Continuation {
			// Painted by the wide grapheme to its left
			continue
		}
		e.moveCursor(w, rc.X, rc.Y)
		e.writeStyle(w, rc.Cell.Fg, rc.Cell.Bg, rc.Cell.Attrs)

		ch := rc.Cell.Ch
		if ch == "" {
			w.WriteByte(' ')
			e.state.LastX = rc.X + 1
			continue
		}
		w.WriteString(ch)
		cw := runewidth.StringWidth(ch)
		if cw < 1 {
			cw = 1
		}
		e.state.LastX = rc.X + cw
	}
}

// moveCursor emits the cheapest sequence that puts the cursor at (x, y):
// nothing when the implicit advance already covers it, a relative forward
// for small same-row gaps, an absolute column for larger same-row jumps,
// a full row+column jump on row change.
func (e *emitter) moveCursor(w *bytes.Buffer, x, y int) {
	s := &e.state
	if s.LastY == y && s.LastX >= 0 {
		delta := x - s.LastX
		switch {
		case delta == 0:
			// Implicit advance from the previous character
		case delta >= 1 && delta <= 3:
			writeCursorForward(w, delta)
		default:
			writeCursorCol(w, x)
		}
	} else {
		writeCursorPos(w, x, y)
	}
	s.LastX = x
	s.LastY = y
}

// writeStyle emits attribute and color changes relative to the cache.
// Terminals cannot subtract a single attribute, so leaving a non-none
// attribute set always goes through a full SGR reset first, which also
// forgets the cached colors.
func (e *emitter) writeStyle(w *bytes.Buffer, fg, bg Color, attrs Attr) {
	s := &e.state

	attrsChanged := !s.StyleValid || attrs != s.LastAttrs
	if attrsChanged {
		if !s.StyleValid || s.LastAttrs != AttrNone {
			w.Write(csiSGR0)
			// Reset cleared colors too; force re-emission
			s.StyleValid = false
		}
		for bit := 0; bit < 8; bit++ {
			if attrs&(1<<bit) != 0 {
				w.Write(csi)
				w.WriteByte(sgrCodes[bit])
				w.WriteByte('m')
			}
		}
	}

	if !s.StyleValid || fg != s.LastFg {
		e.writeFg(w, fg)
	}
	if !s.StyleValid || bg != s.LastBg {
		e.writeBg(w, bg)
	}

	s.LastFg = fg
	s.LastBg = bg
	s.LastAttrs = attrs
	s.StyleValid = true
}

func (e *emitter) writeFg(w *bytes.Buffer, fg Color) {
	if fg.IsDefault() {
		w.Write(csiDefaultFg)
		return
	}
	if e.truecolor {
		r, g, b, _ := fg.RGBA()
		w.Write(csiFgRGB)
		writeInt(w, int(r))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
		w.WriteByte('m')
		return
	}
	w.Write(csiFg256)
	writeInt(w, int(fg.To256()))
	w.WriteByte('m')
}

func (e *emitter) writeBg(w *bytes.Buffer, bg Color) {
	if bg.IsDefault() {
		w.Write(csiDefaultBg)
		return
	}
	if e.truecolor {
		r, g, b, _ := bg.RGBA()
		w.Write(csiBgRGB)
		writeInt(w, int(r))
		w.WriteByte(';')
		writeInt(w, int(g))
		w.WriteByte(';')
		writeInt(w, int(b))
		w.WriteByte('m')
		return
	}
	w.Write(csiBg256)
	writeInt(w, int(bg.To256()))
	w.WriteByte('m')
}
