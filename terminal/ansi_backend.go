package terminal

import (
	"bytes"
)

// AnsiBackend emits universal xterm-compatible escape sequences.
// It is the fallback every terminal understands.
type AnsiBackend struct {
	emitter
	caps Capabilities
}

// NewAnsiBackend creates the backend. The options control truecolor
// emission; with truecolor off, colors quantize to the 256 palette.
func NewAnsiBackend(opts Options) *AnsiBackend {
	b := &AnsiBackend{
		caps: Capabilities{
			TrueColor: opts.TrueColor,
		},
	}
	b.truecolor = opts.TrueColor
	b.state.Reset()
	return b
}

func (b *AnsiBackend) Name() string { return "ansi" }

func (b *AnsiBackend) Capabilities() Capabilities { return b.caps }

// Detect always succeeds: ANSI is the universal fallback
func (b *AnsiBackend) Detect() bool { return true }

func (b *AnsiBackend) Init() []byte {
	b.state.Reset()
	var w bytes.Buffer
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	return w.Bytes()
}

func (b *AnsiBackend) RenderBuffer(changes []RenderCell, width, height int) []byte {
	if len(changes) == 0 {
		return nil
	}
	var w bytes.Buffer
	w.Grow(len(changes) * 8)
	b.renderCells(&w, changes)
	return w.Bytes()
}

func (b *AnsiBackend) Cleanup() []byte {
	b.state.Reset()
	var w bytes.Buffer
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAutoWrapOn)
	w.Write(csiAltScreenExit)
	return w.Bytes()
}
