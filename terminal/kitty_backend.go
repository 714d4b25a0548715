package terminal

import (
	"bytes"
	"os"
	"strings"
)

// KittyBackend extends the ANSI emitter for kitty and wezterm: every frame
// is wrapped in synchronized-output begin/end so partial redraws never show,
// and inline images can be transmitted over the kitty graphics protocol.
type KittyBackend struct {
	emitter
	caps Capabilities
}

// NewKittyBackend creates the backend
func NewKittyBackend(opts Options) *KittyBackend {
	b := &KittyBackend{
		caps: Capabilities{
			TrueColor:          opts.TrueColor,
			Images:             opts.Images,
			SynchronizedOutput: true,
			StyledUnderlines:   true,
		},
	}
	b.truecolor = opts.TrueColor
	b.state.Reset()
	return b
}

func (b *KittyBackend) Name() string { return "kitty" }

func (b *KittyBackend) Capabilities() Capabilities { return b.caps }

// Detect inspects environment signals only; no capability query round-trips
func (b *KittyBackend) Detect() bool {
	prog := strings.ToLower(os.Getenv("TERM_PROGRAM"))
	if prog == "kitty" || prog == "wezterm" {
		return true
	}
	if strings.Contains(os.Getenv("TERM"), "wezterm") {
		return true
	}
	return os.Getenv("KITTY_WINDOW_ID") != ""
}

func (b *KittyBackend) Init() []byte {
	b.state.Reset()
	var w bytes.Buffer
	w.Write(csiAltScreenEnter)
	w.Write(csiCursorHide)
	w.Write(csiAutoWrapOff)
	// Known state: synchronized mode off until the first frame begins it
	w.Write(csiSyncEnd)
	return w.Bytes()
}

func (b *KittyBackend) RenderBuffer(changes []RenderCell, width, height int) []byte {
	if len(changes) == 0 {
		return nil
	}
	var w bytes.Buffer
	w.Grow(len(changes)*8 + 16)
	w.Write(csiSyncBegin)
	b.renderCells(&w, changes)
	w.Write(csiSyncEnd)
	return w.Bytes()
}

func (b *KittyBackend) Cleanup() []byte {
	b.state.Reset()
	var w bytes.Buffer
	w.Write(csiSyncEnd)
	w.Write(csiSGR0)
	w.Write(csiCursorShow)
	w.Write(csiAutoWrapOn)
	w.Write(csiAltScreenExit)
	return w.Bytes()
}

// ImageFormat selects the pixel format of transmitted image data
type ImageFormat uint8

const (
	ImagePNG  ImageFormat = iota // f=100
	ImageRGB                     // f=24
	ImageRGBA                    // f=32
)

func (f ImageFormat) code() int {
	switch f {
	case ImageRGB:
		return 24
	case ImageRGBA:
		return 32
	default:
		return 100
	}
}

// ImageOptions carries optional cell-dimension hints for image placement
type ImageOptions struct {
	Format ImageFormat

	// Columns/Rows are cell-dimension hints; zero omits the hint
	Columns int
	Rows    int
}

// kittyChunkSize is the maximum payload per graphics escape; the protocol
// caps chunks at 4096 bytes of base64 data
const kittyChunkSize = 4096

// EncodeKittyImage builds the APC-wrapped graphics commands that transmit
// and display an image. data must already be base64-encoded. Payloads over
// the protocol's chunk limit are split with m=1 continuation chunks.
func EncodeKittyImage(data string, opts ImageOptions) []byte {
	var w bytes.Buffer
	w.Grow(len(data) + 64)

	writeCtrl := func(first, more bool) {
		if first {
			w.WriteString("a=T,f=")
			writeInt(&w, opts.Format.code())
			if opts.Columns > 0 {
				w.WriteString(",c=")
				writeInt(&w, opts.Columns)
			}
			if opts.Rows > 0 {
				w.WriteString(",r=")
				writeInt(&w, opts.Rows)
			}
		}
		if more {
			if first {
				w.WriteByte(',')
			}
			w.WriteString("m=1")
		} else if !first {
			w.WriteString("m=0")
		}
	}

	rest := data
	first := true
	for {
		chunk := rest
		if len(chunk) > kittyChunkSize {
			chunk = chunk[:kittyChunkSize]
		}
		rest = rest[len(chunk):]
		more := len(rest) > 0

		w.Write(apcGraphics)
		writeCtrl(first, more)
		w.WriteByte(';')
		w.WriteString(chunk)
		w.Write(apcEnd)

		if !more {
			return w.Bytes()
		}
		first = false
	}
}
