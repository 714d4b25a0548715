package terminal

import (
	"unicode/utf8"
)

// MouseButton identifies which button an event refers to
type MouseButton uint8

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	MouseMiddle
	MouseWheelUp
	MouseWheelDown
	MouseUnknown
)

// String returns a human-readable button name
func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	case MouseWheelUp:
		return "wheel_up"
	case MouseWheelDown:
		return "wheel_down"
	case MouseNone:
		return "none"
	default:
		return "unknown"
	}
}

// MouseAction is the kind of mouse event
type MouseAction uint8

const (
	MousePress MouseAction = iota
	MouseRelease
	MouseMove
	MouseWheel
)

// String returns a human-readable action name
func (a MouseAction) String() string {
	switch a {
	case MousePress:
		return "press"
	case MouseRelease:
		return "release"
	case MouseMove:
		return "move"
	default:
		return "wheel"
	}
}

// MouseProtocol records which wire format produced an event
type MouseProtocol uint8

const (
	ProtocolX10 MouseProtocol = iota
	ProtocolUTF8
	ProtocolSGR
)

// MouseEvent is a decoded mouse report. Coordinates are 0-indexed terminal
// cells.
type MouseEvent struct {
	X, Y     int
	Button   MouseButton
	Action   MouseAction
	Ctrl     bool
	Meta     bool
	Shift    bool
	Protocol MouseProtocol
}

// MouseStatus is the outcome of a decode attempt
type MouseStatus uint8

const (
	// MouseNoMatch: the bytes are not a mouse report; fall through to key
	// decoding for the same bytes
	MouseNoMatch MouseStatus = iota

	// MouseIncomplete: a mouse report prefix is present but truncated; wait
	// for more bytes
	MouseIncomplete

	// MouseMatched: one event decoded, consumed bytes reported
	MouseMatched
)

// x10CoordMax is the legacy protocol's coordinate ceiling (223 cells,
// 0-indexed max 222)
const x10CoordMax = 222

// MouseDecoder parses X10, UTF-8-extended and SGR mouse reports,
// auto-distinguished by their byte prefix. It holds no internal state; the
// caller owns buffering.
type MouseDecoder struct{}

// Decode attempts to parse one mouse report from the head of data
func (d *MouseDecoder) Decode(data []byte) (MouseEvent, int, MouseStatus) {
	if len(data) < 3 || data[0] != 0x1b || data[1] != '[' {
		if isMousePrefix(data) {
			return MouseEvent{}, 0, MouseIncomplete
		}
		return MouseEvent{}, 0, MouseNoMatch
	}
	switch data[2] {
	case 'M':
		return decodeLegacyMouse(data)
	case '<':
		return decodeSGRMouse(data)
	}
	return MouseEvent{}, 0, MouseNoMatch
}

// isMousePrefix reports whether truncated data could still grow into a
// mouse report
func isMousePrefix(data []byte) bool {
	if len(data) >= 1 && data[0] != 0x1b {
		return false
	}
	if len(data) >= 2 && data[1] != '[' {
		return false
	}
	return len(data) < 3
}

// decodeButton interprets the shared button encoding: low 2 bits select the
// button (3 = release in the legacy formats), bit 5 flags motion, bit 6
// flags wheel, bits 2-4 carry shift/meta/ctrl
func decodeButton(btn int, release bool) (MouseButton, MouseAction) {
	if btn&0x40 != 0 {
		if btn&0x03 == 0 {
			return MouseWheelUp, MouseWheel
		}
		if btn&0x03 == 1 {
			return MouseWheelDown, MouseWheel
		}
		return MouseUnknown, MouseWheel
	}

	var button MouseButton
	switch btn & 0x03 {
	case 0:
		button = MouseLeft
	case 1:
		button = MouseMiddle
	case 2:
		button = MouseRight
	case 3:
		button = MouseNone
	}

	switch {
	case btn&0x20 != 0:
		return button, MouseMove
	case release || button == MouseNone:
		return button, MouseRelease
	default:
		return button, MousePress
	}
}

func applyMouseMods(ev *MouseEvent, btn int) {
	ev.Shift = btn&0x04 != 0
	ev.Meta = btn&0x08 != 0
	ev.Ctrl = btn&0x10 != 0
}

// decodeLegacyMouse handles ESC [ M reports: X10 single-byte coordinates
// offset by 33, or the UTF-8 extension where a coordinate may be multi-byte
// to pass the 223-cell limit
func decodeLegacyMouse(data []byte) (MouseEvent, int, MouseStatus) {
	// ESC [ M btn x y
	if len(data) < 4 {
		return MouseEvent{}, 0, MouseIncomplete
	}
	if data[3] < 32 {
		return MouseEvent{}, 0, MouseNoMatch
	}
	btn := int(data[3]) - 32

	i := 4
	x, n, st := legacyCoord(data, i)
	if st != MouseMatched {
		return MouseEvent{}, 0, st
	}
	wide := n > 1
	i += n
	y, n, st := legacyCoord(data, i)
	if st != MouseMatched {
		return MouseEvent{}, 0, st
	}
	wide = wide || n > 1
	i += n

	ev := MouseEvent{X: x, Y: y, Protocol: ProtocolX10}
	if wide {
		ev.Protocol = ProtocolUTF8
	} else {
		if ev.X > x10CoordMax {
			ev.X = x10CoordMax
		}
		if ev.Y > x10CoordMax {
			ev.Y = x10CoordMax
		}
	}
	ev.Button, ev.Action = decodeButton(btn, false)
	applyMouseMods(&ev, btn)
	return ev, i, MouseMatched
}

// legacyCoord reads one coordinate byte, or a multi-byte UTF-8 encoding in
// the extended format. Values are offset by 33 on the wire.
func legacyCoord(data []byte, i int) (int, int, MouseStatus) {
	if i >= len(data) {
		return 0, 0, MouseIncomplete
	}
	b := data[i]
	if b < 0x80 {
		v := int(b) - 33
		if v < 0 {
			return 0, 0, MouseNoMatch
		}
		return v, 1, MouseMatched
	}
	size := utf8SeqLen(b)
	if size == 0 {
		return 0, 0, MouseNoMatch
	}
	if i+size > len(data) {
		return 0, 0, MouseIncomplete
	}
	r, _ := utf8.DecodeRune(data[i : i+size])
	if r == utf8.RuneError {
		return 0, 0, MouseNoMatch
	}
	v := int(r) - 33
	if v < 0 {
		return 0, 0, MouseNoMatch
	}
	return v, size, MouseMatched
}

// decodeSGRMouse handles ESC [ < btn ; x ; y M/m with plain decimal
// 1-indexed coordinates, 'M' for press/move/wheel and 'm' for release
func decodeSGRMouse(data []byte) (MouseEvent, int, MouseStatus) {
	// Minimum: ESC [ < 0 ; 1 ; 1 M = 9 bytes
	end := 3
	for end < len(data) && end < csiScanLimit {
		if data[end] == 'M' || data[end] == 'm' {
			break
		}
		end++
	}
	if end >= len(data) {
		return MouseEvent{}, 0, MouseIncomplete
	}
	if data[end] != 'M' && data[end] != 'm' {
		return MouseEvent{}, 0, MouseNoMatch
	}

	btn, x, y, ok := parseSGRParams(data[3:end])
	if !ok {
		return MouseEvent{}, 0, MouseNoMatch
	}

	ev := MouseEvent{
		X:        x - 1, // Convert to 0-indexed
		Y:        y - 1,
		Protocol: ProtocolSGR,
	}
	if ev.X < 0 {
		ev.X = 0
	}
	if ev.Y < 0 {
		ev.Y = 0
	}
	ev.Button, ev.Action = decodeButton(btn, data[end] == 'm')
	applyMouseMods(&ev, btn)
	return ev, end + 1, MouseMatched
}

// parseSGRParams extracts btn, x, y from "Btn;X;Y"
func parseSGRParams(data []byte) (btn, x, y int, ok bool) {
	state := 0
	val := 0
	for _, b := range data {
		switch {
		case b == ';':
			switch state {
			case 0:
				btn = val
			case 1:
				x = val
			default:
				return 0, 0, 0, false
			}
			state++
			val = 0
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}
	if state != 2 {
		return 0, 0, 0, false
	}
	y = val
	return btn, x, y, true
}
