package terminal

// KeyEvent is the structured result of decoding terminal input bytes.
// Name is always populated, falling back to the literal character or
// "unknown" for unrecognized sequences.
type KeyEvent struct {
	// Name is the canonical key identifier ("up", "enter", "a", ...)
	Name string

	// Sequence is the decoded printable text, empty for special keys
	Sequence string

	Ctrl  bool
	Meta  bool
	Shift bool

	// Raw holds the original byte sequence that produced the event
	Raw []byte
}

// KeyUnknown is the Name given to syntactically complete but unrecognized
// escape sequences
const KeyUnknown = "unknown"

// modMask is the xterm modifier-parameter bit layout, stored as modifier-1
type modMask uint8

const (
	modShift modMask = 1 << 0
	modAlt   modMask = 1 << 1
	modCtrl  modMask = 1 << 2
)

func keyEvent(name string, m modMask, raw []byte) KeyEvent {
	return KeyEvent{
		Name:  name,
		Ctrl:  m&modCtrl != 0,
		Meta:  m&modAlt != 0,
		Shift: m&modShift != 0,
		Raw:   raw,
	}
}

// controlKey maps a byte below 0x20 (or DEL) to its event. Ctrl is inferred
// for the printable-control range: 0x01-0x1A is ctrl+letter except where a
// dedicated key name exists.
func controlKey(b byte) (string, modMask) {
	switch b {
	case 0x00:
		return "space", modCtrl
	case 0x08:
		return "backspace", 0
	case 0x09:
		return "tab", 0
	case 0x0a, 0x0d:
		return "enter", 0
	case 0x1b:
		return "escape", 0
	case 0x1c:
		return "\\", modCtrl
	case 0x1d:
		return "]", modCtrl
	case 0x1e:
		return "^", modCtrl
	case 0x1f:
		return "_", modCtrl
	case 0x7f:
		return "backspace", 0
	}
	if b >= 0x01 && b <= 0x1a {
		return string(rune('a' + b - 1)), modCtrl
	}
	return KeyUnknown, 0
}
