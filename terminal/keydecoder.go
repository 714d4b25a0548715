package terminal

import (
	"unicode/utf8"
)

// KeyDecoder turns raw terminal bytes into KeyEvents. It is a resumable
// state machine (ground / escape-pending / CSI-collecting): a sequence split
// across reads is retained and prepended to the next Decode call, so chunk
// boundaries are invisible to callers.
type KeyDecoder struct {
	buf []byte
}

// csiScanLimit bounds parameter collection; real terminal sequences are far
// shorter, so anything longer resolves to an unknown event instead of
// buffering forever
const csiScanLimit = 32

// Decode consumes a byte chunk and returns the completed events, in
// byte-stream order. An incomplete trailing sequence (lone ESC, CSI missing
// its final byte, partial UTF-8) stays buffered for the next call.
func (d *KeyDecoder) Decode(chunk []byte) []KeyEvent {
	d.buf = append(d.buf, chunk...)

	var events []KeyEvent
	i := 0
	for i < len(d.buf) {
		ev, n, emit := decodeOneKey(d.buf[i:])
		if n == 0 {
			break
		}
		if emit {
			ev.Raw = append([]byte(nil), ev.Raw...)
			events = append(events, ev)
		}
		i += n
	}

	if i > 0 {
		if i >= len(d.buf) {
			d.buf = d.buf[:0]
		} else {
			copy(d.buf, d.buf[i:])
			d.buf = d.buf[:len(d.buf)-i]
		}
	}
	return events
}

// Pending returns the number of buffered bytes awaiting sequence completion
func (d *KeyDecoder) Pending() int {
	return len(d.buf)
}

// Flush resolves a pending lone ESC as a literal Escape press. The decoder
// itself never times out; the caller decides when a quiet stream means the
// user really pressed Escape.
func (d *KeyDecoder) Flush() []KeyEvent {
	if len(d.buf) == 1 && d.buf[0] == 0x1b {
		d.buf = d.buf[:0]
		return []KeyEvent{keyEvent("escape", 0, []byte{0x1b})}
	}
	return nil
}

// decodeOneKey decodes a single event from the head of data.
// n == 0 means incomplete: wait for more bytes. emit == false with n > 0
// means the bytes were consumed but produce no event (invalid UTF-8 start).
func decodeOneKey(data []byte) (ev KeyEvent, n int, emit bool) {
	if len(data) == 0 {
		return KeyEvent{}, 0, false
	}
	b := data[0]

	// Fast path: printable ASCII
	if b >= 0x20 && b < 0x7f {
		s := string(rune(b))
		return KeyEvent{Name: s, Sequence: s, Raw: data[:1]}, 1, true
	}

	if b == 0x1b {
		return decodeEscape(data)
	}

	// Control characters and DEL
	if b < 0x20 || b == 0x7f {
		name, m := controlKey(b)
		return keyEvent(name, m, data[:1]), 1, true
	}

	// UTF-8 multibyte
	return decodeRuneKey(data, 0, 0)
}

// decodeEscape handles everything after a leading ESC. A bare ESC with no
// follow-up byte is held as a pending escape candidate; the `[` or `O` that
// may follow decides between a literal Escape press and a sequence.
func decodeEscape(data []byte) (KeyEvent, int, bool) {
	if len(data) < 2 {
		return KeyEvent{}, 0, false
	}

	switch b := data[1]; {
	case b == 0x1b:
		return keyEvent("escape", modAlt, data[:2]), 2, true
	case b == '[':
		return decodeCSI(data)
	case b == 'O':
		if len(data) < 3 {
			return KeyEvent{}, 0, false
		}
		if name, ok := lookupSS3(data[2]); ok {
			return keyEvent(name, 0, data[:3]), 3, true
		}
		return keyEvent(KeyUnknown, 0, data[:3]), 3, true
	case b < 0x20 || b == 0x7f:
		name, m := controlKey(b)
		return keyEvent(name, m|modAlt, data[:2]), 2, true
	case b < 0x7f:
		s := string(rune(b))
		ev := KeyEvent{Name: s, Sequence: s, Meta: true, Raw: data[:2]}
		return ev, 2, true
	default:
		return decodeRuneKey(data, 1, modAlt)
	}
}

// decodeCSI collects parameter/intermediate bytes until a final byte in
// 0x40-0x7E. Complete but unrecognized sequences become "unknown" events
// carrying the raw bytes; they are never dropped.
func decodeCSI(data []byte) (KeyEvent, int, bool) {
	if len(data) < 3 {
		return KeyEvent{}, 0, false
	}

	// vt-style ESC [ [ X function keys: the second '[' would otherwise
	// read as a final byte
	if data[2] == '[' {
		if len(data) < 4 {
			return KeyEvent{}, 0, false
		}
		if name, m, ok := lookupCSI(data[2:3], data[3]); ok {
			return keyEvent(name, m, data[:4]), 4, true
		}
		return keyEvent(KeyUnknown, 0, data[:4]), 4, true
	}

	end := 2
	limit := len(data)
	if limit > csiScanLimit {
		limit = csiScanLimit
	}
	for end < limit {
		b := data[end]
		if b >= 0x40 && b <= 0x7e {
			// Final byte
			params := data[2:end]
			raw := data[:end+1]
			if name, m, ok := lookupCSI(params, b); ok {
				return keyEvent(name, m, raw), end + 1, true
			}
			return keyEvent(KeyUnknown, 0, raw), end + 1, true
		}
		if b < 0x20 {
			// Malformed: control byte inside a sequence. Surface what we
			// have rather than hanging.
			return keyEvent(KeyUnknown, 0, data[:end]), end, true
		}
		end++
	}
	if len(data) < csiScanLimit {
		return KeyEvent{}, 0, false
	}
	// Overlong garbage; consume it as one unknown event
	return keyEvent(KeyUnknown, 0, data[:limit]), limit, true
}

// utf8SeqLen returns expected UTF-8 sequence length from the start byte,
// 0 if invalid
func utf8SeqLen(b byte) int {
	switch {
	case b < 0x80:
		return 1
	case b&0xe0 == 0xc0:
		return 2
	case b&0xf0 == 0xe0:
		return 3
	case b&0xf8 == 0xf0:
		return 4
	}
	return 0
}

// decodeRuneKey decodes one UTF-8 character starting at data[offset]
func decodeRuneKey(data []byte, offset int, m modMask) (KeyEvent, int, bool) {
	b := data[offset]
	size := utf8SeqLen(b)
	if size == 0 {
		// Stray continuation byte; drop it
		return KeyEvent{}, offset + 1, false
	}
	if len(data) < offset+size {
		return KeyEvent{}, 0, false
	}
	r, rn := utf8.DecodeRune(data[offset : offset+size])
	if r == utf8.RuneError && rn <= 1 {
		return KeyEvent{}, offset + 1, false
	}
	s := string(r)
	ev := keyEvent(s, m, data[:offset+size])
	ev.Sequence = s
	return ev, offset + size, true
}
