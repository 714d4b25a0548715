package terminal

// Static lookup for CSI and SS3 sequences, keyed on the decoded numeric
// parameters plus the final byte. A switch instead of a map keeps the hot
// decode path free of hash lookups.

// csiParams splits the parameter bytes of a CSI sequence into up to two
// numeric fields (missing fields default to 1). Returns false on anything
// but digits and separators.
func csiParams(params []byte) (p1, p2 int, n int, ok bool) {
	p1, p2 = 1, 1
	if len(params) == 0 {
		return p1, p2, 0, true
	}
	val := 0
	seen := false
	for _, b := range params {
		switch {
		case b >= '0' && b <= '9':
			val = val*10 + int(b-'0')
			if val > 9999 {
				return 0, 0, 0, false
			}
			seen = true
		case b == ';':
			if n == 0 {
				p1 = val
			} else if n == 1 {
				p2 = val
			}
			n++
			val = 0
			seen = false
			if n > 2 {
				return 0, 0, 0, false
			}
		default:
			return 0, 0, 0, false
		}
	}
	if seen {
		if n == 0 {
			p1 = val
		} else if n == 1 {
			p2 = val
		}
		n++
	}
	return p1, p2, n, true
}

// csiMod decodes the xterm modifier parameter: stored value is modifier-1
// with bit0=shift, bit1=alt/meta, bit2=ctrl
func csiMod(p int) modMask {
	if p < 2 {
		return 0
	}
	return modMask(p-1) & (modShift | modAlt | modCtrl)
}

// lookupCSI resolves a complete CSI sequence body (parameters plus final
// byte) to a key name and modifiers
func lookupCSI(params []byte, final byte) (string, modMask, bool) {
	// vt-style function keys: ESC [ [ A..E
	if len(params) == 1 && params[0] == '[' {
		switch final {
		case 'A':
			return "f1", 0, true
		case 'B':
			return "f2", 0, true
		case 'C':
			return "f3", 0, true
		case 'D':
			return "f4", 0, true
		case 'E':
			return "f5", 0, true
		}
		return "", 0, false
	}

	p1, p2, n, ok := csiParams(params)
	if !ok {
		return "", 0, false
	}
	mod := csiMod(p2)
	if n < 2 {
		mod = 0
	}

	switch final {
	case 'A':
		return "up", mod, true
	case 'B':
		return "down", mod, true
	case 'C':
		return "right", mod, true
	case 'D':
		return "left", mod, true
	case 'H':
		return "home", mod, true
	case 'F':
		return "end", mod, true
	case 'Z':
		return "backtab", mod | modShift, true
	case 'P':
		return "f1", mod, true
	case 'Q':
		return "f2", mod, true
	case 'R':
		return "f3", mod, true
	case 'S':
		return "f4", mod, true
	case '~':
		var name string
		switch p1 {
		case 1, 7:
			name = "home"
		case 2:
			name = "insert"
		case 3:
			name = "delete"
		case 4, 8:
			name = "end"
		case 5:
			name = "page_up"
		case 6:
			name = "page_down"
		case 11:
			name = "f1"
		case 12:
			name = "f2"
		case 13:
			name = "f3"
		case 14:
			name = "f4"
		case 15:
			name = "f5"
		case 17:
			name = "f6"
		case 18:
			name = "f7"
		case 19:
			name = "f8"
		case 20:
			name = "f9"
		case 21:
			name = "f10"
		case 23:
			name = "f11"
		case 24:
			name = "f12"
		default:
			return "", 0, false
		}
		return name, mod, true
	}
	return "", 0, false
}

// lookupSS3 resolves the byte after ESC O. Some terminals use SS3 for
// cursor keys and F1-F4.
func lookupSS3(b byte) (string, bool) {
	switch b {
	case 'A':
		return "up", true
	case 'B':
		return "down", true
	case 'C':
		return "right", true
	case 'D':
		return "left", true
	case 'H':
		return "home", true
	case 'F':
		return "end", true
	case 'P':
		return "f1", true
	case 'Q':
		return "f2", true
	case 'R':
		return "f3", true
	case 'S':
		return "f4", true
	}
	return "", false
}
