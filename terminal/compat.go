package terminal

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// tcell conversion shims so the toolkit's cells and events can be embedded
// in tcell-based applications during migration.

// AttrToTcell converts an attribute mask to tcell's. tcell has no "hidden"
// attribute; that bit is dropped.
func AttrToTcell(a Attr) tcell.AttrMask {
	var mask tcell.AttrMask
	if a&AttrBold != 0 {
		mask |= tcell.AttrBold
	}
	if a&AttrDim != 0 {
		mask |= tcell.AttrDim
	}
	if a&AttrItalic != 0 {
		mask |= tcell.AttrItalic
	}
	if a&AttrUnderline != 0 {
		mask |= tcell.AttrUnderline
	}
	if a&AttrBlink != 0 {
		mask |= tcell.AttrBlink
	}
	if a&AttrInverse != 0 {
		mask |= tcell.AttrReverse
	}
	if a&AttrStrikethrough != 0 {
		mask |= tcell.AttrStrikeThrough
	}
	return mask
}

// AttrFromTcell converts tcell's attribute mask to ours
func AttrFromTcell(mask tcell.AttrMask) Attr {
	var a Attr
	if mask&tcell.AttrBold != 0 {
		a |= AttrBold
	}
	if mask&tcell.AttrDim != 0 {
		a |= AttrDim
	}
	if mask&tcell.AttrItalic != 0 {
		a |= AttrItalic
	}
	if mask&tcell.AttrUnderline != 0 {
		a |= AttrUnderline
	}
	if mask&tcell.AttrBlink != 0 {
		a |= AttrBlink
	}
	if mask&tcell.AttrReverse != 0 {
		a |= AttrInverse
	}
	if mask&tcell.AttrStrikeThrough != 0 {
		a |= AttrStrikethrough
	}
	return a
}

// ColorToTcell converts a packed ARGB color; the default color maps to
// tcell.ColorDefault
func ColorToTcell(c Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// ColorFromTcell converts a tcell color to packed ARGB
func ColorFromTcell(c tcell.Color) Color {
	if c == tcell.ColorDefault {
		return ColorDefault
	}
	r, g, b := c.TrueColor().RGB()
	return RGB(uint8(r), uint8(g), uint8(b))
}

var tcellKeyNames = map[string]tcell.Key{
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"insert":    tcell.KeyInsert,
	"delete":    tcell.KeyDelete,
	"page_up":   tcell.KeyPgUp,
	"page_down": tcell.KeyPgDn,
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"backtab":   tcell.KeyBacktab,
	"backspace": tcell.KeyBackspace2,
	"escape":    tcell.KeyEscape,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// KeyToTcell converts a decoded key event to a tcell event. Unknown
// sequences map to KeyNUL with the modifiers preserved.
func KeyToTcell(ev KeyEvent) *tcell.EventKey {
	var mod tcell.ModMask
	if ev.Ctrl {
		mod |= tcell.ModCtrl
	}
	if ev.Meta {
		mod |= tcell.ModAlt
	}
	if ev.Shift {
		mod |= tcell.ModShift
	}

	if k, ok := tcellKeyNames[ev.Name]; ok {
		return tcell.NewEventKey(k, 0, mod)
	}
	if ev.Ctrl && len(ev.Name) == 1 && ev.Name[0] >= 'a' && ev.Name[0] <= 'z' {
		// tcell folds ctrl+letter into dedicated key codes
		return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(ev.Name[0]-'a'), rune(ev.Name[0]), mod)
	}
	if ev.Sequence != "" {
		r, _ := utf8.DecodeRuneInString(ev.Sequence)
		return tcell.NewEventKey(tcell.KeyRune, r, mod)
	}
	return tcell.NewEventKey(tcell.KeyNUL, 0, mod)
}

// StyleToTcell builds a tcell style from a cell's visual state
func StyleToTcell(c Cell) tcell.Style {
	return tcell.StyleDefault.
		Foreground(ColorToTcell(c.Fg)).
		Background(ColorToTcell(c.Bg)).
		Attributes(AttrToTcell(c.Attrs))
}
