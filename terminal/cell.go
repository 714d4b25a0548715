package terminal

// Attr represents text attributes (bitmask)
type Attr uint8

const (
	AttrNone          Attr = 0
	AttrBold          Attr = 1 << 0
	AttrDim           Attr = 1 << 1
	AttrItalic        Attr = 1 << 2
	AttrUnderline     Attr = 1 << 3
	AttrBlink         Attr = 1 << 4
	AttrInverse       Attr = 1 << 5
	AttrHidden        Attr = 1 << 6
	AttrStrikethrough Attr = 1 << 7
)

// sgrCodes maps attribute bits to their SGR parameter, in bit order
var sgrCodes = [8]byte{'1', '2', '3', '4', '5', '7', '8', '9'}

// Continuation marks the shadowed cell to the right of a double-width
// grapheme. Backends skip it entirely; the wide grapheme already painted
// that column.
const Continuation = "\x00"

// Cell represents a single terminal cell: one grapheme plus its
// color/attribute state. An empty Ch renders as a space.
type Cell struct {
	Ch    string
	Fg    Color
	Bg    Color
	Attrs Attr
}

// Equal reports whether two cells would render identically
func (c Cell) Equal(other Cell) bool {
	return c.Ch == other.Ch && c.Fg == other.Fg && c.Bg == other.Bg && c.Attrs == other.Attrs
}
