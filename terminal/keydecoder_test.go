package terminal

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decodeAll(t *testing.T, input string) []KeyEvent {
	t.Helper()
	var d KeyDecoder
	events := d.Decode([]byte(input))
	if d.Pending() != 0 {
		t.Fatalf("decode of %q left %d bytes pending", input, d.Pending())
	}
	return events
}

func TestDecodeSingleKeys(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  KeyEvent
	}{
		{"printable", "x", KeyEvent{Name: "x", Sequence: "x", Raw: []byte("x")}},
		{"enter", "\r", KeyEvent{Name: "enter", Raw: []byte{0x0d}}},
		{"tab", "\t", KeyEvent{Name: "tab", Raw: []byte{0x09}}},
		{"backspace", "\x7f", KeyEvent{Name: "backspace", Raw: []byte{0x7f}}},
		{"ctrl letter", "\x03", KeyEvent{Name: "c", Ctrl: true, Raw: []byte{0x03}}},
		{"ctrl space", "\x00", KeyEvent{Name: "space", Ctrl: true, Raw: []byte{0x00}}},
		{"arrow up", "\x1b[A", KeyEvent{Name: "up", Raw: []byte("\x1b[A")}},
		{"arrow left", "\x1b[D", KeyEvent{Name: "left", Raw: []byte("\x1b[D")}},
		{"home", "\x1b[H", KeyEvent{Name: "home", Raw: []byte("\x1b[H")}},
		{"delete", "\x1b[3~", KeyEvent{Name: "delete", Raw: []byte("\x1b[3~")}},
		{"page down", "\x1b[6~", KeyEvent{Name: "page_down", Raw: []byte("\x1b[6~")}},
		{"f5", "\x1b[15~", KeyEvent{Name: "f5", Raw: []byte("\x1b[15~")}},
		{"f12", "\x1b[24~", KeyEvent{Name: "f12", Raw: []byte("\x1b[24~")}},
		{"xterm f1", "\x1b[P", KeyEvent{Name: "f1", Raw: []byte("\x1b[P")}},
		{"vt f1", "\x1b[[A", KeyEvent{Name: "f1", Raw: []byte("\x1b[[A")}},
		{"ss3 f2", "\x1bOQ", KeyEvent{Name: "f2", Raw: []byte("\x1bOQ")}},
		{"ss3 up", "\x1bOA", KeyEvent{Name: "up", Raw: []byte("\x1bOA")}},
		{"backtab", "\x1b[Z", KeyEvent{Name: "backtab", Shift: true, Raw: []byte("\x1b[Z")}},
		{"ctrl right", "\x1b[1;5C", KeyEvent{Name: "right", Ctrl: true, Raw: []byte("\x1b[1;5C")}},
		{"shift up", "\x1b[1;2A", KeyEvent{Name: "up", Shift: true, Raw: []byte("\x1b[1;2A")}},
		{"alt down", "\x1b[1;3B", KeyEvent{Name: "down", Meta: true, Raw: []byte("\x1b[1;3B")}},
		{"ctrl shift end", "\x1b[1;6F", KeyEvent{Name: "end", Ctrl: true, Shift: true, Raw: []byte("\x1b[1;6F")}},
		{"double escape", "\x1b\x1b", KeyEvent{Name: "escape", Meta: true, Raw: []byte{0x1b, 0x1b}}},
		{"alt printable", "\x1ba", KeyEvent{Name: "a", Sequence: "a", Meta: true, Raw: []byte("\x1ba")}},
		{"alt enter", "\x1b\r", KeyEvent{Name: "enter", Meta: true, Raw: []byte{0x1b, 0x0d}}},
		{"utf8 rune", "é", KeyEvent{Name: "é", Sequence: "é", Raw: []byte("é")}},
		{"unknown csi", "\x1b[?1004h", KeyEvent{Name: KeyUnknown, Raw: []byte("\x1b[?1004h")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := decodeAll(t, tt.input)
			if len(events) != 1 {
				t.Fatalf("decoded %d events, want 1: %+v", len(events), events)
			}
			if diff := cmp.Diff(tt.want, events[0]); diff != "" {
				t.Errorf("event mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeSequenceSplitAcrossReads(t *testing.T) {
	var d KeyDecoder

	if ev := d.Decode([]byte{0x1b}); ev != nil {
		t.Fatalf("lone ESC produced events %+v", ev)
	}
	if ev := d.Decode([]byte{'['}); ev != nil {
		t.Fatalf("ESC [ produced events %+v", ev)
	}
	events := d.Decode([]byte{'A'})
	if len(events) != 1 || events[0].Name != "up" {
		t.Fatalf("completed sequence decoded as %+v, want up", events)
	}
	if !bytes.Equal(events[0].Raw, []byte("\x1b[A")) {
		t.Errorf("raw bytes = % x, want full sequence", events[0].Raw)
	}
}

func TestDecodeUTF8SplitAcrossReads(t *testing.T) {
	var d KeyDecoder
	raw := []byte("日") // 3 bytes

	if ev := d.Decode(raw[:1]); ev != nil {
		t.Fatalf("partial rune produced events %+v", ev)
	}
	if ev := d.Decode(raw[1:2]); ev != nil {
		t.Fatalf("partial rune produced events %+v", ev)
	}
	events := d.Decode(raw[2:])
	if len(events) != 1 || events[0].Name != "日" {
		t.Fatalf("completed rune decoded as %+v", events)
	}
}

func TestDecodeMultipleEventsInOneChunk(t *testing.T) {
	events := decodeAll(t, "ab\x1b[A\r")
	var names []string
	for _, ev := range events {
		names = append(names, ev.Name)
	}
	want := []string{"a", "b", "up", "enter"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("event order mismatch (-want +got):\n%s", diff)
	}
}

func TestFlushResolvesLoneEscape(t *testing.T) {
	var d KeyDecoder

	d.Decode([]byte{0x1b})
	if d.Pending() != 1 {
		t.Fatalf("pending = %d, want 1", d.Pending())
	}
	events := d.Flush()
	if len(events) != 1 || events[0].Name != "escape" {
		t.Fatalf("flush decoded %+v, want escape", events)
	}
	if d.Pending() != 0 {
		t.Errorf("pending after flush = %d", d.Pending())
	}

	// Flush with a non-ESC partial sequence buffered does nothing
	d.Decode([]byte("\x1b["))
	if events := d.Flush(); events != nil {
		t.Errorf("flush of partial CSI produced %+v", events)
	}
}

func TestDecodeMalformedSequences(t *testing.T) {
	t.Run("control byte inside CSI", func(t *testing.T) {
		var d KeyDecoder
		events := d.Decode([]byte("\x1b[1;\x01"))
		if len(events) != 2 {
			t.Fatalf("decoded %d events, want unknown + ctrl key: %+v", len(events), events)
		}
		if events[0].Name != KeyUnknown {
			t.Errorf("first event = %q, want unknown", events[0].Name)
		}
		if events[1].Name != "a" || !events[1].Ctrl {
			t.Errorf("second event = %+v, want ctrl+a", events[1])
		}
	})

	t.Run("overlong parameter run", func(t *testing.T) {
		var d KeyDecoder
		chunk := append([]byte("\x1b["), bytes.Repeat([]byte{'1'}, csiScanLimit-2)...)
		events := d.Decode(chunk)
		if len(events) != 1 || events[0].Name != KeyUnknown {
			t.Fatalf("overlong CSI decoded as %+v, want one unknown", events)
		}
	})

	t.Run("stray continuation byte swallowed", func(t *testing.T) {
		var d KeyDecoder
		events := d.Decode([]byte{0x80, 'x'})
		if len(events) != 1 || events[0].Name != "x" {
			t.Fatalf("decoded %+v, want just x", events)
		}
	})
}

func TestDecodeRawSurvivesCompaction(t *testing.T) {
	var d KeyDecoder
	first := d.Decode([]byte("\x1b[A"))
	if len(first) != 1 {
		t.Fatal("expected one event")
	}
	// Reusing the decoder must not alias earlier Raw slices
	d.Decode([]byte("\x1b[B\x1b[C\x1b[D"))
	if !bytes.Equal(first[0].Raw, []byte("\x1b[A")) {
		t.Errorf("raw bytes mutated by later decode: % x", first[0].Raw)
	}
}
