package terminal

import (
	"bytes"
	"strings"
	"testing"
)

func newTestSession(t *testing.T) (*Session, *scriptTTY) {
	t.Helper()
	tty := &scriptTTY{}
	sess := NewSessionWith(tty, NewAnsiBackend(Options{TrueColor: true}))
	if err := sess.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(sess.Fini)
	return sess, tty
}

func TestSessionLifecycle(t *testing.T) {
	sess, tty := newTestSession(t)

	if !sess.Running() {
		t.Error("session not running after init")
	}
	if len(tty.writes) != 1 || string(tty.writes[0]) != "\x1b[?1049h\x1b[?25l\x1b[?7l" {
		t.Errorf("init wrote %q", tty.writes)
	}
	if w, h := sess.Size(); w != 80 || h != 24 {
		t.Errorf("size = %dx%d, want 80x24", w, h)
	}
	if sess.Buffer().Width() != 80 || sess.Buffer().Height() != 24 {
		t.Error("buffer not sized to the terminal")
	}

	// Second init is a no-op
	if err := sess.Init(); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	if len(tty.writes) != 1 {
		t.Errorf("re-init wrote %d extra chunks", len(tty.writes)-1)
	}

	sess.Fini()
	if sess.Running() {
		t.Error("session still running after fini")
	}
	last := string(tty.writes[len(tty.writes)-1])
	if !strings.Contains(last, "\x1b[?1049l") || !strings.Contains(last, "\x1b[?25h") {
		t.Errorf("fini wrote %q, want alternate-screen exit and cursor show", last)
	}

	// Fini is idempotent
	n := len(tty.writes)
	sess.Fini()
	if len(tty.writes) != n {
		t.Error("second fini wrote to the terminal")
	}
}

func TestSessionRender(t *testing.T) {
	sess, tty := newTestSession(t)

	sess.Buffer().SetText(0, 0, "hello", RGB(255, 255, 255), ColorDefault, AttrNone)
	if err := sess.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	frame := string(tty.writes[len(tty.writes)-1])
	if !strings.Contains(frame, "hello") {
		t.Errorf("frame %q missing text", frame)
	}

	// Unchanged buffer renders nothing
	n := len(tty.writes)
	if err := sess.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(tty.writes) != n {
		t.Error("no-change render wrote to the terminal")
	}
}

func TestSessionRenderAfterFini(t *testing.T) {
	sess, tty := newTestSession(t)
	sess.Fini()

	n := len(tty.writes)
	sess.Buffer().SetText(0, 0, "late", RGB(1, 1, 1), ColorDefault, AttrNone)
	if err := sess.Render(); err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(tty.writes) != n {
		t.Error("render after fini wrote to the terminal")
	}
}

func TestSessionMouseMode(t *testing.T) {
	sess, tty := newTestSession(t)

	if err := sess.SetMouseMode(MouseModeClick); err != nil {
		t.Fatalf("set mouse mode: %v", err)
	}
	got := string(tty.writes[len(tty.writes)-1])
	if got != "\x1b[?1006h\x1b[?1000h" {
		t.Errorf("enable wrote %q", got)
	}

	// Same mode again writes nothing
	n := len(tty.writes)
	sess.SetMouseMode(MouseModeClick)
	if len(tty.writes) != n {
		t.Error("repeated mode change wrote to the terminal")
	}

	sess.SetMouseMode(MouseModeNone)
	got = string(tty.writes[len(tty.writes)-1])
	if got != "\x1b[?1000l\x1b[?1006l" {
		t.Errorf("disable wrote %q", got)
	}
}

func TestMouseModeSequence(t *testing.T) {
	all := MouseModeClick | MouseModeDrag | MouseModeMotion

	got := string(mouseModeSequence(MouseModeNone, all))
	want := "\x1b[?1006h\x1b[?1000h\x1b[?1002h\x1b[?1003h"
	if got != want {
		t.Errorf("enable all = %q, want %q", got, want)
	}

	// Disables run in reverse order of enables
	got = string(mouseModeSequence(all, MouseModeNone))
	want = "\x1b[?1003l\x1b[?1002l\x1b[?1000l\x1b[?1006l"
	if got != want {
		t.Errorf("disable all = %q, want %q", got, want)
	}

	// Moving between non-empty modes leaves SGR coordinates enabled
	got = string(mouseModeSequence(MouseModeClick, MouseModeClick|MouseModeDrag))
	if got != "\x1b[?1002h" {
		t.Errorf("click->click+drag = %q", got)
	}
}

func TestSessionResize(t *testing.T) {
	sess, _ := newTestSession(t)
	sess.Render() // Flush initial frame

	sess.Resize(100, 40)
	if sess.Buffer().Width() != 100 || sess.Buffer().Height() != 40 {
		t.Error("buffer not resized")
	}
	if got := len(sess.Buffer().Diff()); got != 100*40 {
		t.Errorf("post-resize diff = %d changes, want full redraw", got)
	}
}

func TestEmergencyResetOutput(t *testing.T) {
	var w bytes.Buffer
	EmergencyReset(&w)
	out := w.String()
	for _, seq := range []string{
		"\x1b[?1003l", "\x1b[?1006l", "\x1b[?25h", "\x1b[?1049l", "\x1b[0m", "\x1bc",
	} {
		if !strings.Contains(out, seq) {
			t.Errorf("reset output missing %q", seq)
		}
	}
}
