//go:build unix

package terminal

import (
	"os"
	"testing"
	"time"

	"github.com/creack/pty"
)

func openTestPty(t *testing.T) (ptm, pts *os.File) {
	t.Helper()
	ptm, pts, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		ptm.Close()
		pts.Close()
	})
	if err := pty.Setsize(ptm, &pty.Winsize{Rows: 24, Cols: 80}); err != nil {
		t.Fatalf("set pty size: %v", err)
	}
	return ptm, pts
}

// readMaster reads one chunk from the master side with a timeout, off the
// test goroutine so a missing write cannot hang the run
func readMaster(t *testing.T, ptm *os.File) []byte {
	t.Helper()
	type result struct {
		data []byte
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		buf := make([]byte, 4096)
		n, err := ptm.Read(buf)
		ch <- result{buf[:n], err}
	}()
	select {
	case r := <-ch:
		if r.err != nil {
			t.Fatalf("read master: %v", r.err)
		}
		return r.data
	case <-time.After(2 * time.Second):
		t.Fatal("no output reached the master side")
		return nil
	}
}

func TestTTYInitFini(t *testing.T) {
	_, pts := openTestPty(t)

	tty := NewTTYFiles(pts, pts)
	if err := tty.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	tty.Fini()
	tty.Fini() // Idempotent
}

func TestTTYInitRejectsNonTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "nottty")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tty := NewTTYFiles(f, f)
	if err := tty.Init(); err == nil {
		t.Error("init accepted a regular file")
		tty.Fini()
	}
}

func TestTTYSize(t *testing.T) {
	_, pts := openTestPty(t)

	tty := NewTTYFiles(pts, pts)
	w, h := tty.Size()
	if w != 80 || h != 24 {
		t.Errorf("size = %dx%d, want 80x24", w, h)
	}
}

func TestTTYReadDeliversInput(t *testing.T) {
	ptm, pts := openTestPty(t)

	tty := NewTTYFiles(pts, pts)
	if err := tty.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer tty.Fini()

	if _, err := ptm.WriteString("hi"); err != nil {
		t.Fatalf("write to master: %v", err)
	}

	stopCh := make(chan struct{})
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		data, err := tty.Read(stopCh)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		if len(data) > 0 {
			if string(data) != "hi" {
				t.Errorf("read %q, want %q", data, "hi")
			}
			return
		}
	}
	t.Fatal("input never arrived")
}

func TestTTYReadStops(t *testing.T) {
	_, pts := openTestPty(t)

	tty := NewTTYFiles(pts, pts)
	if err := tty.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer tty.Fini()

	stopCh := make(chan struct{})
	close(stopCh)
	data, err := tty.Read(stopCh)
	if err != nil || data != nil {
		t.Errorf("read with closed stop = %v/%v, want nil/nil", data, err)
	}
}

func TestTTYWriteReachesMaster(t *testing.T) {
	ptm, pts := openTestPty(t)

	tty := NewTTYFiles(pts, pts)
	if err := tty.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer tty.Fini()

	if err := tty.Write([]byte("out")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := string(readMaster(t, ptm)); got != "out" {
		t.Errorf("master saw %q, want %q", got, "out")
	}
}
