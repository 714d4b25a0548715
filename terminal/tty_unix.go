//go:build unix

package terminal

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

type unixTTY struct {
	in      *os.File
	out     *os.File
	inFd    int
	outFd   int
	oldTerm *term.State

	resizeStopCh chan struct{}
	resizeDoneCh chan struct{}
}

// NewTTY returns the platform TTY over stdin/stdout
func NewTTY() TTY {
	return NewTTYFiles(os.Stdin, os.Stdout)
}

// NewTTYFiles returns a TTY over explicit files, e.g. a pty pair in tests
func NewTTYFiles(in, out *os.File) TTY {
	return &unixTTY{
		in:    in,
		out:   out,
		inFd:  int(in.Fd()),
		outFd: int(out.Fd()),
	}
}

func (t *unixTTY) Init() error {
	if !term.IsTerminal(t.inFd) {
		return fmt.Errorf("input is not a terminal")
	}

	old, err := term.MakeRaw(t.inFd)
	if err != nil {
		return fmt.Errorf("enter raw mode: %w", err)
	}
	t.oldTerm = old
	return nil
}

func (t *unixTTY) Fini() {
	if t.resizeStopCh != nil {
		close(t.resizeStopCh)
		<-t.resizeDoneCh
		t.resizeStopCh = nil
	}
	if t.oldTerm != nil {
		term.Restore(t.inFd, t.oldTerm)
		t.oldTerm = nil
	}
}

func (t *unixTTY) Size() (int, int) {
	ws, err := unix.IoctlGetWinsize(t.outFd, unix.TIOCGWINSZ)
	if err != nil || ws.Col == 0 || ws.Row == 0 {
		return 80, 24
	}
	return int(ws.Col), int(ws.Row)
}

func (t *unixTTY) Write(p []byte) error {
	_, err := t.out.Write(p)
	return err
}

// Read polls with a 100ms timeout so the stop channel stays responsive,
// then performs one read. A nil, nil return signals timeout or stop.
func (t *unixTTY) Read(stopCh <-chan struct{}) ([]byte, error) {
	buf := make([]byte, 256)

	for {
		select {
		case <-stopCh:
			return nil, nil
		default:
		}

		fds := []unix.PollFd{
			{Fd: int32(t.inFd), Events: unix.POLLIN},
		}
		n, err := unix.Poll(fds, 100)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return nil, err
		}
		if n == 0 {
			return nil, nil // Timeout
		}

		rn, err := unix.Read(t.inFd, buf)
		if err != nil {
			if err == unix.EINTR || err == unix.EAGAIN {
				continue
			}
			return nil, err
		}
		if rn == 0 {
			return nil, nil // EOF
		}

		ret := make([]byte, rn)
		copy(ret, buf[:rn])
		return ret, nil
	}
}

func (t *unixTTY) SetResizeHandler(handler func(width, height int)) {
	t.resizeStopCh = make(chan struct{})
	t.resizeDoneCh = make(chan struct{})

	go func() {
		defer close(t.resizeDoneCh)
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGWINCH)
		defer signal.Stop(sigCh)

		for {
			select {
			case <-t.resizeStopCh:
				return
			case <-sigCh:
				w, h := t.Size()
				handler(w, h)
			}
		}
	}()
}

// restoreCookedMode attempts to return the terminal to cooked mode via
// /dev/tty, which works even when stdin was redirected. Best-effort for
// crash recovery; errors ignored.
func restoreCookedMode() {
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return
	}
	defer tty.Close()
	fd := int(tty.Fd())
	if termios, err := unix.IoctlGetTermios(fd, ioctlGetTermios); err == nil {
		termios.Lflag |= unix.ECHO | unix.ICANON | unix.ISIG | unix.IEXTEN
		termios.Iflag |= unix.ICRNL
		unix.IoctlSetTermios(fd, ioctlSetTermios, termios)
	}
}
