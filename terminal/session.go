package terminal

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
)

// MouseMode controls which mouse events the terminal reports (bitmask)
type MouseMode uint8

const (
	MouseModeNone   MouseMode = 0
	MouseModeClick  MouseMode = 1 << 0 // Press/release events
	MouseModeDrag   MouseMode = 1 << 1 // Motion with a button held
	MouseModeMotion MouseMode = 1 << 2 // All motion events
)

// Session ties the pipeline together: raw-mode TTY in, decoded events out
// through the queue, cell buffer diffs out through the render backend. Raw
// mode and the alternate screen are entered exactly once in Init and
// restored exactly once across all exit paths; Fini is idempotent.
type Session struct {
	tty     TTY
	backend RenderBackend
	buffer  *CellBuffer
	queue   *InputEventQueue
	reader  *inputReader

	running atomic.Bool

	mu          sync.Mutex
	initialized bool
	finalized   bool
	mouseMode   MouseMode

	sigCh chan os.Signal
}

// NewSession selects a backend from the options and prepares a session over
// the process TTY
func NewSession(opts Options) *Session {
	return NewSessionWith(NewTTY(), DetectBackend(opts))
}

// NewSessionWith uses an explicit TTY and backend (tests, pty pairs)
func NewSessionWith(tty TTY, backend RenderBackend) *Session {
	queue := NewInputEventQueue(0)
	return &Session{
		tty:     tty,
		backend: backend,
		queue:   queue,
		reader:  newInputReader(tty, queue),
	}
}

// Init enters raw mode, emits the backend's startup sequence, sizes the
// cell buffer and starts the input reader. Calling it twice is a no-op.
func (s *Session) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	if err := s.tty.Init(); err != nil {
		return fmt.Errorf("terminal init: %w", err)
	}

	if err := s.tty.Write(s.backend.Init()); err != nil {
		s.tty.Fini()
		return fmt.Errorf("terminal init: %w", err)
	}

	w, h := s.tty.Size()
	s.buffer = NewCellBuffer(w, h)

	s.tty.SetResizeHandler(func(w, h int) {
		s.queue.Push(Event{Kind: KindResize, Width: w, Height: h})
	})

	// Restore the terminal on SIGINT/SIGTERM, then tell the application to
	// wind down through the queue
	s.sigCh = make(chan os.Signal, 1)
	signal.Notify(s.sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for range s.sigCh {
			s.queue.Push(Event{Kind: KindClosed})
			s.Fini()
		}
	}()

	s.reader.start()
	s.running.Store(true)
	s.initialized = true
	return nil
}

// Fini restores terminal state: mouse reporting off, backend cleanup
// sequence, raw mode undone. Safe to call multiple times and from signal
// paths; writes are best-effort since stdout may already be gone.
func (s *Session) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return
	}
	s.finalized = true
	s.running.Store(false)

	if s.sigCh != nil {
		signal.Stop(s.sigCh)
	}

	s.reader.stop()

	if s.mouseMode != MouseModeNone {
		s.tty.Write(mouseModeSequence(s.mouseMode, MouseModeNone))
	}
	s.tty.Write(s.backend.Cleanup())
	s.tty.Fini()
}

// Running reports whether the session is live; the render loop checks this
// flag each tick for cooperative shutdown
func (s *Session) Running() bool {
	return s.running.Load()
}

// Stop clears the running flag without touching the terminal; the
// application performs one final Fini afterwards
func (s *Session) Stop() {
	s.running.Store(false)
}

// Buffer returns the cell buffer writers mutate between frames
func (s *Session) Buffer() *CellBuffer {
	return s.buffer
}

// Events returns the input queue, drained once per tick
func (s *Session) Events() *InputEventQueue {
	return s.queue
}

// Backend returns the active render backend
func (s *Session) Backend() RenderBackend {
	return s.backend
}

// Size returns current terminal dimensions
func (s *Session) Size() (int, int) {
	return s.tty.Size()
}

// Resize reallocates the cell buffer for new dimensions; the next Render
// performs a full redraw
func (s *Session) Resize(w, h int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.buffer != nil {
		s.buffer.Resize(w, h)
	}
}

// Render diffs the buffer and writes the backend's minimal output for the
// frame. Synchronous: the bytes are written before it returns.
func (s *Session) Render() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return nil
	}

	changes := s.buffer.Diff()
	if len(changes) == 0 {
		return nil
	}
	out := s.backend.RenderBuffer(changes, s.buffer.Width(), s.buffer.Height())
	return s.tty.Write(out)
}

// SetMouseMode switches terminal mouse reporting; SGR extended coordinates
// are enabled alongside any reporting tier
func (s *Session) SetMouseMode(mode MouseMode) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized || s.finalized {
		return nil
	}
	old := s.mouseMode
	if old == mode {
		return nil
	}
	s.mouseMode = mode
	return s.tty.Write(mouseModeSequence(old, mode))
}

// mouseModeSequence emits the enables/disables to move between two modes.
// Disables go in reverse order of enables.
func mouseModeSequence(old, mode MouseMode) []byte {
	var out []byte

	if old&MouseModeMotion != 0 && mode&MouseModeMotion == 0 {
		out = append(out, csiMouseMotionOff...)
	}
	if old&MouseModeDrag != 0 && mode&MouseModeDrag == 0 {
		out = append(out, csiMouseDragOff...)
	}
	if old&MouseModeClick != 0 && mode&MouseModeClick == 0 {
		out = append(out, csiMouseClickOff...)
	}
	if mode == MouseModeNone && old != MouseModeNone {
		out = append(out, csiMouseSGROff...)
	}

	if mode != MouseModeNone && old == MouseModeNone {
		out = append(out, csiMouseSGROn...)
	}
	if mode&MouseModeClick != 0 && old&MouseModeClick == 0 {
		out = append(out, csiMouseClickOn...)
	}
	if mode&MouseModeDrag != 0 && old&MouseModeDrag == 0 {
		out = append(out, csiMouseDragOn...)
	}
	if mode&MouseModeMotion != 0 && old&MouseModeMotion == 0 {
		out = append(out, csiMouseMotionOn...)
	}
	return out
}

// EmergencyReset writes the sequences that restore a sane terminal. Call
// from panic recovery when Fini cannot run normally.
func EmergencyReset(w io.Writer) {
	w.Write(csiMouseMotionOff)
	w.Write(csiMouseDragOff)
	w.Write(csiMouseClickOff)
	w.Write(csiMouseSGROff)

	w.Write(csiSyncEnd)
	w.Write(csiCursorShow)
	w.Write(csiAltScreenExit)
	w.Write(csiSGR0)
	w.Write(csiAutoWrapOn)
	w.Write(csiRIS)

	if f, ok := w.(*os.File); ok {
		f.Sync()
	}

	// Escape sequences alone don't restore termios
	restoreCookedMode()
}
