package terminal

import (
	"fmt"
	"os"
	"runtime/debug"
	"sync"
)

// inputReader owns the raw byte stream: it feeds mouse and key decoders in
// order and queues the structured events. One partial sequence at the tail
// simply defers output until more bytes arrive.
type inputReader struct {
	tty   TTY
	queue *InputEventQueue
	mouse MouseDecoder

	stopCh  chan struct{}
	doneCh  chan struct{}
	mu      sync.Mutex
	running bool

	// Persistent buffer for stream assembly across reads
	buf []byte
}

func newInputReader(tty TTY, queue *InputEventQueue) *inputReader {
	return &inputReader{
		tty:    tty,
		queue:  queue,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
		buf:    make([]byte, 0, 256),
	}
}

func (r *inputReader) start() {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return
	}
	r.running = true
	r.mu.Unlock()

	go r.readLoop()
}

func (r *inputReader) stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	r.mu.Unlock()

	close(r.stopCh)
	<-r.doneCh
}

func (r *inputReader) readLoop() {
	defer close(r.doneCh)

	// The reader owns the terminal's raw mode; a panic here must not leave
	// the user's shell broken
	defer func() {
		if rec := recover(); rec != nil {
			EmergencyReset(os.Stdout)
			fmt.Fprintf(os.Stderr, "\r\ninput reader crashed: %v\r\n%s\r\n", rec, debug.Stack())
			os.Exit(1)
		}
	}()

	for {
		data, err := r.tty.Read(r.stopCh)
		if err != nil {
			r.queue.Push(Event{Kind: KindError, Err: err})
			return
		}

		if len(data) == 0 {
			// Poll timeout: a quiet stream resolves a pending lone ESC into
			// a literal Escape press
			if len(r.buf) == 1 && r.buf[0] == 0x1b {
				r.queue.Push(Event{Kind: KindKey, Key: keyEvent("escape", 0, []byte{0x1b})})
				r.buf = r.buf[:0]
			}
			select {
			case <-r.stopCh:
				r.queue.Push(Event{Kind: KindClosed})
				return
			default:
				continue
			}
		}

		r.buf = append(r.buf, data...)
		consumed := r.parse()
		if consumed > 0 {
			if consumed >= len(r.buf) {
				r.buf = r.buf[:0]
			} else {
				copy(r.buf, r.buf[consumed:])
				r.buf = r.buf[:len(r.buf)-consumed]
			}
		}
	}
}

// parse decodes as many events as the buffer allows and returns the bytes
// consumed. Mouse reports are tried first; on no-match the same bytes fall
// through to key decoding.
func (r *inputReader) parse() int {
	i := 0
	n := len(r.buf)

	for i < n {
		if r.buf[i] == 0x1b {
			mev, mn, st := r.mouse.Decode(r.buf[i:])
			switch st {
			case MouseMatched:
				r.queue.Push(Event{Kind: KindMouse, Mouse: mev})
				i += mn
				continue
			case MouseIncomplete:
				return i
			}
		}

		kev, kn, emit := decodeOneKey(r.buf[i:])
		if kn == 0 {
			return i
		}
		if emit {
			kev.Raw = append([]byte(nil), kev.Raw...)
			r.queue.Push(Event{Kind: KindKey, Key: kev})
		}
		i += kn
	}
	return i
}
