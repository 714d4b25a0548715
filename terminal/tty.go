package terminal

// TTY abstracts platform-specific terminal I/O: raw-mode lifecycle, sizing,
// byte reads and writes
type TTY interface {
	// Init enters raw mode
	Init() error

	// Fini restores the saved terminal mode. Safe to call multiple times.
	Fini()

	// Size returns current terminal dimensions in cells
	Size() (width, height int)

	// Write writes raw bytes to the terminal output
	Write(p []byte) error

	// Read blocks until input is available, the stop channel is closed, or
	// an error occurs. A nil, nil return means a poll timeout or stop.
	Read(stopCh <-chan struct{}) ([]byte, error)

	// SetResizeHandler registers a callback for terminal resize events
	SetResizeHandler(handler func(width, height int))
}
