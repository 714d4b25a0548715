package terminal

// Options configures backend selection and emission. Every field has an
// explicit default; use DefaultOptions and override.
type Options struct {
	// Preferred forces a backend type; BackendAuto probes instead
	Preferred BackendType

	// Fallback is used when no probed backend matches
	Fallback BackendType

	// TrueColor enables 24-bit color sequences; off quantizes to 256 colors
	TrueColor bool

	// Images enables inline image transmission on backends that support it
	Images bool
}

// DefaultOptions returns the documented defaults: auto probing, ANSI
// fallback, truecolor from the environment, images on
func DefaultOptions() Options {
	return Options{
		Preferred: BackendAuto,
		Fallback:  BackendAnsi,
		TrueColor: DetectColorMode() == ColorModeTrueColor,
		Images:    true,
	}
}

// newBackendOf constructs the named backend type
func newBackendOf(t BackendType, opts Options) RenderBackend {
	switch t {
	case BackendKitty:
		return NewKittyBackend(opts)
	default:
		return NewAnsiBackend(opts)
	}
}

// DetectBackend selects the best render backend. An explicit non-auto
// preference is constructed unconditionally. Otherwise richer backends are
// probed in order and the fallback (default ANSI) is used when nothing
// matches. Pure selection: only environment variables are consulted, and it
// never fails since ANSI is always valid.
func DetectBackend(opts Options) RenderBackend {
	if opts.Preferred != "" && opts.Preferred != BackendAuto {
		return newBackendOf(opts.Preferred, opts)
	}
	if kitty := NewKittyBackend(opts); kitty.Detect() {
		return kitty
	}
	if opts.Fallback != "" && opts.Fallback != BackendAuto {
		return newBackendOf(opts.Fallback, opts)
	}
	return NewAnsiBackend(opts)
}
