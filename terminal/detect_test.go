package terminal

import (
	"testing"
)

func TestDetectBackendExplicitPreference(t *testing.T) {
	clearKittyEnv(t)
	t.Setenv("KITTY_WINDOW_ID", "1")

	// An explicit preference wins even when probing would pick kitty
	b := DetectBackend(Options{Preferred: BackendAnsi})
	if b.Name() != "ansi" {
		t.Errorf("preferred ansi selected %q", b.Name())
	}

	clearKittyEnv(t)
	b = DetectBackend(Options{Preferred: BackendKitty})
	if b.Name() != "kitty" {
		t.Errorf("preferred kitty selected %q despite missing environment", b.Name())
	}
}

func TestDetectBackendProbing(t *testing.T) {
	clearKittyEnv(t)
	t.Setenv("KITTY_WINDOW_ID", "7")
	b := DetectBackend(Options{Preferred: BackendAuto})
	if b.Name() != "kitty" {
		t.Errorf("auto with kitty environment selected %q", b.Name())
	}
}

func TestDetectBackendFallback(t *testing.T) {
	clearKittyEnv(t)
	b := DetectBackend(Options{Preferred: BackendAuto, Fallback: BackendAnsi})
	if b.Name() != "ansi" {
		t.Errorf("fallback selected %q, want ansi", b.Name())
	}

	// Zero-value options still resolve to the universal backend
	b = DetectBackend(Options{})
	if b.Name() != "ansi" {
		t.Errorf("zero options selected %q, want ansi", b.Name())
	}
}
