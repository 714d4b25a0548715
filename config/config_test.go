package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/termkit/terminal"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"TERMKIT_BACKEND", "TERMKIT_FALLBACK", "TERMKIT_TRUECOLOR", "TERMKIT_IMAGES",
	} {
		t.Setenv(k, "")
	}
	// Pin color detection so defaults are stable
	t.Setenv("COLORTERM", "truecolor")
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "termkit.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	opts, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if opts.Preferred != terminal.BackendAuto {
		t.Errorf("preferred = %q, want auto", opts.Preferred)
	}
	if opts.Fallback != terminal.BackendAnsi {
		t.Errorf("fallback = %q, want ansi", opts.Fallback)
	}
	if !opts.TrueColor {
		t.Error("truecolor off despite COLORTERM=truecolor")
	}
	if !opts.Images {
		t.Error("images off by default")
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	opts, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if opts.Preferred != terminal.BackendAuto {
		t.Errorf("preferred = %q, want auto", opts.Preferred)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[backend]
preferred = "kitty"
fallback = "ansi"

[render]
truecolor = false
`)
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if opts.Preferred != terminal.BackendKitty {
		t.Errorf("preferred = %q, want kitty", opts.Preferred)
	}
	if opts.TrueColor {
		t.Error("truecolor on despite explicit false")
	}
	if !opts.Images {
		t.Error("unset images field changed the default")
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[backend]
preferred = "sixel"
`)
	if _, err := Load(path); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, `
[backend]
preferred = "kitty"
`)
	t.Setenv("TERMKIT_BACKEND", "ansi")
	t.Setenv("TERMKIT_TRUECOLOR", "false")
	t.Setenv("TERMKIT_IMAGES", "0")

	opts, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if opts.Preferred != terminal.BackendAnsi {
		t.Errorf("preferred = %q, want env override ansi", opts.Preferred)
	}
	if opts.TrueColor {
		t.Error("truecolor env override ignored")
	}
	if opts.Images {
		t.Error("images env override ignored")
	}
}

func TestFromEnvIgnoresMalformedValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TERMKIT_BACKEND", "not-a-backend")
	t.Setenv("TERMKIT_TRUECOLOR", "maybe")

	opts := FromEnv(terminal.DefaultOptions())
	if opts.Preferred != terminal.BackendAuto {
		t.Errorf("malformed backend changed preference to %q", opts.Preferred)
	}
	if !opts.TrueColor {
		t.Error("malformed bool changed truecolor")
	}
}
