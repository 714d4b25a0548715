// Package config loads render options from a TOML file and environment
// overrides. Every option has an explicit default; absent file or fields
// leave the defaults intact.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lixenwraith/termkit/terminal"
)

// fileConfig mirrors the TOML layout; pointer fields distinguish "absent"
// from an explicit false
type fileConfig struct {
	Backend struct {
		Preferred string `toml:"preferred"`
		Fallback  string `toml:"fallback"`
	} `toml:"backend"`
	Render struct {
		TrueColor *bool `toml:"truecolor"`
		Images    *bool `toml:"images"`
	} `toml:"render"`
}

// Load builds options from defaults, then the TOML file at path (skipped
// when path is empty or the file does not exist), then TERMKIT_* env vars
func Load(path string) (terminal.Options, error) {
	opts := terminal.DefaultOptions()

	if path != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(path, &fc); err != nil {
			if !os.IsNotExist(err) {
				return opts, fmt.Errorf("load config %s: %w", path, err)
			}
		} else {
			if t, err := backendType(fc.Backend.Preferred); err != nil {
				return opts, fmt.Errorf("load config %s: %w", path, err)
			} else if t != "" {
				opts.Preferred = t
			}
			if t, err := backendType(fc.Backend.Fallback); err != nil {
				return opts, fmt.Errorf("load config %s: %w", path, err)
			} else if t != "" {
				opts.Fallback = t
			}
			if fc.Render.TrueColor != nil {
				opts.TrueColor = *fc.Render.TrueColor
			}
			if fc.Render.Images != nil {
				opts.Images = *fc.Render.Images
			}
		}
	}

	return FromEnv(opts), nil
}

// FromEnv applies TERMKIT_BACKEND, TERMKIT_FALLBACK, TERMKIT_TRUECOLOR and
// TERMKIT_IMAGES on top of the given options; malformed values are ignored
func FromEnv(opts terminal.Options) terminal.Options {
	if v := os.Getenv("TERMKIT_BACKEND"); v != "" {
		if t, err := backendType(v); err == nil && t != "" {
			opts.Preferred = t
		}
	}
	if v := os.Getenv("TERMKIT_FALLBACK"); v != "" {
		if t, err := backendType(v); err == nil && t != "" {
			opts.Fallback = t
		}
	}
	if v := os.Getenv("TERMKIT_TRUECOLOR"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.TrueColor = b
		}
	}
	if v := os.Getenv("TERMKIT_IMAGES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			opts.Images = b
		}
	}
	return opts
}

// backendType validates a backend name; empty input returns the empty type
func backendType(s string) (terminal.BackendType, error) {
	switch strings.ToLower(s) {
	case "":
		return "", nil
	case "auto":
		return terminal.BackendAuto, nil
	case "ansi":
		return terminal.BackendAnsi, nil
	case "kitty":
		return terminal.BackendKitty, nil
	}
	return "", fmt.Errorf("unknown backend type %q", s)
}
