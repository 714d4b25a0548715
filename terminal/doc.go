// Package terminal provides direct ANSI terminal control with diff-based rendering.
//
// Features:
//   - True color (24-bit) and 256-color palette output
//   - Cell buffer with shadow-copy diffing and minimal escape output
//   - Pluggable render backends (universal ANSI, kitty/wezterm extensions)
//   - Raw stdin decoding of keys (CSI/SS3) and mouse (X10, UTF-8, SGR)
//   - SIGWINCH resize detection
//   - Clean terminal restoration on exit/panic
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI sequences.
// Target environments: Linux, macOS, BSDs with xterm-compatible terminals.
package terminal
