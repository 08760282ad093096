// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for human output.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTTY redraws the progress line in place.
	ModeTTY
	// ModeLinear prints one line per event, for CI logs and pipes.
	ModeLinear
)

// String returns the flag spelling of the mode.
func (m OutputMode) String() string {
	switch m {
	case ModeTTY:
		return "tty"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns the recommended output mode based on the environment.
// It checks if stdout is a TTY and if CI environment variables are set.
func DetectEnvironment() OutputMode {
	if isCI() || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeLinear
	}
	return ModeTTY
}

// ResolveMode applies the --output flag to auto-detection.
// userFlag should be one of: "auto", "tty", "linear", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "tty":
		return ModeTTY
	case "linear", "ci":
		return ModeLinear
	default:
		return autoDetected
	}
}

// ValidFlag reports whether s is an accepted --output value.
func ValidFlag(s string) bool {
	switch s {
	case "", "auto", "tty", "linear", "ci":
		return true
	}
	return false
}

func isCI() bool {
	ci := os.Getenv("CI")
	return ci == "true" || ci == "1"
}
