// Package style holds the colors and glyphs shared by the logger and the
// linear renderer.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Status glyphs.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Arrow   = "→"
	Dot     = "●"
	Circle  = "○"
)

// Working copy table markers.
const (
	// Current flags the working copy the command runs in.
	Current = "*"
	// Drifted trails a manifest fingerprint that differs from the current copy's.
	Drifted = "*"
)
