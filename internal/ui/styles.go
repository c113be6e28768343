// Package ui provides terminal styling for claude-hooks output.
package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/randalmurphal/claude-hooks/internal/hooks"
)

// Palette.
var (
	ColorPass   = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#f2ae49", Dark: "#ffb454"}
	ColorFail   = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
	ColorAccent = lipgloss.AdaptiveColor{Light: "#399ee6", Dark: "#59c2ff"}
)

var (
	// Success style for positive outcomes (green)
	Success = lipgloss.NewStyle().Foreground(ColorPass).Bold(true)

	// Warning style for cautionary messages (yellow)
	Warning = lipgloss.NewStyle().Foreground(ColorWarn).Bold(true)

	// Error style for failures (red)
	Error = lipgloss.NewStyle().Foreground(ColorFail).Bold(true)

	// Info style for informational messages (blue)
	Info = lipgloss.NewStyle().Foreground(ColorAccent)

	// Dim style for secondary information (gray)
	Dim = lipgloss.NewStyle().Foreground(ColorMuted)

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// State icons.
const (
	IconActive   = "●"
	IconDisabled = "○"
	IconAbsent   = "·"
	IconPass     = "✓"
	IconWarn     = "⚠"
	IconFail     = "✗"
)

// StateIcon returns the plain icon for a hook state.
func StateIcon(s hooks.State) string {
	switch s {
	case hooks.StateActive:
		return IconActive
	case hooks.StateDisabled:
		return IconDisabled
	default:
		return IconAbsent
	}
}

// StateBadge renders the icon and name of a state, coloured by state.
func StateBadge(s hooks.State) string {
	text := StateIcon(s) + " " + s.String()
	switch s {
	case hooks.StateActive:
		return Success.Render(text)
	case hooks.StateDisabled:
		return Warning.Render(text)
	default:
		return Dim.Render(text)
	}
}
