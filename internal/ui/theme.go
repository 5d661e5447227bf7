// Package ui holds the shared color tokens, icons and styles.
package ui

import "github.com/charmbracelet/lipgloss"

// ─── Color tokens ────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorBrand   = lipgloss.AdaptiveColor{Light: "#c2415a", Dark: "#E96479"}
	ColorText    = lipgloss.AdaptiveColor{Light: "#1f2937", Dark: "#e5e7eb"}
	ColorTextDim = lipgloss.AdaptiveColor{Light: "#4b5563", Dark: "#9ca3af"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#9ca3af", Dark: "#6b7280"}
	ColorSuccess = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarning = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorError   = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

// ─── Icons ───────────────────────────────────────────────────────────────────

const (
	IconCheck    = "✔"
	IconPointer  = "❯"
	IconQuestion = "?"
	IconError    = "✖"
	IconPipe     = "│"
)

// ─── Styles ──────────────────────────────────────────────────────────────────

// TitleStyle renders the app name in the header.
func TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(ColorBrand)
}

// HintBarStyle renders the key-hint footer.
func HintBarStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
}

// TagWarningStyle renders small inverse warning badges.
func TagWarningStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#000000")).
		Background(ColorWarning)
}

// DoneStyle renders deleted records.
func DoneStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorSuccess)
}

// ErrorStyle renders error lines.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(ColorError)
}
