// Package tui renders the interactive storefront browser on top of the
// install registry: catalog list, live install progress and logs, recent
// history, and transient toasts.
package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds the cached lipgloss styles used by the browser.
type Styles struct {
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Info    lipgloss.Color
	Muted   lipgloss.Color

	Header   lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Badge    lipgloss.Style
	Done     lipgloss.Style
	Failed   lipgloss.Style
	Running  lipgloss.Style
	Dim      lipgloss.Style
	Toast    lipgloss.Style
	LogPane  lipgloss.Style
	Footer   lipgloss.Style
}

// NewStyles builds the default Tokyo Night styling.
func NewStyles() *Styles {
	success := lipgloss.Color("#9ece6a")
	warning := lipgloss.Color("#e0af68")
	errColor := lipgloss.Color("#f7768e")
	info := lipgloss.Color("#7dcfff")
	muted := lipgloss.Color("#565f89")
	primary := lipgloss.Color("#7aa2f7")
	background := lipgloss.Color("#1a1b26")

	return &Styles{
		Success: success,
		Warning: warning,
		Error:   errColor,
		Info:    info,
		Muted:   muted,

		Header: lipgloss.NewStyle().
			Background(primary).
			Foreground(background).
			Bold(true).
			Padding(0, 1),
		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Normal:  lipgloss.NewStyle(),
		Badge:   lipgloss.NewStyle().Foreground(info),
		Done:    lipgloss.NewStyle().Foreground(success),
		Failed:  lipgloss.NewStyle().Foreground(errColor),
		Running: lipgloss.NewStyle().Foreground(warning),
		Dim:     lipgloss.NewStyle().Foreground(muted),
		Toast: lipgloss.NewStyle().
			Foreground(background).
			Background(warning).
			Padding(0, 1),
		LogPane: lipgloss.NewStyle().
			Foreground(muted).
			PaddingLeft(4),
		Footer: lipgloss.NewStyle().
			Foreground(muted).
			MarginTop(1),
	}
}
