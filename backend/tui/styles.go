package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	subtle = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	stripe = lipgloss.AdaptiveColor{Light: "#F2F2F2", Dark: "#1F1F24"}
	frozen = lipgloss.AdaptiveColor{Light: "#E8E8F5", Dark: "#26263A"}
)

// Styles styles the regions of the terminal grid.
type Styles struct {
	Header       lipgloss.Style
	FrozenHeader lipgloss.Style
	Cell         lipgloss.Style
	Stripe       lipgloss.Style
	Frozen       lipgloss.Style
	Status       lipgloss.Style
	Resizing     lipgloss.Style
}

// DefaultStyles returns the built-in theme.
func DefaultStyles() Styles {
	return Styles{
		Header:       lipgloss.NewStyle().Bold(true).Foreground(accent),
		FrozenHeader: lipgloss.NewStyle().Bold(true).Foreground(accent).Background(frozen),
		Cell:         lipgloss.NewStyle(),
		Stripe:       lipgloss.NewStyle().Background(stripe),
		Frozen:       lipgloss.NewStyle().Background(frozen),
		Status:       lipgloss.NewStyle().Foreground(subtle),
		Resizing:     lipgloss.NewStyle().Foreground(accent).Bold(true),
	}
}
