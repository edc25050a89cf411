package tui

import (
	"github.com/charmbracelet/lipgloss"

	"fls/internal/config"
)

// Styles groups everything the view paints.
type Styles struct {
	Cursor       lipgloss.Style
	Mark         lipgloss.Style
	MarkSelected lipgloss.Style
	Dir          lipgloss.Style
	File         lipgloss.Style
	Selected     lipgloss.Style
	Highlight    lipgloss.Style
	Header       lipgloss.Style
	Badge        lipgloss.Style
	Dim          lipgloss.Style
	Error        lipgloss.Style
}

// NewStyles builds the styles for a theme. Empty colors fall back to the
// defaults from config.New.
func NewStyles(theme config.Theme) Styles {
	def := config.New().Theme
	if theme.Primary == "" {
		theme.Primary = def.Primary
	}
	if theme.Secondary == "" {
		theme.Secondary = def.Secondary
	}
	primary := lipgloss.Color(theme.Primary)
	secondary := lipgloss.Color(theme.Secondary)

	return Styles{
		Cursor:       lipgloss.NewStyle().Foreground(primary),
		Mark:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		MarkSelected: lipgloss.NewStyle().Foreground(secondary).Bold(true),
		Dir:          lipgloss.NewStyle().Foreground(primary).Bold(true),
		File:         lipgloss.NewStyle(),
		Selected:     lipgloss.NewStyle().Foreground(secondary),
		Highlight:    lipgloss.NewStyle().Foreground(lipgloss.Color("227")).Bold(true),
		Header:       lipgloss.NewStyle().Bold(true),
		Badge:        lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(primary).Padding(0, 1),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

// sizeStyle colors file sizes: red > orange > yellow > gray.
func sizeStyle(b int64) lipgloss.Style {
	const (
		MB = 1024 * 1024
		GB = 1024 * MB
	)
	switch {
	case b >= GB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	case b >= 100*MB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	case b >= MB:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("226"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	}
}
