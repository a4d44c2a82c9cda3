package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/cj3636/gblame/internal/config"
)

// Styles holds all the lipgloss styles
type Styles struct {
	slots     [config.PaletteSize]lipgloss.Style
	slotsBold [config.PaletteSize]lipgloss.Style

	content    lipgloss.Style
	selected   lipgloss.Style
	lineNumber lipgloss.Style
	title      lipgloss.Style
	help       lipgloss.Style
	statusBar  lipgloss.Style
	notice     lipgloss.Style
	errText    lipgloss.Style
	added      lipgloss.Style
	removed    lipgloss.Style
	modal      lipgloss.Style
}

// createStyles initializes all lipgloss styles based on theme
func createStyles(theme config.Theme) *Styles {
	s := &Styles{
		content: lipgloss.NewStyle().
			Foreground(theme.ContentFg),
		selected: lipgloss.NewStyle().
			Background(theme.SelectionBg),
		lineNumber: lipgloss.NewStyle().
			Foreground(theme.LineNumberFg).
			Width(6).
			Align(lipgloss.Right),
		title: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Bold(true).
			Padding(0, 1),
		help: lipgloss.NewStyle().
			Foreground(theme.HelpFg).
			Italic(true),
		statusBar: lipgloss.NewStyle().
			Foreground(theme.TitleFg).
			Background(theme.TitleBg).
			Padding(0, 1),
		notice: lipgloss.NewStyle().
			Foreground(theme.NoticeFg).
			Italic(true),
		errText: lipgloss.NewStyle().
			Foreground(theme.ErrorFg).
			Bold(true),
		added: lipgloss.NewStyle().
			Foreground(theme.AddedFg),
		removed: lipgloss.NewStyle().
			Foreground(theme.RemovedFg),
		modal: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderFg).
			Padding(1, 2),
	}

	for i, c := range theme.Palette {
		s.slots[i] = lipgloss.NewStyle().Foreground(c)
		s.slotsBold[i] = lipgloss.NewStyle().Foreground(c).Bold(true)
	}

	return s
}

// slotStyle returns the style for a palette slot; bold variants mark
// the hunk under the cursor. Out-of-range slots fall back to the plain
// gutter color.
func (s *Styles) slotStyle(slot int, bold bool) lipgloss.Style {
	if slot < 0 || slot >= len(s.slots) {
		return s.content
	}
	if bold {
		return s.slotsBold[slot]
	}
	return s.slots[slot]
}
