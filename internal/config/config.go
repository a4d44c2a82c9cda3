// Package config holds themes, keybindings, and user settings for the
// blame navigator.
package config

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// PaletteSize is the number of distinct commit colors cycled through in
// the annotation gutter.
const PaletteSize = 8

// Config holds the application configuration.
type Config struct {
	Theme        Theme
	ThemePreset  ThemePreset
	HighContrast bool
	GutterWidth  int
	TabSize      int
	Keybindings  Keybindings
	LogFile      string
	LogLevel     string
}

// ThemePreset describes a named theme configuration.
type ThemePreset string

const (
	PresetDefault  ThemePreset = "default"
	PresetSolarize ThemePreset = "solarized"
	PresetDracula  ThemePreset = "dracula"
)

// Keybindings maps semantic actions to one or more key sequences.
type Keybindings map[string][]string

// Theme defines the color scheme for the application. Palette holds the
// commit colors in slot order; the selected commit's hunks render in the
// bold variant of their slot.
type Theme struct {
	Palette      [PaletteSize]lipgloss.Color
	GutterFg     lipgloss.Color
	ContentFg    lipgloss.Color
	LineNumberFg lipgloss.Color
	SelectionBg  lipgloss.Color
	BorderFg     lipgloss.Color
	TitleFg      lipgloss.Color
	TitleBg      lipgloss.Color
	HelpFg       lipgloss.Color
	NoticeFg     lipgloss.Color
	ErrorFg      lipgloss.Color
	AddedFg      lipgloss.Color
	RemovedFg    lipgloss.Color
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		ThemePreset:  PresetDefault,
		Theme:        ThemeForPreset(PresetDefault, false),
		HighContrast: false,
		GutterWidth:  40,
		TabSize:      4,
		Keybindings:  DefaultKeybindings(),
		LogLevel:     "info",
	}
}

// DefaultTheme returns the default color theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: [PaletteSize]lipgloss.Color{
			"#E6A3A3", "#A8E6A3", "#E6D8A3", "#A3C6E6",
			"#D3A3E6", "#A3E6DC", "#E6B88A", "#C0C0C0",
		},
		GutterFg:     lipgloss.Color("#888888"),
		ContentFg:    lipgloss.Color("#E0E0E0"),
		LineNumberFg: lipgloss.Color("#666666"),
		SelectionBg:  lipgloss.Color("#333355"),
		BorderFg:     lipgloss.Color("#3A3A3A"),
		TitleFg:      lipgloss.Color("#FFFFFF"),
		TitleBg:      lipgloss.Color("#5F5FAF"),
		HelpFg:       lipgloss.Color("#888888"),
		NoticeFg:     lipgloss.Color("#E6D8A3"),
		ErrorFg:      lipgloss.Color("#E6A3A3"),
		AddedFg:      lipgloss.Color("#A8E6A3"),
		RemovedFg:    lipgloss.Color("#E6A3A3"),
	}
}

// ThemeForPreset resolves a preset name to a concrete Theme, optionally
// applying a high-contrast variation.
func ThemeForPreset(preset ThemePreset, highContrast bool) Theme {
	switch preset {
	case PresetSolarize:
		return applyContrast(Theme{
			Palette: [PaletteSize]lipgloss.Color{
				"#DC322F", "#859900", "#B58900", "#268BD2",
				"#6C71C4", "#2AA198", "#CB4B16", "#93A1A1",
			},
			GutterFg:     lipgloss.Color("#586E75"),
			ContentFg:    lipgloss.Color("#93A1A1"),
			LineNumberFg: lipgloss.Color("#586E75"),
			SelectionBg:  lipgloss.Color("#073642"),
			BorderFg:     lipgloss.Color("#657B83"),
			TitleFg:      lipgloss.Color("#EEE8D5"),
			TitleBg:      lipgloss.Color("#586E75"),
			HelpFg:       lipgloss.Color("#93A1A1"),
			NoticeFg:     lipgloss.Color("#B58900"),
			ErrorFg:      lipgloss.Color("#DC322F"),
			AddedFg:      lipgloss.Color("#859900"),
			RemovedFg:    lipgloss.Color("#DC322F"),
		}, highContrast)
	case PresetDracula:
		return applyContrast(Theme{
			Palette: [PaletteSize]lipgloss.Color{
				"#FF79C6", "#50FA7B", "#F1FA8C", "#8BE9FD",
				"#BD93F9", "#FFB86C", "#FF5555", "#F8F8F2",
			},
			GutterFg:     lipgloss.Color("#6272A4"),
			ContentFg:    lipgloss.Color("#F8F8F2"),
			LineNumberFg: lipgloss.Color("#6272A4"),
			SelectionBg:  lipgloss.Color("#44475A"),
			BorderFg:     lipgloss.Color("#44475A"),
			TitleFg:      lipgloss.Color("#F8F8F2"),
			TitleBg:      lipgloss.Color("#6272A4"),
			HelpFg:       lipgloss.Color("#BD93F9"),
			NoticeFg:     lipgloss.Color("#F1FA8C"),
			ErrorFg:      lipgloss.Color("#FF5555"),
			AddedFg:      lipgloss.Color("#50FA7B"),
			RemovedFg:    lipgloss.Color("#FF79C6"),
		}, highContrast)
	default:
		return applyContrast(DefaultTheme(), highContrast)
	}
}

// DefaultKeybindings returns the built-in keybinding map.
func DefaultKeybindings() Keybindings {
	return Keybindings{
		"quit":          {"ctrl+c", "q"},
		"toggle_help":   {"?"},
		"scroll_down":   {"j", "down"},
		"scroll_up":     {"k", "up"},
		"page_down":     {"d"},
		"page_up":       {"u"},
		"go_top":        {"g"},
		"go_bottom":     {"G"},
		"switch_pane":   {"tab"},
		"reblame":       {"r"},
		"goto_parent":   {"p", "~"},
		"back":          {"b", "ctrl+o"},
		"forward":       {"f", "ctrl+i"},
		"commit_detail": {"enter"},
		"close_detail":  {"esc"},
	}
}

// MergeKeybindings overlays user overrides onto defaults.
func MergeKeybindings(overrides Keybindings) Keybindings {
	defaults := DefaultKeybindings()
	for action, keys := range overrides {
		if len(keys) == 0 {
			continue
		}
		defaults[action] = keys
	}
	return defaults
}

func applyContrast(theme Theme, highContrast bool) Theme {
	if !highContrast {
		return theme
	}

	for i, c := range theme.Palette {
		theme.Palette[i] = lipgloss.Color(adjustBrightness(string(c), 0.25))
	}
	theme.GutterFg = lipgloss.Color(adjustBrightness(string(theme.GutterFg), 0.2))
	theme.ContentFg = lipgloss.Color(adjustBrightness(string(theme.ContentFg), 0.2))
	theme.LineNumberFg = lipgloss.Color(adjustBrightness(string(theme.LineNumberFg), 0.2))
	theme.BorderFg = lipgloss.Color(adjustBrightness(string(theme.BorderFg), 0.2))
	theme.TitleFg = lipgloss.Color(adjustBrightness(string(theme.TitleFg), 0.2))
	theme.TitleBg = lipgloss.Color(adjustBrightness(string(theme.TitleBg), 0.2))
	theme.HelpFg = lipgloss.Color(adjustBrightness(string(theme.HelpFg), 0.2))
	theme.NoticeFg = lipgloss.Color(adjustBrightness(string(theme.NoticeFg), 0.25))
	theme.ErrorFg = lipgloss.Color(adjustBrightness(string(theme.ErrorFg), 0.25))
	theme.AddedFg = lipgloss.Color(adjustBrightness(string(theme.AddedFg), 0.25))
	theme.RemovedFg = lipgloss.Color(adjustBrightness(string(theme.RemovedFg), 0.25))
	return theme
}

func adjustBrightness(hex string, factor float64) string {
	if len(hex) != 7 || hex[0] != '#' {
		return hex
	}

	var r, g, b int
	_, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return hex
	}

	boost := func(value int) int {
		adjusted := float64(value) * (1 + factor)
		if adjusted > 255 {
			adjusted = 255
		}
		return int(adjusted)
	}

	return fmt.Sprintf("#%02x%02x%02x", boost(r), boost(g), boost(b))
}
