package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/gubarz/ssmlkit/internal/config"
)

// StyleManager encapsulates all TUI styles
type StyleManager struct {
	Header   lipgloss.Style
	Desc     lipgloss.Style
	Path     lipgloss.Style
	Speech   lipgloss.Style
	Markup   lipgloss.Style
	Error    lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style
	Divider  lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Header:   lipgloss.NewStyle().Bold(true),
		Desc:     lipgloss.NewStyle().Italic(true),
		Path:     lipgloss.NewStyle(),
		Speech:   lipgloss.NewStyle(),
		Markup:   lipgloss.NewStyle(),
		Error:    lipgloss.NewStyle(),
		Selected: lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Cursor:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Divider:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	headerColor := parseANSIColor(config.GetColorHeader())
	speechColor := parseANSIColor(config.GetColorSpeech())
	errorColor := parseANSIColor(config.GetColorError())
	dimColor := parseANSIColor(config.GetColorDim())
	borderColor := parseANSIColor(config.GetColorBorder())

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(headerColor)
	s.Path = lipgloss.NewStyle().Foreground(dimColor)
	s.Speech = lipgloss.NewStyle().Foreground(speechColor)
	s.Error = lipgloss.NewStyle().Foreground(errorColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
}

// parseANSIColor converts ANSI SGR color codes to lipgloss colors.
// Anything else (256-color index, hex) is passed through.
func parseANSIColor(code string) lipgloss.Color {
	ansiToLipgloss := map[string]string{
		"30": "0", "31": "1", "32": "2", "33": "3",
		"34": "4", "35": "5", "36": "6", "37": "7",
		"90": "8", "91": "9", "92": "10", "93": "11",
		"94": "12", "95": "13", "96": "14", "97": "15",
	}
	if mapped, ok := ansiToLipgloss[code]; ok {
		return lipgloss.Color(mapped)
	}
	return lipgloss.Color(code)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
