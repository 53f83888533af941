package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#f5f5f5")).Background(lipgloss.Color("#333333")).Padding(0, 2)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("#ffffff")).Padding(0, 1)
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e0b050"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#777777"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#e05050"))
	lightboxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 3)
	imageStyle     = lipgloss.NewStyle().PaddingLeft(4)
)
