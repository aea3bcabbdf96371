package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Minimal color palette
var (
	DimColor    = lipgloss.Color("#6c6c6c")
	TextColor   = lipgloss.Color("#e0e0e0")
	AccentColor = lipgloss.Color("#7aa2f7")
	ErrorColor  = lipgloss.Color("#f7768e")
	FolderColor = lipgloss.Color("#e0af68")
	MethodColor = lipgloss.Color("#9ece6a")
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	CollectionStyle = lipgloss.NewStyle().
			Foreground(TextColor).
			Bold(true)

	FolderStyle = lipgloss.NewStyle().
			Foreground(FolderColor)

	MethodStyle = lipgloss.NewStyle().
			Foreground(MethodColor).
			Width(7)

	EndpointStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	PromptStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(AccentColor)

	InputAreaStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderLeft(true).
			BorderForeground(AccentColor).
			PaddingLeft(1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(DimColor)

	ShortcutKeyStyle = lipgloss.NewStyle().
				Foreground(TextColor)

	ShortcutDescStyle = lipgloss.NewStyle().
				Foreground(DimColor)
)

// Tree prefixes
const (
	SelectedPrefix = "> "
	IndentUnit     = "  "
)
