package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme colors - cold blue theme for a dilution fridge tool
var (
	PrimaryColor = lipgloss.Color("#5B9BD5") // Blue
	AccentColor  = lipgloss.Color("#00D4AA") // Teal accent

	SuccessColor = lipgloss.Color("#2ECC71") // Green
	WarningColor = lipgloss.Color("#F1C40F") // Yellow
	ErrorColor   = lipgloss.Color("#E74C3C") // Red
	InfoColor    = lipgloss.Color("#5B9BD5") // Blue

	TextColor    = lipgloss.Color("#FFFFFF") // White
	SubtextColor = lipgloss.Color("#B0B0B0") // Light gray
	MutedColor   = lipgloss.Color("#6C6C6C") // Dark gray
)

// Base styles
var (
	BoldStyle = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(InfoColor).
			Bold(true)

	WhiteStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	GrayStyle = lipgloss.NewStyle().
			Foreground(SubtextColor)

	MutedStyle = lipgloss.NewStyle().
			Foreground(MutedColor)

	AccentStyle = lipgloss.NewStyle().
			Foreground(AccentColor)
)
