package main

import (
	"folderpick/internal/config"

	"github.com/charmbracelet/lipgloss"
)

var (
	primaryStyle = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle()
	warningStyle = lipgloss.NewStyle()
	errorStyle   = lipgloss.NewStyle().Bold(true)
	infoStyle    = lipgloss.NewStyle()
	dimStyle     = lipgloss.NewStyle().Faint(true)
)

func init() {
	setTheme(config.New())
}

// setTheme colors CLI output with the configured theme
func setTheme(cfg *config.Config) {
	primaryStyle = primaryStyle.Foreground(lipgloss.Color(cfg.Theme.Primary))
	successStyle = successStyle.Foreground(lipgloss.Color(cfg.Theme.Success))
	warningStyle = warningStyle.Foreground(lipgloss.Color(cfg.Theme.Warning))
	errorStyle = errorStyle.Foreground(lipgloss.Color(cfg.Theme.Error))
	infoStyle = infoStyle.Foreground(lipgloss.Color(cfg.Theme.Info))
}

func primaryText(s string) string { return primaryStyle.Render(s) }
func successText(s string) string { return successStyle.Render(s) }
func warningText(s string) string { return warningStyle.Render(s) }
func errorText(s string) string   { return errorStyle.Render(s) }
func infoText(s string) string    { return infoStyle.Render(s) }
func dimText(s string) string     { return dimStyle.Render(s) }
