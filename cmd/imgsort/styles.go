package main

import (
	"imgsort/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// cliStyles colors command output with the configured theme
type cliStyles struct {
	header lipgloss.Style
	dim    lipgloss.Style
	err    lipgloss.Style
}

func newCLIStyles(t config.Theme) cliStyles {
	return cliStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Primary)),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Info)),
		err:    lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),
	}
}
