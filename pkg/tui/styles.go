package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorNeonGreen = lipgloss.Color("#00FF99") // match / added
	colorPurple    = lipgloss.Color("#874BFD") // header / border
	colorTextMain  = lipgloss.Color("#E2E8F0")
	colorTextSub   = lipgloss.Color("#64748B")
	colorDanger    = lipgloss.Color("#FF0055") // deleted
	colorWarning   = lipgloss.Color("#F59E0B") // modified

	subtle    = lipgloss.NewStyle().Foreground(colorTextSub)
	dimStyle  = lipgloss.NewStyle().Foreground(colorTextSub)
	special   = lipgloss.NewStyle().Foreground(colorNeonGreen).Bold(true)
	danger    = lipgloss.NewStyle().Foreground(colorDanger).Bold(true)
	warning   = lipgloss.NewStyle().Foreground(colorWarning)
	highlight = lipgloss.NewStyle().Foreground(colorPurple).Bold(true)

	titleStyle = lipgloss.NewStyle().
			Foreground(colorPurple).
			Bold(true).
			Padding(0, 1)

	hudStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPurple).
			Padding(0, 1).
			Foreground(colorTextMain)

	hudLabelStyle = lipgloss.NewStyle().
			Foreground(colorTextSub).
			Bold(true).
			MarginRight(1)

	hudValueStyle = lipgloss.NewStyle().
			Foreground(colorNeonGreen).
			Bold(true)

	listSelectedStyle = lipgloss.NewStyle().
				Foreground(colorTextMain).
				Background(lipgloss.Color("#331832")).
				Bold(true)

	listNormalStyle = lipgloss.NewStyle().
			Foreground(colorTextSub)

	iconDeleted  = lipgloss.NewStyle().Foreground(colorDanger).SetString("[DEL]")
	iconAdded    = lipgloss.NewStyle().Foreground(colorNeonGreen).SetString("[ADD]")
	iconModified = lipgloss.NewStyle().Foreground(colorWarning).SetString("[MOD]")

	detailsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(colorNeonGreen).
			Padding(1, 2).
			MarginTop(1)

	detailsHeaderStyle = lipgloss.NewStyle().
				Foreground(colorPurple).
				Bold(true).
				Underline(true).
				MarginBottom(1)

	helpStyle = lipgloss.NewStyle().Foreground(colorTextSub).Render
)
