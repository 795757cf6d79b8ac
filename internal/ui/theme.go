package ui

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	runningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true)
	entryStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	selectedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("236"))
	projectStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("110"))
	durationStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dirtyBadgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("230")).Background(lipgloss.Color("136")).Bold(true)
	promptStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
)
