package tui

import "github.com/charmbracelet/lipgloss"

// theme is the fixed color palette for the status inspector. keyrxd has
// no themable surface of its own to configure, so unlike the teacher's
// multi-theme TUI, keyrxctl ships a single palette.
type theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Dimmed    lipgloss.Color
	Text      lipgloss.Color
}

var defaultTheme = theme{
	Primary:   lipgloss.Color("#7FBBB3"),
	Secondary: lipgloss.Color("#A7C080"),
	Error:     lipgloss.Color("#E67E80"),
	Success:   lipgloss.Color("#83C092"),
	Warning:   lipgloss.Color("#DBBC7F"),
	Dimmed:    lipgloss.Color("#859289"),
	Text:      lipgloss.Color("#D3C6AA"),
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(defaultTheme.Primary)
	nameStyle  = lipgloss.NewStyle().Foreground(defaultTheme.Text).Bold(true)
	okStyle    = lipgloss.NewStyle().Foreground(defaultTheme.Success)
	badStyle   = lipgloss.NewStyle().Foreground(defaultTheme.Error)
	warnStyle  = lipgloss.NewStyle().Foreground(defaultTheme.Warning)
	dimStyle   = lipgloss.NewStyle().Foreground(defaultTheme.Dimmed)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(defaultTheme.Secondary).
			Padding(0, 1)
)
