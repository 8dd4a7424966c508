package ui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor          = lipgloss.Color("#7aa2f7")
	treeBlurBorderColor  = lipgloss.Color("#3b4261")
	treeFocusBorderColor = accentColor
	treeLineStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6"))
	treeSelectedActive   = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1a1b26")).
				Background(accentColor).
				Bold(true)
	treeSelectedInactive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#c0caf5")).
				Background(lipgloss.Color("#283457"))
	helpBoxStyle = lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Background(lipgloss.Color("#1f2335"))
	dropBoxStyle = lipgloss.NewStyle().
			Padding(2, 8).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderForeground(accentColor).
			Foreground(accentColor).
			Align(lipgloss.Center)
	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#a9b1d6")).
			Background(lipgloss.Color("#1f2335"))
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b"))
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#c0caf5")).Padding(0, 1)
	badgeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a9b1d6")).Background(lipgloss.Color("#283457")).Padding(0, 1)
	modeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#1a1b26")).Background(lipgloss.Color("#9ece6a")).Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#565f89")).Align(lipgloss.Center)
)

func treePanelStyle(color lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().
		Padding(0, 1).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(color)
}
