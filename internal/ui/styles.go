package ui

import "github.com/charmbracelet/lipgloss"

// Icon constants
const (
	DemonIcon     = "😈"
	HumanIcon     = "🧑"
	OwnerIcon     = "👑"
	OfflineIcon   = "📴"
	ExorcisedIcon = "🕯️"
	PurifiedIcon  = "💧"
	WardedIcon    = "🧂"
	DamnedIcon    = "🔥"
)

// Lipgloss Styles
var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true).Render
	boxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	demonStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("161")).Bold(true)
	phaseStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	chatStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	whisperSty  = lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Italic(true)
	promptStyle = lipgloss.NewStyle().MarginTop(1)
)
