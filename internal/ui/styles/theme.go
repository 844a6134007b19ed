package styles

import "github.com/charmbracelet/lipgloss"

// Common reusable styles built from the color tokens.
var (
	TextPrimaryStyle   = lipgloss.NewStyle().Foreground(TextPrimary)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(TextSecondary)
	TextDimStyle       = lipgloss.NewStyle().Foreground(TextDim)
	TitleStyle         = lipgloss.NewStyle().Foreground(TitleText).Bold(true)
	SelectedRowStyle   = lipgloss.NewStyle().Background(SelectedRowBg)

	LiveStyle    = lipgloss.NewStyle().Foreground(LiveIndicator).Bold(true)
	PagedStyle   = lipgloss.NewStyle().Foreground(StatusWarning).Bold(true)
	OfflineStyle = lipgloss.NewStyle().Foreground(TextDim)

	StatusRunningStyle = lipgloss.NewStyle().Foreground(StatusRunning)
	StatusSuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccess)
	StatusErrorStyle   = lipgloss.NewStyle().Foreground(StatusError)
)
