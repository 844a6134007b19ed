package layout

// Layout holds the computed dimensions for all panels.
type Layout struct {
	TermWidth  int
	TermHeight int
	TooSmall   bool

	// Top row panels
	PlanWidth     int
	PlanHeight    int
	MonitorWidth  int
	MonitorHeight int

	// Bottom row panel
	MemoryWidth  int
	MemoryHeight int

	// Chat input row and status bar
	ChatWidth      int
	StatusBarWidth int
}

const (
	MinWidth  = 80
	MinHeight = 24

	TopRowWeight  = 0.72
	LeftColWeight = 0.34
)

// Calculate computes panel dimensions from terminal size.
// Subtracts 1 row each for the chat input and the status bar before splitting.
// Returns Layout with TooSmall=true if under minimum.
func Calculate(termWidth, termHeight int) Layout {
	l := Layout{
		TermWidth:  termWidth,
		TermHeight: termHeight,
	}

	if termWidth < MinWidth || termHeight < MinHeight {
		l.TooSmall = true
		return l
	}

	usableHeight := termHeight - 2 // chat input + status bar

	topRowHeight := int(float64(usableHeight) * TopRowWeight)
	bottomRowHeight := usableHeight - topRowHeight

	planWidth := int(float64(termWidth) * LeftColWeight)
	monitorWidth := termWidth - planWidth

	l.PlanWidth = planWidth
	l.PlanHeight = topRowHeight
	l.MonitorWidth = monitorWidth
	l.MonitorHeight = topRowHeight

	l.MemoryWidth = termWidth
	l.MemoryHeight = bottomRowHeight

	l.ChatWidth = termWidth
	l.StatusBarWidth = termWidth

	return l
}
