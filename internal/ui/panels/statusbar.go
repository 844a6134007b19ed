package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mitosis-ai/mitosis/internal/memory"
	"github.com/mitosis-ai/mitosis/internal/monitor"
	"github.com/mitosis-ai/mitosis/internal/ui/styles"
	"github.com/mitosis-ai/mitosis/internal/ui/text"
)

const flashDurationVal = 5 * time.Second

// Version is set via -ldflags at build time. Falls back to "dev".
var Version = "dev"

// FlashDuration returns how long the status bar flash is shown.
func FlashDuration() time.Duration { return flashDurationVal }

// FlashLevel controls the icon and color of a status bar flash message.
type FlashLevel int

const (
	FlashInfo    FlashLevel = iota // blue ●
	FlashSuccess                   // green ✓
	FlashWarning                   // yellow ⚠
	FlashError                     // red ✗
)

type StatusBar struct {
	width       int
	store       *monitor.Store
	mem         *memory.Manager
	taskTitle   string
	wsConnected bool
	flash       string
	flashLevel  FlashLevel
	flashUntil  time.Time
}

func NewStatusBar(store *monitor.Store, mem *memory.Manager) StatusBar {
	return StatusBar{store: store, mem: mem}
}

func (s StatusBar) View() string {
	sep := styles.TextDimStyle.Render(" │ ")

	appName := styles.TextSecondaryStyle.Render("mitosis " + Version)

	task := styles.TextDimStyle.Render("sin tarea")
	if s.taskTitle != "" {
		task = styles.TextPrimaryStyle.Render(text.Truncate(s.taskTitle, 32))
	}

	var state string
	switch {
	case !s.store.Online():
		state = styles.OfflineStyle.Render("arrancando")
	case s.store.Live():
		state = styles.LiveStyle.Render("● live")
	default:
		state = styles.PagedStyle.Render("paged " + fmt.Sprintf("%d/%d", s.store.Index()+1, s.store.Len()))
	}

	conn := styles.StatusErrorStyle.Render("ws ✗")
	if s.wsConnected {
		conn = styles.StatusSuccessStyle.Render("ws ✓")
	}

	mem := styles.TextSecondaryStyle.Render(fmt.Sprintf("mem %d", s.mem.Count()))

	left := " " + appName + sep + task + sep + state + sep + conn + sep + mem

	if s.flash != "" && time.Now().Before(s.flashUntil) {
		var icon string
		var color lipgloss.TerminalColor
		switch s.flashLevel {
		case FlashSuccess:
			icon, color = "✓", styles.StatusSuccess
		case FlashError:
			icon, color = "✗", styles.StatusError
		case FlashWarning:
			icon, color = "⚠", styles.StatusWarning
		default: // FlashInfo
			icon, color = "●", styles.StatusRunning
		}
		flashStr := lipgloss.NewStyle().Foreground(color).Bold(true).Render(icon + " " + s.flash)
		left += sep + flashStr
	}

	right := styles.TextSecondaryStyle.Render("?:help") + " "

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := s.width - leftWidth - rightWidth
	if gap < 1 {
		gap = 1
	}

	return left + strings.Repeat(" ", gap) + right
}

func (s *StatusBar) SetTask(title string) {
	s.taskTitle = title
}

func (s *StatusBar) SetWSConnected(connected bool) {
	s.wsConnected = connected
}

func (s *StatusBar) SetFlash(msg string) {
	s.SetFlashWithLevel(msg, FlashInfo)
}

func (s *StatusBar) SetFlashWithLevel(msg string, level FlashLevel) {
	s.flash = msg
	s.flashLevel = level
	s.flashUntil = time.Now().Add(flashDurationVal)
}

func (s *StatusBar) ClearFlash() {
	s.flash = ""
	s.flashLevel = FlashInfo
	s.flashUntil = time.Time{}
}

func (s *StatusBar) SetSize(w int) {
	s.width = w
}
