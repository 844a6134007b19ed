package panels

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mitosis-ai/mitosis/internal/monitor"
	"github.com/mitosis-ai/mitosis/internal/report"
	"github.com/mitosis-ai/mitosis/internal/ui/border"
	"github.com/mitosis-ai/mitosis/internal/ui/styles"
	"github.com/mitosis-ai/mitosis/internal/ui/text"
)

const gTimeout = 300 * time.Millisecond

// GTimerExpiredMsg is sent when the gg double-tap window expires.
type GTimerExpiredMsg struct{}

// MonitorView displays one execution page at a time. While the store is
// offline it renders the boot sequence instead. Navigation keys page
// through history; paging away from the newest page drops live follow
// until G re-arms it.
type MonitorView struct {
	viewport viewport.Model
	width    int
	height   int

	store *monitor.Store
	seq   *monitor.Sequencer
	spin  spinner.Model

	focused     bool
	gPending    bool
	scrollSpeed int
	showMeta    bool

	// Cache key for the rendered page so viewport offset survives
	// refreshes of the same page.
	renderedID string
}

func NewMonitorView(store *monitor.Store, seq *monitor.Sequencer) MonitorView {
	vp := viewport.New(0, 0)
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	sp.Style = lipgloss.NewStyle().Foreground(styles.StatusRunning)
	return MonitorView{
		viewport:    vp,
		store:       store,
		seq:         seq,
		spin:        sp,
		scrollSpeed: 3,
		showMeta:    true,
	}
}

func (m MonitorView) Init() tea.Cmd {
	return m.spin.Tick
}

func (m MonitorView) Update(msg tea.Msg) (MonitorView, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case MonitorUpdatedMsg:
		m.Refresh()
		return m, nil

	case GTimerExpiredMsg:
		m.gPending = false
		return m, nil

	case tea.KeyMsg:
		if !m.store.Online() {
			return m, nil
		}
		switch msg.String() {
		case "h", "left":
			m.store.Prev()
			m.Refresh()
			return m, nil
		case "l", "right":
			m.store.Next()
			m.Refresh()
			return m, nil
		case "G":
			m.store.GoLive()
			m.Refresh()
			return m, nil
		case "g":
			if m.gPending {
				m.gPending = false
				m.store.GoToStart()
				m.Refresh()
				return m, nil
			}
			m.gPending = true
			return m, tea.Tick(gTimeout, func(time.Time) tea.Msg {
				return GTimerExpiredMsg{}
			})
		case "y":
			if p, ok := m.store.Current(); ok {
				content := p.Content
				return m, func() tea.Msg { return YankMsg{Text: content} }
			}
			return m, nil
		case "e":
			if p, ok := m.store.Current(); ok && p.Type == monitor.PageReport {
				return m, func() tea.Msg { return ExportReportMsg{} }
			}
			return m, nil
		case "j", "down":
			m.viewport.SetYOffset(m.viewport.YOffset + m.step())
			return m, nil
		case "k", "up":
			offset := m.viewport.YOffset - m.step()
			if offset < 0 {
				offset = 0
			}
			m.viewport.SetYOffset(offset)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m MonitorView) View() string {
	title := m.title()

	var keybinds []border.Keybind
	var content string

	if !m.store.Online() {
		content = m.bootView()
	} else {
		content = m.viewport.View()
		if m.showMeta {
			if footer := m.metaFooter(); footer != "" {
				content += "\n" + footer
			}
		}
		if m.focused {
			keybinds = []border.Keybind{
				{Key: "h", Label: "/l pages"},
				{Key: "G", Label: " live"},
				{Key: "g", Label: "g first"},
				{Key: "y", Label: "ank"},
			}
			if p, ok := m.store.Current(); ok && p.Type == monitor.PageReport {
				keybinds = append(keybinds, border.Keybind{Key: "e", Label: "xport"})
			}
		}
	}

	return border.RenderPanel(title, content, keybinds, m.width, m.height, m.focused)
}

func (m *MonitorView) SetSize(w, h int) {
	m.width = w
	m.height = h
	innerW := w - 2
	innerH := h - 2
	if m.showMeta {
		innerH-- // meta footer row
	}
	if innerW < 0 {
		innerW = 0
	}
	if innerH < 0 {
		innerH = 0
	}
	m.viewport.Width = innerW
	m.viewport.Height = innerH
	m.renderedID = "" // force re-render at the new width
	m.Refresh()
}

func (m *MonitorView) SetFocused(focused bool) {
	m.focused = focused
}

func (m *MonitorView) SetScrollSpeed(speed int) {
	if speed > 0 {
		m.scrollSpeed = speed
	}
}

func (m *MonitorView) SetShowMeta(show bool) {
	m.showMeta = show
	m.SetSize(m.width, m.height)
}

// Refresh re-renders the current page into the viewport. Scroll position
// is kept when the same page refreshes in place and reset when the view
// lands on a different page.
func (m *MonitorView) Refresh() {
	p, ok := m.store.Current()
	if !ok {
		m.viewport.SetContent(styles.TextDimStyle.Render("Esperando actividad del agente..."))
		m.renderedID = ""
		return
	}
	samePage := p.ID == m.renderedID
	offset := m.viewport.YOffset
	m.viewport.SetContent(report.Render(p.Content, m.viewport.Width))
	if samePage {
		m.viewport.SetYOffset(offset)
	} else {
		m.viewport.GotoTop()
		m.renderedID = p.ID
	}
}

func (m MonitorView) step() int {
	if m.scrollSpeed <= 0 {
		return 1
	}
	return m.scrollSpeed
}

func (m MonitorView) title() string {
	label := "Monitor"
	if !m.store.Online() {
		return "[2] " + styles.TitleStyle.Render(label) + " " + styles.OfflineStyle.Render("· arrancando")
	}

	pos := ""
	if n := m.store.Len(); n > 0 {
		pos = fmt.Sprintf(" (%d/%d)", m.store.Index()+1, n)
	}

	badge := styles.PagedStyle.Render("PAGED")
	if m.store.Live() {
		badge = styles.LiveStyle.Render("● LIVE")
	}

	pageTitle := ""
	if p, ok := m.store.Current(); ok && p.Title != "" {
		pageTitle = styles.TextSecondaryStyle.Render(" — " + p.Title)
	}

	return "[2] " + styles.TitleStyle.Render(label+pos) + pageTitle + " " + badge
}

// bootView renders the initialization sequence shown before the store
// goes online.
func (m MonitorView) bootView() string {
	var b strings.Builder

	title := m.seq.TaskTitle()
	if title == "" {
		title = "Mitosis"
	}
	b.WriteString("\n  " + styles.TitleStyle.Render(title) + "\n\n")

	for i, s := range m.seq.Steps() {
		var icon, line string
		switch m.seq.Status(i) {
		case monitor.StepCompleted:
			icon = styles.StatusSuccessStyle.Render("✓")
			line = styles.TextPrimaryStyle.Render(s.Title)
		case monitor.StepRunning:
			icon = m.spin.View()
			line = styles.TextPrimaryStyle.Render(s.Title)
		default:
			icon = styles.TextDimStyle.Render("○")
			line = styles.TextDimStyle.Render(s.Title)
		}
		b.WriteString("  " + icon + " " + line + "\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

// metaFooter renders the page metadata row under the viewport.
func (m MonitorView) metaFooter() string {
	p, ok := m.store.Current()
	if !ok {
		return ""
	}

	parts := []string{
		fmt.Sprintf("%d lines", p.Meta.Lines),
		text.FormatBytes(p.Meta.Bytes),
	}
	if p.Meta.ExecutionTime > 0 {
		parts = append(parts, text.FormatSeconds(p.Meta.ExecutionTime.Seconds()))
	}

	line := styles.TextDimStyle.Render("  " + strings.Join(parts, " · "))
	if p.Meta.Status != "" {
		statusStyle := lipgloss.NewStyle().Foreground(styles.PageStatusColor(p.Meta.Status))
		line += styles.TextDimStyle.Render(" · ") + statusStyle.Render(string(p.Meta.Status))
	}
	return line
}
