package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mitosis-ai/mitosis/internal/memory"
	"github.com/mitosis-ai/mitosis/internal/ui/border"
	"github.com/mitosis-ai/mitosis/internal/ui/styles"
	"github.com/mitosis-ai/mitosis/internal/ui/text"
)

// MemoryPanel lists the stored context files and lets the user toggle
// them in and out of the agent's working context.
type MemoryPanel struct {
	width   int
	height  int
	manager *memory.Manager
	cursor  int
	focused bool
}

func NewMemoryPanel(manager *memory.Manager) MemoryPanel {
	return MemoryPanel{manager: manager}
}

func (m MemoryPanel) Update(msg tea.Msg) (MemoryPanel, tea.Cmd) {
	files := m.manager.List()

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(files)-1 {
				m.cursor++
			}
			return m, nil
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "a", " ":
			if f, ok := m.selected(files); ok {
				m.manager.SetActive(f.ID, !f.IsActive)
			}
			return m, nil
		case "p":
			if f, ok := m.selected(files); ok {
				m.manager.SetPriority(f.ID, nextPriority(f.Priority))
			}
			return m, nil
		case "d":
			if f, ok := m.selected(files); ok {
				m.manager.Remove(f.ID)
				if m.cursor > 0 {
					m.cursor--
				}
			}
			return m, nil
		}
	}
	return m, nil
}

func (m MemoryPanel) View() string {
	files := m.manager.List()

	title := "[3] " + styles.TitleStyle.Render("Memoria")
	if n := len(files); n > 0 {
		title += " " + styles.TextSecondaryStyle.Render(fmt.Sprintf("(%d)", n))
	}

	var keybinds []border.Keybind
	if m.focused && len(files) > 0 {
		keybinds = []border.Keybind{
			{Key: "a", Label: "ctivate"},
			{Key: "p", Label: "riority"},
			{Key: "d", Label: "elete"},
		}
	}

	return border.RenderPanel(title, m.content(files), keybinds, m.width, m.height, m.focused)
}

func (m MemoryPanel) content(files []memory.File) string {
	if len(files) == 0 {
		return " " + styles.TextDimStyle.Render("Memoria vacía")
	}

	var b strings.Builder
	for i, f := range files {
		active := styles.TextDimStyle.Render("○")
		if f.IsActive {
			active = styles.StatusSuccessStyle.Render("●")
		}

		name := styles.TextPrimaryStyle.Render(f.Name)
		if i == m.cursor && m.focused {
			name = styles.SelectedRowStyle.Render(f.Name)
		}

		detail := styles.TextDimStyle.Render(fmt.Sprintf(
			" %s · %s · %s",
			typeLabel(f.Type), text.FormatBytes(f.Meta.Size), text.RelativeTime(f.Meta.CreatedAt),
		))

		b.WriteString(" " + active + " " + priorityBadge(f.Priority) + " " + name + detail + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m MemoryPanel) selected(files []memory.File) (memory.File, bool) {
	if m.cursor < 0 || m.cursor >= len(files) {
		return memory.File{}, false
	}
	return files[m.cursor], true
}

func (m *MemoryPanel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *MemoryPanel) SetFocused(focused bool) {
	m.focused = focused
}

func nextPriority(p memory.Priority) memory.Priority {
	switch p {
	case memory.PriorityLow:
		return memory.PriorityMedium
	case memory.PriorityMedium:
		return memory.PriorityHigh
	default:
		return memory.PriorityLow
	}
}

func priorityBadge(p memory.Priority) string {
	var c lipgloss.AdaptiveColor
	switch p {
	case memory.PriorityHigh:
		c = styles.PriorityHigh
	case memory.PriorityLow:
		c = styles.PriorityLow
	default:
		c = styles.PriorityMedium
	}
	return lipgloss.NewStyle().Foreground(c).Render(strings.ToUpper(string(p)[:1]))
}

func typeLabel(t memory.FileType) string {
	switch t {
	case memory.TypeResearchReport:
		return "informe"
	case memory.TypeUploadedFile:
		return "subido"
	case memory.TypeAgentFile:
		return "agente"
	default:
		return string(t)
	}
}
