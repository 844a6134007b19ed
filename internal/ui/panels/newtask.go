package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mitosis-ai/mitosis/internal/ui/border"
	"github.com/mitosis-ai/mitosis/internal/ui/styles"
)

// NewTaskModal prompts for a task description. Submitting asks the
// backend to generate a plan and makes the task active.
type NewTaskModal struct {
	input   textarea.Model
	width   int
	height  int
	screenW int
	screenH int
}

func NewNewTaskModal(screenW, screenH int) *NewTaskModal {
	ta := textarea.New()
	ta.Placeholder = "Describe la tarea..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.Focus()

	m := &NewTaskModal{input: ta}
	m.SetSize(screenW, screenH)
	return m
}

func (m *NewTaskModal) SetSize(screenW, screenH int) {
	m.screenW = screenW
	m.screenH = screenH
	m.width = screenW * 60 / 100
	m.height = screenH * 40 / 100
	if m.width < 40 {
		m.width = 40
	}
	if m.height < 8 {
		m.height = 8
	}

	// inner height = total - 2 (borders) - 2 (blank line + hint row)
	taHeight := m.height - 4
	if taHeight < 3 {
		taHeight = 3
	}
	m.input.SetWidth(m.width - 2)
	m.input.SetHeight(taHeight)
}

func (m *NewTaskModal) Init() tea.Cmd {
	return m.input.Focus()
}

func (m *NewTaskModal) Update(msg tea.Msg) (*NewTaskModal, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return nil, func() tea.Msg { return CloseModalMsg{} }
		case "ctrl+s":
			title := strings.TrimSpace(m.input.Value())
			if title == "" {
				return m, nil
			}
			return nil, func() tea.Msg { return SubmitTaskMsg{Title: title} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *NewTaskModal) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.TextSecondaryStyle.Render("El backend generará un plan de ejecución para esta tarea."))

	bottomKb := []border.Keybind{
		{Key: "^S", Label: " submit"},
		{Key: "Esc", Label: " cancel"},
	}
	return border.RenderPanel("Nueva Tarea", b.String(), bottomKb, m.width, m.height, true)
}

// Value returns the current text input value.
func (m *NewTaskModal) Value() string { return m.input.Value() }
