package panels

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mitosis-ai/mitosis/internal/ui/styles"
)

// ChatInput is the single-row message box for talking to the agent.
// "/upload <ruta>" sends local files to the backend instead of a chat
// message; the app interprets the prefix.
type ChatInput struct {
	input   textinput.Model
	width   int
	focused bool
	busy    bool
}

func NewChatInput() ChatInput {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "Mensaje para el agente  (/upload <ruta> para subir archivos)"
	ti.CharLimit = 2000
	return ChatInput{input: ti}
}

func (c ChatInput) Update(msg tea.Msg) (ChatInput, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !c.focused {
			return c, nil
		}
		switch msg.String() {
		case "enter":
			if c.busy {
				return c, nil
			}
			message := strings.TrimSpace(c.input.Value())
			if message == "" {
				return c, nil
			}
			c.input.SetValue("")
			return c, func() tea.Msg { return SubmitChatMsg{Message: message} }
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

func (c ChatInput) View() string {
	if c.busy {
		return " " + styles.TextDimStyle.Render("› esperando respuesta del agente...")
	}
	view := c.input.View()
	if c.width > 0 {
		view = " " + view
	}
	return view
}

func (c *ChatInput) SetSize(w int) {
	c.width = w
	inner := w - 4
	if inner < 10 {
		inner = 10
	}
	c.input.Width = inner
}

func (c *ChatInput) SetFocused(focused bool) tea.Cmd {
	c.focused = focused
	if focused {
		return c.input.Focus()
	}
	c.input.Blur()
	return nil
}

// SetBusy blocks submissions while a chat round-trip is in flight.
func (c *ChatInput) SetBusy(busy bool) {
	c.busy = busy
}

// Focused reports whether the input is capturing keys.
func (c ChatInput) Focused() bool { return c.focused }
