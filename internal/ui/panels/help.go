package panels

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mitosis-ai/mitosis/internal/ui/border"
	"github.com/mitosis-ai/mitosis/internal/ui/styles"
)

type HelpOverlay struct {
	width  int
	height int
}

func NewHelpOverlay() *HelpOverlay {
	return &HelpOverlay{
		width:  46,
		height: 22,
	}
}

func (h HelpOverlay) Update(msg tea.Msg) (HelpOverlay, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "?", "q":
			return h, func() tea.Msg { return CloseModalMsg{} }
		}
	}
	return h, nil
}

func (h HelpOverlay) View() string {
	keyStyle := lipgloss.NewStyle().Foreground(styles.KeybindKey).Bold(true)
	descStyle := styles.TextPrimaryStyle
	sectionStyle := styles.TitleStyle

	kv := func(key, desc string) string {
		return "  " + keyStyle.Render(key) + "  " + descStyle.Render(desc)
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render("Monitor") + "\n")
	b.WriteString(kv("h/l", "Previous / next page") + "\n")
	b.WriteString(kv("G", "Back to live") + "\n")
	b.WriteString(kv("gg", "First page") + "\n")
	b.WriteString(kv("j/k", "Scroll page") + "\n")
	b.WriteString(kv("y", "Copy page content") + "\n")
	b.WriteString(kv("e", "Export report to disk") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Memory") + "\n")
	b.WriteString(kv("a", "Toggle active") + "\n")
	b.WriteString(kv("p", "Cycle priority") + "\n")
	b.WriteString(kv("d", "Delete file") + "\n")
	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Global") + "\n")
	b.WriteString(kv("n", "New task") + "\n")
	b.WriteString(kv("i", "Focus chat input") + "\n")
	b.WriteString(kv("Tab", "Cycle panel focus") + "\n")
	b.WriteString(kv("?", "Toggle this help") + "\n")
	b.WriteString(kv("q", "Quit"))

	bottomKb := []border.Keybind{{Key: "?", Label: " close"}, {Key: "Esc", Label: " close"}}
	return border.RenderPanel("Keybinds", b.String(), bottomKb, h.width, h.height, true)
}
