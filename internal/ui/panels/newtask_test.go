package panels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestNewTaskModalView(t *testing.T) {
	m := NewNewTaskModal(120, 40)
	view := m.View()

	if !strings.Contains(view, "Nueva Tarea") {
		t.Error("expected modal title")
	}
	if !strings.Contains(view, "generará un plan") {
		t.Error("expected hint line")
	}
}

func TestNewTaskModalEscCloses(t *testing.T) {
	m := NewNewTaskModal(120, 40)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next != nil {
		t.Error("expected modal dismissed on Esc")
	}
	if cmd == nil {
		t.Fatal("expected cmd on Esc")
	}
	if _, ok := cmd().(CloseModalMsg); !ok {
		t.Error("expected CloseModalMsg on Esc")
	}
}

func TestNewTaskModalSubmit(t *testing.T) {
	m := NewNewTaskModal(120, 40)
	for _, r := range "Investigar baterías" {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next != nil {
		t.Error("expected modal dismissed on submit")
	}
	if cmd == nil {
		t.Fatal("expected cmd on ctrl+s")
	}
	msg, ok := cmd().(SubmitTaskMsg)
	if !ok {
		t.Fatal("expected SubmitTaskMsg on ctrl+s")
	}
	if msg.Title != "Investigar baterías" {
		t.Errorf("expected typed title, got %q", msg.Title)
	}
}

func TestNewTaskModalEmptySubmitIgnored(t *testing.T) {
	m := NewNewTaskModal(120, 40)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if next == nil {
		t.Error("expected modal to stay open on empty submit")
	}
	if cmd != nil {
		t.Error("expected no cmd on empty submit")
	}
}

func TestNewTaskModalMinimumSize(t *testing.T) {
	m := NewNewTaskModal(20, 5)

	if m.width < 40 {
		t.Errorf("expected minimum width 40, got %d", m.width)
	}
	if m.height < 8 {
		t.Errorf("expected minimum height 8, got %d", m.height)
	}
}
