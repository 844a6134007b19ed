package panels

import (
	"strings"
	"testing"

	"github.com/mitosis-ai/mitosis/internal/memory"
	"github.com/mitosis-ai/mitosis/internal/monitor"
)

func testStatusBar() (StatusBar, *monitor.Store, *memory.Manager) {
	store := monitor.NewStore()
	mem := memory.NewManager(nil)
	sb := NewStatusBar(store, mem)
	sb.SetSize(120)
	return sb, store, mem
}

func TestStatusBarOffline(t *testing.T) {
	sb, _, _ := testStatusBar()

	view := sb.View()
	if !strings.Contains(view, "arrancando") {
		t.Error("expected 'arrancando' while offline")
	}
	if !strings.Contains(view, "sin tarea") {
		t.Error("expected 'sin tarea' when no task is active")
	}
}

func TestStatusBarLiveAndPaged(t *testing.T) {
	sb, store, _ := testStatusBar()
	store.SetOnline(true)
	store.Append(monitor.Page{Title: "a", Content: "a"})
	store.Append(monitor.Page{Title: "b", Content: "b"})

	if !strings.Contains(sb.View(), "live") {
		t.Error("expected live indicator while following")
	}

	store.Prev()
	view := sb.View()
	if !strings.Contains(view, "paged 1/2") {
		t.Error("expected paged position after navigating back")
	}
}

func TestStatusBarTask(t *testing.T) {
	sb, _, _ := testStatusBar()
	sb.SetTask("Investigar el mercado de baterías")

	if !strings.Contains(sb.View(), "Investigar el mercado") {
		t.Error("expected task title in status bar")
	}
}

func TestStatusBarConnection(t *testing.T) {
	sb, _, _ := testStatusBar()

	if !strings.Contains(sb.View(), "ws ✗") {
		t.Error("expected disconnected indicator by default")
	}
	sb.SetWSConnected(true)
	if !strings.Contains(sb.View(), "ws ✓") {
		t.Error("expected connected indicator after SetWSConnected")
	}
}

func TestStatusBarMemoryCount(t *testing.T) {
	sb, _, mem := testStatusBar()
	mem.Add(memory.File{Name: "a.md", Type: memory.TypeResearchReport, Content: "x"})
	mem.Add(memory.File{Name: "b.md", Type: memory.TypeResearchReport, Content: "y"})

	if !strings.Contains(sb.View(), "mem 2") {
		t.Error("expected memory count in status bar")
	}
}

func TestStatusBarFlash(t *testing.T) {
	sb, _, _ := testStatusBar()
	sb.SetFlashWithLevel("Informe exportado", FlashSuccess)

	view := sb.View()
	if !strings.Contains(view, "Informe exportado") {
		t.Error("expected flash message in status bar")
	}
	if !strings.Contains(view, "✓") {
		t.Error("expected success icon for FlashSuccess")
	}

	sb.ClearFlash()
	if strings.Contains(sb.View(), "Informe exportado") {
		t.Error("expected flash cleared")
	}
}

func TestStatusBarHelpHint(t *testing.T) {
	sb, _, _ := testStatusBar()

	if !strings.Contains(sb.View(), "?:help") {
		t.Error("expected '?:help' hint in status bar")
	}
}

func TestStatusBarVersion(t *testing.T) {
	sb, _, _ := testStatusBar()

	if !strings.Contains(sb.View(), "mitosis") {
		t.Error("expected 'mitosis' in status bar")
	}
}
