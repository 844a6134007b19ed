package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/mitosis-ai/mitosis/internal/api"
	"github.com/mitosis-ai/mitosis/internal/config"
	"github.com/mitosis-ai/mitosis/internal/memory"
	"github.com/mitosis-ai/mitosis/internal/plan"
)

func newTestApp() App {
	cfg := config.DefaultConfig()
	mem := memory.NewManager(nil)
	return NewApp(&cfg, mem, zerolog.Nop())
}

func sendKey(a App, key string) App {
	m, _ := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return m.(App)
}

func sendSpecialKey(a App, t tea.KeyType) App {
	m, _ := a.Update(tea.KeyMsg{Type: t})
	return m.(App)
}

func sendWindowSize(a App, w, h int) App {
	m, _ := a.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return m.(App)
}

func sendMsg(a App, msg tea.Msg) (App, tea.Cmd) {
	m, cmd := a.Update(msg)
	return m.(App), cmd
}

func TestAppInitialState(t *testing.T) {
	a := newTestApp()
	if a.ready {
		t.Error("expected ready to be false initially")
	}
	if a.focusedPanel != panelMonitor {
		t.Errorf("expected monitor panel focused, got %d", a.focusedPanel)
	}
	if a.helpOverlay != nil {
		t.Error("expected helpOverlay to be nil initially")
	}
	if a.ctrl.TaskID() != "" {
		t.Error("expected no active task initially")
	}
}

func TestAppWindowResize(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	if !a.ready {
		t.Error("expected ready to be true after WindowSizeMsg")
	}
	if a.width != 120 {
		t.Errorf("expected width 120, got %d", a.width)
	}
	if a.height != 40 {
		t.Errorf("expected height 40, got %d", a.height)
	}
}

func TestAppFocusCycle(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	a = sendSpecialKey(a, tea.KeyTab)
	if a.focusedPanel != panelMemory {
		t.Errorf("expected memory panel after tab, got %d", a.focusedPanel)
	}
	a = sendSpecialKey(a, tea.KeyTab)
	if a.focusedPanel != panelPlan {
		t.Errorf("expected plan panel after second tab, got %d", a.focusedPanel)
	}
	a = sendSpecialKey(a, tea.KeyTab)
	if a.focusedPanel != panelMonitor {
		t.Errorf("expected wrap to monitor panel, got %d", a.focusedPanel)
	}
}

func TestAppHelpToggle(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	a = sendKey(a, "?")
	if a.helpOverlay == nil {
		t.Fatal("expected help overlay after ?")
	}
	a = sendKey(a, "?")
	if a.helpOverlay != nil {
		t.Error("expected help overlay closed after second ?")
	}
}

func TestAppNewTaskModal(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	a = sendKey(a, "n")
	if a.taskModal == nil {
		t.Fatal("expected task modal after n")
	}

	a = sendSpecialKey(a, tea.KeyEsc)
	if a.taskModal != nil {
		t.Error("expected task modal dismissed on Esc")
	}
}

func TestAppQuit(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit cmd on q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg on q")
	}
}

func TestAppStartTask(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	a, cmd := sendMsg(a, SubmitTaskMsg{Title: "Investigar baterías"})
	if cmd == nil {
		t.Fatal("expected cmds from task submit")
	}
	if a.ctrl.TaskID() == "" {
		t.Error("expected active task after submit")
	}
	if a.ctrl.TaskTitle() != "Investigar baterías" {
		t.Errorf("expected task title, got %q", a.ctrl.TaskTitle())
	}
	if a.ctrl.Store().Online() {
		t.Error("expected monitor offline while boot sequence runs")
	}
}

func TestAppTaskSwitchResetsState(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	a, _ = sendMsg(a, SubmitTaskMsg{Title: "Primera tarea"})
	first := a.ctrl.TaskID()

	a, _ = sendMsg(a, SubmitTaskMsg{Title: "Segunda tarea"})
	if a.ctrl.TaskID() == first {
		t.Error("expected a fresh task id after switching")
	}
	if a.ctrl.Store().Len() != 0 {
		t.Error("expected monitor store cleared on task switch")
	}
	if len(a.ctrl.Plan()) != 0 {
		t.Error("expected plan cleared on task switch")
	}
}

func TestAppStaleBootTickDropped(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	a, _ = sendMsg(a, SubmitTaskMsg{Title: "Primera tarea"})
	first := a.ctrl.TaskID()
	a, _ = sendMsg(a, SubmitTaskMsg{Title: "Segunda tarea"})

	_, cmd := sendMsg(a, BootTickMsg{TaskID: first})
	if cmd != nil {
		t.Error("expected boot tick from the previous task dropped")
	}

	_, cmd = sendMsg(a, BootTickMsg{TaskID: a.ctrl.TaskID()})
	if cmd == nil {
		t.Error("expected the active task's boot tick to reschedule")
	}
}

func TestAppStalePlanResponseDropped(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)
	a, _ = sendMsg(a, SubmitTaskMsg{Title: "Tarea"})

	resp := &api.GeneratePlanResponse{Plan: []plan.Step{{ID: "1", Title: "paso"}}}
	a, _ = sendMsg(a, PlanGeneratedMsg{TaskID: "tarea-anterior", Resp: resp})

	if len(a.ctrl.Plan()) != 0 {
		t.Error("expected stale plan response dropped")
	}
}

func TestAppPlanResponseApplied(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)
	a, _ = sendMsg(a, SubmitTaskMsg{Title: "Tarea"})

	resp := &api.GeneratePlanResponse{Plan: []plan.Step{
		{ID: "1", Title: "Analizar", Active: true},
		{ID: "2", Title: "Redactar"},
	}}
	a, _ = sendMsg(a, PlanGeneratedMsg{TaskID: a.ctrl.TaskID(), Resp: resp})

	if len(a.ctrl.Plan()) != 2 {
		t.Fatalf("expected 2 plan steps, got %d", len(a.ctrl.Plan()))
	}
}

func TestAppChatWithoutTask(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	a, cmd := sendMsg(a, SubmitChatMsg{Message: "hola"})
	if a.chatBusy {
		t.Error("expected chat not marked busy without a task")
	}
	if cmd == nil {
		t.Error("expected a warning flash cmd")
	}
}

func TestAppChatFocusKeys(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 120, 40)

	a = sendKey(a, "i")
	if !a.chatInput.Focused() {
		t.Fatal("expected chat input focused after i")
	}

	// q must type into the input, not quit
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd != nil {
		if _, ok := cmd().(tea.QuitMsg); ok {
			t.Error("expected q to type into the focused chat input")
		}
	}

	a = sendSpecialKey(a, tea.KeyEsc)
	if a.chatInput.Focused() {
		t.Error("expected Esc to unfocus the chat input")
	}
}

func TestAppViewTooSmall(t *testing.T) {
	a := newTestApp()
	a = sendWindowSize(a, 40, 10)

	if !strings.Contains(a.View(), "Terminal too small") {
		t.Error("expected too-small message")
	}
}

func TestAppViewNotReady(t *testing.T) {
	a := newTestApp()
	if !strings.Contains(a.View(), "Cargando") {
		t.Error("expected loading placeholder before first resize")
	}
}
