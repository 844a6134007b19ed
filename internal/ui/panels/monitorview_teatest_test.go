package panels

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"

	"github.com/mitosis-ai/mitosis/internal/monitor"
)

func TestMonitorViewBootRenders(t *testing.T) {
	seq := testSequencer()
	store := monitor.NewStore()
	mv := NewMonitorView(store, seq)
	mv.SetSize(80, 20)

	tm := teatest.NewTestModel(t, wrapMonitorView(&mv), teatest.WithInitialTermSize(80, 20))
	waitForContains(t, tm, "arrancando")
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}

func TestMonitorViewPageRenders(t *testing.T) {
	store := testMonitorStore()
	mv := NewMonitorView(store, testSequencer())
	mv.SetSize(80, 20)

	tm := teatest.NewTestModel(t, wrapMonitorView(&mv), teatest.WithInitialTermSize(80, 20))
	waitForContains(t, tm, "Resumen")
	waitForContains(t, tm, "LIVE")
	tm.Send(tea.QuitMsg{})
	tm.FinalModel(t, teatest.WithFinalTimeout(waitDuration))
}
