package panels

import (
	"bytes"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
)

// panelAdapter wraps panel types that use typed Update signatures into
// a proper tea.Model so they can be used with teatest.
type panelAdapter struct {
	view     func() string
	updateFn func(tea.Msg) tea.Cmd
}

func (a panelAdapter) Init() tea.Cmd                           { return nil }
func (a panelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return a, a.updateFn(msg) }
func (a panelAdapter) View() string                            { return a.view() }

// wrapMonitorView creates a tea.Model adapter around a MonitorView for teatest use.
func wrapMonitorView(mv *MonitorView) tea.Model {
	return panelAdapter{
		view: func() string { return mv.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newMV, cmd := mv.Update(msg)
			*mv = newMV
			return cmd
		},
	}
}

// wrapPlanPanel creates a tea.Model adapter around a PlanPanel for teatest use.
func wrapPlanPanel(pp *PlanPanel) tea.Model {
	return panelAdapter{
		view: func() string { return pp.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newPP, cmd := pp.Update(msg)
			*pp = newPP
			return cmd
		},
	}
}

// wrapMemoryPanel creates a tea.Model adapter around a MemoryPanel for teatest use.
func wrapMemoryPanel(mp *MemoryPanel) tea.Model {
	return panelAdapter{
		view: func() string { return mp.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newMP, cmd := mp.Update(msg)
			*mp = newMP
			return cmd
		},
	}
}

// wrapStatusBar creates a tea.Model adapter around a StatusBar for teatest use.
// StatusBar has no Update method, so the adapter uses a no-op.
func wrapStatusBar(sb *StatusBar) tea.Model {
	return panelAdapter{
		view:     func() string { return sb.View() },
		updateFn: func(tea.Msg) tea.Cmd { return nil },
	}
}

// wrapHelpOverlay creates a tea.Model adapter around a HelpOverlay for teatest use.
func wrapHelpOverlay(h *HelpOverlay) tea.Model {
	return panelAdapter{
		view: func() string { return h.View() },
		updateFn: func(msg tea.Msg) tea.Cmd {
			newH, cmd := h.Update(msg)
			*h = newH
			return cmd
		},
	}
}

// waitDuration is the standard timeout for WaitFor calls in tests.
const waitDuration = 3 * time.Second

// outputBuffers accumulates each model's output across waitForContains
// calls, since teatest.WaitFor consumes the output reader and would
// otherwise drop frames already read by an earlier wait.
var outputBuffers = map[*teatest.TestModel]*bytes.Buffer{}

// waitForContains waits until the output contains the given substring.
func waitForContains(tb testing.TB, tm *teatest.TestModel, substr string) {
	tb.Helper()
	acc, ok := outputBuffers[tm]
	if !ok {
		acc = &bytes.Buffer{}
		outputBuffers[tm] = acc
	}
	teatest.WaitFor(
		tb,
		io.TeeReader(tm.Output(), acc),
		func([]byte) bool { return contains(acc.Bytes(), substr) },
		teatest.WithDuration(waitDuration),
	)
}

func contains(bts []byte, s string) bool {
	return len(s) > 0 && len(bts) >= len(s) && bytesContains(bts, []byte(s))
}

func bytesContains(haystack, needle []byte) bool {
	for i := 0; i <= len(haystack)-len(needle); i++ {
		found := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				found = false
				break
			}
		}
		if found {
			return true
		}
	}
	return false
}
