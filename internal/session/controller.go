// Package session owns the per-task monitor state: the page store, the
// boot sequencer, the completion detector, and the last-seen plan. All
// ingestion goes through the controller so the task-switch reset and the
// stale-event discipline live in exactly one place.
package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitosis-ai/mitosis/internal/monitor"
	"github.com/mitosis-ai/mitosis/internal/plan"
)

// Controller coordinates one active task at a time. Events tagged with a
// task id other than the active one are dropped: after a task switch
// there is no cross-task carryover, and in-flight work for the old task
// must not mutate the new task's state.
type Controller struct {
	taskID    string
	taskTitle string
	store     *monitor.Store
	seq       *monitor.Sequencer
	det       monitor.Detector
	steps     []plan.Step
}

// New builds a controller. The sequencer's completion flips the store
// online before the caller's own callback runs.
func New(initSteps []monitor.InitStep, cb monitor.SequencerCallbacks) *Controller {
	c := &Controller{store: monitor.NewStore()}

	userComplete := cb.Complete
	cb.Complete = func() {
		c.store.SetOnline(true)
		if userComplete != nil {
			userComplete()
		}
	}
	c.seq = monitor.NewSequencer(initSteps, cb)
	return c
}

func (c *Controller) Store() *monitor.Store { return c.store }

func (c *Controller) Sequencer() *monitor.Sequencer { return c.seq }

func (c *Controller) TaskID() string { return c.taskID }

func (c *Controller) TaskTitle() string { return c.taskTitle }

// Plan returns the last plan pushed for the active task.
func (c *Controller) Plan() []plan.Step { return c.steps }

// SwitchTask makes taskID the active task, hard-resetting all monitor
// state and restarting the boot sequence. Switching to the already
// active task is a no-op.
func (c *Controller) SwitchTask(taskID, taskTitle string, now time.Time) {
	if taskID == c.taskID {
		return
	}
	c.taskID = taskID
	c.taskTitle = taskTitle
	c.steps = nil
	c.store.Reset()
	c.det.Reset()
	c.seq.Start(taskID, taskTitle, now)
}

// Advance drives the boot sequence. Returns true when state changed.
func (c *Controller) Advance(now time.Time) bool {
	return c.seq.Advance(now)
}

// SetPlan records a plan push for the task and refreshes the singleton
// plan page. The return value reports whether the final report should be
// fetched now (at most once per task).
func (c *Controller) SetPlan(taskID string, steps []plan.Step) bool {
	if taskID != c.taskID {
		return false
	}
	c.steps = plan.NormalizeActive(steps)
	c.store.UpsertSingleton(monitor.PageIDPlan, monitor.Page{
		Title:   "Plan de Ejecución",
		Content: planPageBody(c.taskTitle, c.steps),
		Type:    monitor.PagePlan,
	})
	return c.det.Observe(c.steps, c.store)
}

// ObservePlan re-evaluates the existing plan without replacing it. The
// plan is re-observed on every render; the detector's one-shot flag
// keeps this harmless.
func (c *Controller) ObservePlan(taskID string) bool {
	if taskID != c.taskID {
		return false
	}
	return c.det.Observe(c.steps, c.store)
}

// HandleToolResult ingests a live tool execution record.
func (c *Controller) HandleToolResult(taskID string, tr monitor.ToolResult) {
	if taskID != c.taskID {
		return
	}
	for _, p := range monitor.ToolResultPages(tr) {
		c.store.Append(p)
	}
}

// HandleLog ingests an external log entry, appending a page only when
// the adapter's markdown filter promotes it.
func (c *Controller) HandleLog(taskID string, e monitor.LogEntry) {
	if taskID != c.taskID {
		return
	}
	if p, ok := monitor.LogPage(e); ok {
		c.store.Append(p)
	}
}

// HandleExecutionData reconciles the backend's executed-tool summary.
// The return value reports whether the final report should be fetched.
func (c *Controller) HandleExecutionData(taskID string, data monitor.ExecutionData) bool {
	if taskID != c.taskID {
		return false
	}
	pages, completed := monitor.ExecutionDataPages(data)
	for _, p := range pages {
		c.store.Append(p)
	}
	if !completed {
		return false
	}
	if plan.AllComplete(c.steps) {
		return c.det.Observe(c.steps, c.store)
	}
	return c.det.Trigger(c.store)
}

// HandlePage ingests a pushed page from the websocket feed. Singleton
// ids upsert in place; everything else appends.
func (c *Controller) HandlePage(taskID string, p monitor.Page) {
	if taskID != c.taskID {
		return
	}
	if p.IsSingleton() {
		c.store.UpsertSingleton(p.ID, p)
		return
	}
	c.store.Append(p)
}

// ReportDelivered lands the fetched final report.
func (c *Controller) ReportDelivered(taskID, content string) {
	if taskID != c.taskID {
		return
	}
	c.det.Deliver(c.store, content)
}

// ReportFailed substitutes the fallback report after a failed fetch.
func (c *Controller) ReportFailed(taskID string) {
	if taskID != c.taskID {
		return
	}
	c.det.DeliverFallback(c.store, c.steps)
}

// planPageBody renders the plan snapshot shown on the singleton plan
// page. It grows in place as steps complete.
func planPageBody(taskTitle string, steps []plan.Step) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Plan de Ejecución\n\n**Tarea:** %s\n\n", taskTitle)
	for i, s := range steps {
		mark := " "
		switch {
		case s.Completed:
			mark = "x"
		case s.Active:
			mark = "~"
		}
		fmt.Fprintf(&b, "%d. [%s] %s", i+1, mark, s.Title)
		if s.Tool != "" {
			fmt.Fprintf(&b, " (%s)", s.Tool)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
