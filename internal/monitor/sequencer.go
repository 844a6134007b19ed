package monitor

import (
	"fmt"
	"time"
)

// The initialization sequencer plays a fixed, timed boot sequence before
// the monitor goes online. It is a scripted UX, not a readiness poll:
// every sequence succeeds, strictly in order, never in parallel. Time is
// injected through Start/Advance so tests drive it deterministically;
// the UI layer feeds it real ticks.

// StepStatus is the lifecycle of one initialization step.
type StepStatus int

const (
	StepPending StepStatus = iota
	StepRunning
	StepCompleted
)

// InitStep is one entry of the boot script.
type InitStep struct {
	ID       string
	Title    string
	Duration time.Duration
}

// DefaultInitSteps is the standard boot script shown for every task.
func DefaultInitSteps() []InitStep {
	return []InitStep{
		{ID: "environment", Title: "Setting up execution environment", Duration: 1200 * time.Millisecond},
		{ID: "dependencies", Title: "Installing dependencies", Duration: 1800 * time.Millisecond},
		{ID: "agent", Title: "Booting agent runtime", Duration: 900 * time.Millisecond},
	}
}

// Log levels passed to the sequencer log callback.
const (
	LogInfo    = "info"
	LogSuccess = "success"
)

// SequencerCallbacks holds the consumer-provided hooks. Log receives one
// info entry per step start and one success entry per completion;
// Complete fires exactly once when the whole sequence finishes.
type SequencerCallbacks struct {
	Log      func(level, message string)
	Complete func()
}

// Sequencer owns the boot sequence state for the active task. It is not
// safe for concurrent use; it belongs to the UI update loop.
type Sequencer struct {
	steps     []InitStep
	status    []StepStatus
	idx       int
	started   bool
	online    bool
	stepStart time.Time
	taskID    string
	taskTitle string
	cb        SequencerCallbacks
}

func NewSequencer(steps []InitStep, cb SequencerCallbacks) *Sequencer {
	return &Sequencer{
		steps:  steps,
		status: make([]StepStatus, len(steps)),
		cb:     cb,
	}
}

// Start resets the sequence to step 0 for the given task and begins it.
func (s *Sequencer) Start(taskID, taskTitle string, now time.Time) {
	s.taskID = taskID
	s.taskTitle = taskTitle
	s.status = make([]StepStatus, len(s.steps))
	s.idx = 0
	s.online = false
	s.started = true
	s.stepStart = now

	if len(s.steps) == 0 {
		s.finish()
		return
	}

	s.status[0] = StepRunning
	s.logf(LogInfo, s.steps[0].Title)
}

// Advance moves the sequence forward as far as now allows, completing
// every step whose duration has elapsed. Returns true if any state
// changed, so callers know to re-render.
func (s *Sequencer) Advance(now time.Time) bool {
	if !s.started || s.online {
		return false
	}

	changed := false
	for s.idx < len(s.steps) && !now.Before(s.stepStart.Add(s.steps[s.idx].Duration)) {
		s.status[s.idx] = StepCompleted
		s.logf(LogSuccess, fmt.Sprintf("%s — done", s.steps[s.idx].Title))
		s.stepStart = s.stepStart.Add(s.steps[s.idx].Duration)
		s.idx++
		changed = true

		if s.idx == len(s.steps) {
			s.finish()
			return true
		}

		s.status[s.idx] = StepRunning
		s.logf(LogInfo, s.steps[s.idx].Title)
	}

	return changed
}

// NextDeadline reports when the next transition is due. ok is false when
// the sequence is not running.
func (s *Sequencer) NextDeadline() (time.Time, bool) {
	if !s.started || s.online || s.idx >= len(s.steps) {
		return time.Time{}, false
	}
	return s.stepStart.Add(s.steps[s.idx].Duration), true
}

// Online reports whether the boot sequence has finished.
func (s *Sequencer) Online() bool { return s.online }

// Started reports whether Start has been called for the current task.
func (s *Sequencer) Started() bool { return s.started }

// TaskID returns the task the sequence was started for.
func (s *Sequencer) TaskID() string { return s.taskID }

// TaskTitle returns the title passed to Start.
func (s *Sequencer) TaskTitle() string { return s.taskTitle }

// Steps returns the boot script.
func (s *Sequencer) Steps() []InitStep { return s.steps }

// Status returns the lifecycle state of step i.
func (s *Sequencer) Status(i int) StepStatus {
	if i < 0 || i >= len(s.status) {
		return StepPending
	}
	return s.status[i]
}

// Reset clears the sequence without starting a new one.
func (s *Sequencer) Reset() {
	s.status = make([]StepStatus, len(s.steps))
	s.idx = 0
	s.started = false
	s.online = false
	s.taskID = ""
	s.taskTitle = ""
}

func (s *Sequencer) finish() {
	s.online = true
	if s.cb.Complete != nil {
		s.cb.Complete()
	}
}

func (s *Sequencer) logf(level, message string) {
	if s.cb.Log != nil {
		s.cb.Log(level, message)
	}
}
