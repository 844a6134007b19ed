// Package plan holds the backend-provided task checklist consumed by the
// monitor. The client treats steps as read-only; the backend owns their
// lifecycle.
package plan

import "fmt"

// Step is one item of the task checklist.
type Step struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Tool        string  `json:"tool,omitempty"`
	Completed   bool    `json:"completed"`
	Active      bool    `json:"active"`
	ElapsedTime float64 `json:"elapsed_time,omitempty"`
}

// AllComplete reports whether the plan is finished: at least one step
// present and every step completed. An empty plan is never complete.
func AllComplete(steps []Step) bool {
	if len(steps) == 0 {
		return false
	}
	for _, s := range steps {
		if !s.Completed {
			return false
		}
	}
	return true
}

// ActiveIndex returns the index of the first active step, or -1.
func ActiveIndex(steps []Step) int {
	for i, s := range steps {
		if s.Active {
			return i
		}
	}
	return -1
}

// NormalizeActive enforces the at-most-one-active contract locally: the
// first active step wins and any later active flags are cleared. The
// backend is supposed to guarantee this; we clamp rather than trust it.
func NormalizeActive(steps []Step) []Step {
	out := make([]Step, len(steps))
	copy(out, steps)
	seen := false
	for i := range out {
		if out[i].Active {
			if seen {
				out[i].Active = false
			}
			seen = true
		}
	}
	return out
}

// CompletedCount returns how many steps are completed.
func CompletedCount(steps []Step) int {
	n := 0
	for _, s := range steps {
		if s.Completed {
			n++
		}
	}
	return n
}

// Progress renders a "3/7" style progress fragment.
func Progress(steps []Step) string {
	return fmt.Sprintf("%d/%d", CompletedCount(steps), len(steps))
}
