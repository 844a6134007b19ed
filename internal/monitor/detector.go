package monitor

import (
	"fmt"
	"strings"

	"github.com/mitosis-ai/mitosis/internal/plan"
)

// FinalReportLoading is the placeholder body shown while the final
// report fetch is outstanding.
const FinalReportLoading = "Cargando informe final..."

// Detector watches the plan and decides, exactly once per task, when the
// final report should be fetched. Idempotence is structural: the
// requested flag lives here, not in whoever happens to observe the plan,
// so re-observing the same completed plan (which happens on every
// render) can never double-fire. The store's page-id check remains as a
// secondary guard for replayed state.
type Detector struct {
	requested bool
}

// Observe evaluates the current plan against the store. It returns true
// exactly once: the first time the plan is non-empty and fully complete.
// On that observation it parks a loading placeholder in the store so the
// user is never staring at a stale page while the fetch is outstanding.
func (d *Detector) Observe(steps []plan.Step, store *Store) bool {
	if d.requested {
		return false
	}
	if !plan.AllComplete(steps) {
		return false
	}
	return d.Trigger(store)
}

// Trigger requests the final report without consulting the plan. Used
// when the backend execution summary reports the task completed even
// though no plan was ever pushed. Same one-shot guarantees as Observe.
func (d *Detector) Trigger(store *Store) bool {
	if d.requested {
		return false
	}
	if store.Has(PageIDFinalReport) {
		d.requested = true
		return false
	}

	d.requested = true
	store.UpsertSingleton(PageIDFinalReport, Page{
		Title:   "Informe Final",
		Content: FinalReportLoading,
		Type:    PageReport,
		Meta:    PageMeta{Status: StatusRunning},
	})
	return true
}

// Requested reports whether the final report fetch has been triggered.
func (d *Detector) Requested() bool { return d.requested }

// Reset clears the one-shot flag. Called on task switch.
func (d *Detector) Reset() { d.requested = false }

// Deliver lands the fetched report in the store, drops out of live
// follow, and parks the view on the report page.
func (d *Detector) Deliver(store *Store, content string) {
	store.UpsertSingleton(PageIDFinalReport, Page{
		Title:   "Informe Final",
		Content: content,
		Type:    PageReport,
		Meta:    PageMeta{Status: StatusSuccess},
	})
	d.parkOnReport(store)
}

// DeliverFallback synthesizes a best-effort report from the known step
// titles when the fetch failed, so the monitor never stays stuck on the
// loading placeholder.
func (d *Detector) DeliverFallback(store *Store, steps []plan.Step) {
	store.UpsertSingleton(PageIDFinalReport, Page{
		Title:   "Informe Final",
		Content: FallbackReport(steps),
		Type:    PageReport,
		Meta:    PageMeta{Status: StatusError},
	})
	d.parkOnReport(store)
}

func (d *Detector) parkOnReport(store *Store) {
	for i, p := range store.Pages() {
		if p.ID == PageIDFinalReport {
			store.Park(i)
			return
		}
	}
}

// FallbackReport assembles a report body from the plan step titles.
func FallbackReport(steps []plan.Step) string {
	var b strings.Builder
	b.WriteString("# Informe Final\n\n")
	b.WriteString("El informe completo no pudo recuperarse del servidor. ")
	b.WriteString("Resumen de los pasos ejecutados:\n\n")
	for i, s := range steps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Title)
	}
	return strings.TrimRight(b.String(), "\n")
}
