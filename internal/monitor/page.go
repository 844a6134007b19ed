package monitor

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PageType classifies a unit of monitor content.
type PageType string

const (
	PagePlan          PageType = "plan"
	PageToolExecution PageType = "tool-execution"
	PageReport        PageType = "report"
	PageFile          PageType = "file"
	PageError         PageType = "error"
)

// PageStatus is the execution status carried in page metadata.
type PageStatus string

const (
	StatusSuccess PageStatus = "success"
	StatusError   PageStatus = "error"
	StatusRunning PageStatus = "running"
)

// Well-known singleton page ids. Producers upsert these instead of
// appending so the plan and the final report behave as one growing
// document rather than an event log.
const (
	PageIDPlan        = "plan"
	PageIDFinalReport = "final-report"
)

// PageMeta is the optional metadata bag attached to a page.
type PageMeta struct {
	Lines         int           `json:"line_count,omitempty"`
	Bytes         int           `json:"byte_size,omitempty"`
	ExecutionTime time.Duration `json:"execution_time,omitempty"`
	Status        PageStatus    `json:"status,omitempty"`
}

// Page is one unit of content in the execution monitor: a plan snapshot,
// a tool-execution record, a report, a promoted log excerpt, or an error.
// Pages are immutable once appended; only singleton pages are replaced.
type Page struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Type      PageType  `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Meta      PageMeta  `json:"metadata"`
}

// NewPage builds a page with a generated id, the current timestamp, and
// line/byte counts derived from the content.
func NewPage(title, content string, typ PageType) Page {
	p := Page{
		ID:        uuid.NewString(),
		Title:     title,
		Content:   content,
		Type:      typ,
		Timestamp: time.Now(),
	}
	p.FillMeta()
	return p
}

// FillMeta populates the derived line and byte counts from the content.
// Explicitly set counts are left alone.
func (p *Page) FillMeta() {
	if p.Meta.Lines == 0 && p.Content != "" {
		p.Meta.Lines = strings.Count(p.Content, "\n") + 1
	}
	if p.Meta.Bytes == 0 {
		p.Meta.Bytes = len(p.Content)
	}
}

// IsSingleton reports whether the page carries a well-known singleton id.
func (p Page) IsSingleton() bool {
	return p.ID == PageIDPlan || p.ID == PageIDFinalReport
}
