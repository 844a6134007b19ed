package monitor

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Three independent producers feed the page store: tool-result events,
// externally supplied log lines, and the backend-pushed execution
// summary. Each has its own normalization into the common Page shape so
// the filtering policy of each feed stays explicit and testable alone.

// ToolResult is one tool execution record as delivered by the backend.
type ToolResult struct {
	Tool          string         `json:"tool"`
	Params        map[string]any `json:"parameters,omitempty"`
	Result        string         `json:"result,omitempty"`
	Success       bool           `json:"success"`
	ExecutionTime float64        `json:"execution_time,omitempty"` // seconds
	ConsoleReport string         `json:"console_report,omitempty"`
}

// LogEntry is an arbitrary external log line.
type LogEntry struct {
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ExecutionData is the backend summary used to reconcile already-executed
// tools after a reconnect, plus the overall task status.
type ExecutionData struct {
	ExecutedTools []ToolResult `json:"executed_tools"`
	Status        string       `json:"status,omitempty"`
}

// ToolResultPages normalizes a tool execution into one tool-execution
// page, plus a trailing report page when a deep-research tool carried a
// long-form console report.
func ToolResultPages(tr ToolResult) []Page {
	status := StatusSuccess
	if !tr.Success {
		status = StatusError
	}

	page := Page{
		Title:   toolTitle(tr.Tool),
		Content: formatToolBody(tr),
		Type:    PageToolExecution,
		Meta: PageMeta{
			ExecutionTime: time.Duration(tr.ExecutionTime * float64(time.Second)),
			Status:        status,
		},
	}

	pages := []Page{page}

	if isDeepResearch(tr.Tool) && tr.ConsoleReport != "" {
		pages = append(pages, Page{
			Title:   "Research Report",
			Content: tr.ConsoleReport,
			Type:    PageReport,
			Meta:    PageMeta{Status: status},
		})
	}

	return pages
}

// LogPage promotes a log entry into a standalone file page, but only
// when the message looks like markdown (contains a heading). Routine log
// noise is filtered out so it does not flood the monitor.
func LogPage(e LogEntry) (Page, bool) {
	if !hasMarkdownHeading(e.Message) {
		return Page{}, false
	}
	return Page{
		Title:     logTitle(e.Message),
		Content:   e.Message,
		Type:      PageFile,
		Timestamp: e.Timestamp,
	}, true
}

// ExecutionDataPages synthesizes one tool-execution page per already
// executed tool. The second return reports whether the task status says
// the run is complete, in which case the caller should request the final
// report through the detector.
func ExecutionDataPages(data ExecutionData) ([]Page, bool) {
	var pages []Page
	for _, tr := range data.ExecutedTools {
		pages = append(pages, ToolResultPages(tr)...)
	}
	return pages, data.Status == "completed"
}

func hasMarkdownHeading(msg string) bool {
	for _, line := range strings.Split(msg, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "# ") ||
			strings.HasPrefix(trimmed, "## ") ||
			strings.HasPrefix(trimmed, "### ") {
			return true
		}
	}
	return false
}

// logTitle derives a page title from the first markdown heading.
func logTitle(msg string) string {
	for _, line := range strings.Split(msg, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			return strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
		}
	}
	return "Log"
}

func toolTitle(tool string) string {
	switch tool {
	case "shell":
		return "Shell Command"
	case "web_search":
		return "Web Search"
	case "file_manager":
		return "File Manager"
	case "deep_research", "enhanced_deep_research":
		return "Deep Research"
	default:
		if tool == "" {
			return "Tool Execution"
		}
		words := strings.Split(tool, "_")
		for i, w := range words {
			if w != "" {
				words[i] = strings.ToUpper(w[:1]) + w[1:]
			}
		}
		return strings.Join(words, " ")
	}
}

// formatToolBody renders a human-readable markdown body per tool family.
func formatToolBody(tr ToolResult) string {
	var b strings.Builder

	switch tr.Tool {
	case "shell":
		if cmd := paramString(tr.Params, "command"); cmd != "" {
			fmt.Fprintf(&b, "## Shell\n\n```bash\n$ %s\n```\n\n", cmd)
		} else {
			b.WriteString("## Shell\n\n")
		}
		if tr.Result != "" {
			fmt.Fprintf(&b, "```\n%s\n```\n", strings.TrimRight(tr.Result, "\n"))
		}
	case "web_search":
		query := paramString(tr.Params, "query")
		fmt.Fprintf(&b, "## Web Search\n\n**Query:** %s\n\n", query)
		if tr.Result != "" {
			b.WriteString(tr.Result)
			b.WriteString("\n")
		}
	case "file_manager":
		action := paramString(tr.Params, "action")
		path := paramString(tr.Params, "path")
		fmt.Fprintf(&b, "## File Manager\n\n**Action:** %s\n**Path:** %s\n\n", action, path)
		if tr.Result != "" {
			fmt.Fprintf(&b, "```\n%s\n```\n", strings.TrimRight(tr.Result, "\n"))
		}
	default:
		fmt.Fprintf(&b, "## %s\n\n", toolTitle(tr.Tool))
		if len(tr.Params) > 0 {
			for _, k := range sortedKeys(tr.Params) {
				fmt.Fprintf(&b, "**%s:** %v\n", k, tr.Params[k])
			}
			b.WriteString("\n")
		}
		if tr.Result != "" {
			b.WriteString(tr.Result)
			b.WriteString("\n")
		}
	}

	if !tr.Success {
		b.WriteString("\n**Status:** failed\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func isDeepResearch(tool string) bool {
	return tool == "deep_research" || tool == "enhanced_deep_research"
}

func paramString(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	if v, ok := params[key]; ok {
		return fmt.Sprint(v)
	}
	return ""
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
