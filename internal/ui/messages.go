package ui

import (
	"github.com/mitosis-ai/mitosis/internal/api"
	"github.com/mitosis-ai/mitosis/internal/ui/panels"
	"github.com/mitosis-ai/mitosis/internal/ws"
)

// Type aliases to panels message types — single source of truth.

// MonitorUpdatedMsg is sent when the monitor page store changes.
type MonitorUpdatedMsg = panels.MonitorUpdatedMsg

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg = panels.CloseModalMsg

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg = panels.ClearFlashMsg

// YankMsg carries text to copy to the system clipboard.
type YankMsg = panels.YankMsg

// SubmitTaskMsg carries a new task description from the task modal.
type SubmitTaskMsg = panels.SubmitTaskMsg

// SubmitChatMsg carries a chat message for the agent.
type SubmitChatMsg = panels.SubmitChatMsg

// ExportReportMsg asks the app to write the current report page to disk.
type ExportReportMsg = panels.ExportReportMsg

// BootTickMsg drives the initialization sequencer forward. TaskID pins
// the tick to the task that scheduled it, so a task switch orphans the
// previous chain instead of running two side by side.
type BootTickMsg struct {
	TaskID string
}

// PlanGeneratedMsg delivers the backend's generated plan for a task.
type PlanGeneratedMsg struct {
	TaskID string
	Resp   *api.GeneratePlanResponse
}

// PlanFailedMsg reports a failed plan generation.
type PlanFailedMsg struct {
	TaskID string
	Err    error
}

// ChatRespMsg delivers a chat round-trip result.
type ChatRespMsg struct {
	TaskID string
	Resp   *api.ChatResponse
}

// ChatFailedMsg reports a failed chat round-trip.
type ChatFailedMsg struct {
	TaskID string
	Err    error
}

// FinalReportMsg delivers the fetched final report.
type FinalReportMsg struct {
	TaskID  string
	Content string
}

// FinalReportFailedMsg reports a failed final report fetch.
type FinalReportFailedMsg struct {
	TaskID string
	Err    error
}

// FilesUploadedMsg reports a completed file upload.
type FilesUploadedMsg struct {
	Paths []string
	Resp  *api.UploadFilesResponse
}

// UploadFailedMsg reports a failed file upload.
type UploadFailedMsg struct {
	Err error
}

// ReportExportedMsg reports a report written to disk.
type ReportExportedMsg struct {
	Path string
}

// ExportFailedMsg reports a failed report export.
type ExportFailedMsg struct {
	Err error
}

// WSConnectedMsg delivers an established websocket connection.
type WSConnectedMsg struct {
	Client *ws.Client
}

// WSDialFailedMsg reports a failed websocket dial.
type WSDialFailedMsg struct {
	Err error
}

// WSEventMsg delivers one websocket event from the feed.
type WSEventMsg struct {
	Event ws.Event
}

// WSClosedMsg signals the websocket feed has closed.
type WSClosedMsg struct{}
