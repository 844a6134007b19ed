package panels

// MonitorUpdatedMsg is sent when the monitor page store changes.
type MonitorUpdatedMsg struct{}

// CloseModalMsg signals that the modal should be closed.
type CloseModalMsg struct{}

// ClearFlashMsg signals the status bar flash should be cleared.
type ClearFlashMsg struct{}

// YankMsg carries text to copy to the system clipboard.
type YankMsg struct {
	Text string
}

// ExportReportMsg asks the app to write the current report page to disk.
type ExportReportMsg struct{}

// SubmitTaskMsg carries a new task description from the task modal.
type SubmitTaskMsg struct {
	Title string
}

// SubmitChatMsg carries a chat message for the agent.
type SubmitChatMsg struct {
	Message string
}
