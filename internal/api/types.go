package api

import (
	"encoding/json"
	"fmt"

	"github.com/mitosis-ai/mitosis/internal/monitor"
	"github.com/mitosis-ai/mitosis/internal/plan"
)

// Typed request/response shapes per endpoint. Decoding fails closed: a
// payload that does not satisfy an endpoint's required fields comes back
// as a *DecodeError, never as a silently zeroed struct.

type GeneratePlanRequest struct {
	TaskTitle string `json:"task_title"`
	TaskID    string `json:"task_id"`
}

type GeneratePlanResponse struct {
	EnhancedTitle      string      `json:"enhanced_title,omitempty"`
	Plan               []plan.Step `json:"plan"`
	TotalSteps         int         `json:"total_steps"`
	EstimatedTotalTime string      `json:"estimated_total_time,omitempty"`
	TaskType           string      `json:"task_type,omitempty"`
	Complexity         string      `json:"complexity,omitempty"`
}

func (r *GeneratePlanResponse) validate() error {
	if len(r.Plan) == 0 {
		return fmt.Errorf("missing plan")
	}
	for i, s := range r.Plan {
		if s.ID == "" {
			return fmt.Errorf("plan step %d missing id", i)
		}
	}
	return nil
}

// ContextFile is one memory file attached to a chat message.
type ContextFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type ChatRequest struct {
	TaskID  string        `json:"task_id"`
	Message string        `json:"message"`
	Context []ContextFile `json:"context,omitempty"`
}

type ChatResponse struct {
	Response     string               `json:"response"`
	ToolCalls    []ToolCall           `json:"tool_calls,omitempty"`
	ToolResults  []monitor.ToolResult `json:"tool_results,omitempty"`
	Plan         []plan.Step          `json:"plan,omitempty"`
	CreatedFiles []string             `json:"created_files,omitempty"`
	SearchData   json.RawMessage      `json:"search_data,omitempty"`
}

type ToolCall struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"parameters,omitempty"`
}

// finalReportResponse accepts both payload variants the backend emits.
type finalReportResponse struct {
	Report  string `json:"report,omitempty"`
	Content string `json:"content,omitempty"`
}

type UploadedFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MimeType string `json:"mime_type,omitempty"`
}

type UploadFilesResponse struct {
	Files []UploadedFile `json:"files"`
}

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: backend returned %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// DecodeError is a 2xx response whose body did not satisfy the
// endpoint's expected shape.
type DecodeError struct {
	Endpoint string
	Err      error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: decode response: %v", e.Endpoint, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
