// Package api is the HTTP client for the Mitosis agent backend. The
// backend owns all planning and tool execution; this client only moves
// typed payloads back and forth.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultTimeout = 30 * time.Second

type Client struct {
	baseURL string
	httpc   *http.Client
	log     zerolog.Logger
}

func NewClient(baseURL string, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: defaultTimeout},
		log:     logger,
	}
}

// GeneratePlan asks the backend for a step plan for a new task.
func (c *Client) GeneratePlan(ctx context.Context, taskID, taskTitle string) (*GeneratePlanResponse, error) {
	const endpoint = "/api/agent/generate-plan"
	var resp GeneratePlanResponse
	if err := c.postJSON(ctx, endpoint, GeneratePlanRequest{TaskTitle: taskTitle, TaskID: taskID}, &resp); err != nil {
		return nil, err
	}
	if err := resp.validate(); err != nil {
		return nil, &DecodeError{Endpoint: endpoint, Err: err}
	}
	return &resp, nil
}

// SendMessage delivers a chat message, with any active memory files as
// context, and returns the agent's response and tool activity.
func (c *Client) SendMessage(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	const endpoint = "/api/agent/chat"
	var resp ChatResponse
	if err := c.postJSON(ctx, endpoint, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FinalReport fetches the task's final report markdown. The backend
// emits either a "report" or a "content" field; both empty is a decode
// failure, not an empty report.
func (c *Client) FinalReport(ctx context.Context, taskID string) (string, error) {
	endpoint := "/api/agent/generate-final-report/" + taskID
	var resp finalReportResponse
	if err := c.postJSON(ctx, endpoint, nil, &resp); err != nil {
		return "", err
	}
	if resp.Report != "" {
		return resp.Report, nil
	}
	if resp.Content != "" {
		return resp.Content, nil
	}
	return "", &DecodeError{Endpoint: endpoint, Err: fmt.Errorf("neither report nor content present")}
}

// UploadFiles sends local files to the backend as multipart form data.
func (c *Client) UploadFiles(ctx context.Context, paths []string) (*UploadFilesResponse, error) {
	const endpoint = "/api/agent/upload-files"

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		part, err := mw.CreateFormFile("files", filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, f)
		}
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("add %s to upload: %w", path, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, &buf)
	if err != nil {
		return nil, fmt.Errorf("build upload request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp UploadFilesResponse
	if err := c.do(req, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Download retrieves a previously uploaded or generated file.
func (c *Client) Download(ctx context.Context, fileID string) ([]byte, error) {
	endpoint := "/api/agent/download/" + fileID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: read body: %w", endpoint, err)
	}
	c.log.Debug().Str("endpoint", endpoint).Int("bytes", len(data)).Dur("elapsed", time.Since(start)).Msg("download complete")
	return data, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: marshal request: %w", endpoint, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, endpoint, out)
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	start := time.Now()
	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.log.Debug().Str("endpoint", endpoint).Int("status", resp.StatusCode).Dur("elapsed", time.Since(start)).Msg("backend call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Endpoint: endpoint, Err: err}
	}
	return nil
}
