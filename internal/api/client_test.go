package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, zerolog.Nop()), srv
}

func TestGeneratePlan(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/agent/generate-plan" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		w.Write([]byte(`{
			"enhanced_title": "Market research",
			"plan": [
				{"id": "s1", "title": "Investigar", "completed": false, "active": true},
				{"id": "s2", "title": "Redactar", "completed": false, "active": false}
			],
			"total_steps": 2,
			"task_type": "research",
			"complexity": "medium"
		}`))
	})
	defer srv.Close()

	resp, err := client.GeneratePlan(context.Background(), "task-1", "market research")
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if len(resp.Plan) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(resp.Plan))
	}
	if resp.Plan[0].ID != "s1" || !resp.Plan[0].Active {
		t.Errorf("unexpected first step %+v", resp.Plan[0])
	}
	if resp.EnhancedTitle != "Market research" {
		t.Errorf("unexpected title %q", resp.EnhancedTitle)
	}
}

func TestGeneratePlanMissingPlanFailsClosed(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"total_steps": 0}`))
	})
	defer srv.Close()

	_, err := client.GeneratePlan(context.Background(), "task-1", "title")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError for missing plan, got %v", err)
	}
}

func TestGeneratePlanNonOK(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "backend exploded", http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := client.GeneratePlan(context.Background(), "task-1", "title")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", se.StatusCode)
	}
}

func TestFinalReportVariants(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"report field", `{"report": "# Informe"}`, "# Informe"},
		{"content field", `{"content": "# Contenido"}`, "# Contenido"},
		{"report wins over content", `{"report": "# A", "content": "# B"}`, "# A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/agent/generate-final-report/task-1" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				w.Write([]byte(tt.body))
			})
			defer srv.Close()

			got, err := client.FinalReport(context.Background(), "task-1")
			if err != nil {
				t.Fatalf("FinalReport: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFinalReportEmptyFailsClosed(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	defer srv.Close()

	_, err := client.FinalReport(context.Background(), "task-1")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError for empty payload, got %v", err)
	}
}

func TestSendMessage(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/agent/chat" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"response": "working on it",
			"tool_results": [
				{"tool": "shell", "result": "ok", "success": true, "execution_time": 0.4}
			],
			"created_files": ["informe.md"]
		}`))
	})
	defer srv.Close()

	resp, err := client.SendMessage(context.Background(), ChatRequest{TaskID: "task-1", Message: "go"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if resp.Response != "working on it" {
		t.Errorf("unexpected response %q", resp.Response)
	}
	if len(resp.ToolResults) != 1 || resp.ToolResults[0].Tool != "shell" {
		t.Errorf("unexpected tool results %+v", resp.ToolResults)
	}
	if len(resp.CreatedFiles) != 1 || resp.CreatedFiles[0] != "informe.md" {
		t.Errorf("unexpected created files %v", resp.CreatedFiles)
	}
}

func TestSendMessageMalformedBody(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"response": `))
	})
	defer srv.Close()

	_, err := client.SendMessage(context.Background(), ChatRequest{TaskID: "task-1", Message: "go"})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("expected DecodeError for truncated body, got %v", err)
	}
}

func TestUploadFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	if err := os.WriteFile(path, []byte("# Notes"), 0o644); err != nil {
		t.Fatal(err)
	}

	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		files := r.MultipartForm.File["files"]
		if len(files) != 1 || files[0].Filename != "notes.md" {
			t.Errorf("unexpected upload %+v", files)
		}
		w.Write([]byte(`{"files": [{"id": "f1", "name": "notes.md", "size": 7, "mime_type": "text/markdown"}]}`))
	})
	defer srv.Close()

	resp, err := client.UploadFiles(context.Background(), []string{path})
	if err != nil {
		t.Fatalf("UploadFiles: %v", err)
	}
	if len(resp.Files) != 1 || resp.Files[0].ID != "f1" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestDownload(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/agent/download/f1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte("binary payload"))
	})
	defer srv.Close()

	data, err := client.Download(context.Background(), "f1")
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if string(data) != "binary payload" {
		t.Errorf("unexpected data %q", data)
	}
}

func TestDownloadNotFound(t *testing.T) {
	client, srv := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	defer srv.Close()

	_, err := client.Download(context.Background(), "missing")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", se.StatusCode)
	}
}
