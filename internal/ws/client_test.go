package ws

import (
	"testing"

	"github.com/mitosis-ai/mitosis/internal/monitor"
)

func TestParseEventConnected(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"event": "connected", "data": {"room_id": "room-42"}}`))
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if ev.Type != EventConnected {
		t.Errorf("expected connected, got %s", ev.Type)
	}
	if ev.RoomID != "room-42" {
		t.Errorf("expected room-42, got %s", ev.RoomID)
	}
}

func TestParseEventMonitoringJoined(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"event": "monitoring_joined"}`))
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if ev.Type != EventMonitoringJoined {
		t.Errorf("expected monitoring_joined, got %s", ev.Type)
	}
}

func TestParseEventNewMonitorPage(t *testing.T) {
	raw := []byte(`{
		"event": "new_monitor_page",
		"data": {
			"id": "p1",
			"title": "Shell Command",
			"content": "## Shell\n\noutput",
			"type": "tool-execution",
			"timestamp": "2026-08-27T10:00:00Z",
			"metadata": {"line_count": 3, "status": "success"}
		}
	}`)

	ev, err := ParseEvent(raw)
	if err != nil {
		t.Fatalf("ParseEvent: %v", err)
	}
	if ev.Type != EventNewMonitorPage {
		t.Fatalf("expected new_monitor_page, got %s", ev.Type)
	}
	if ev.Page.ID != "p1" {
		t.Errorf("expected page id p1, got %s", ev.Page.ID)
	}
	if ev.Page.Type != monitor.PageToolExecution {
		t.Errorf("expected tool-execution, got %s", ev.Page.Type)
	}
	if ev.Page.Meta.Status != monitor.StatusSuccess {
		t.Errorf("expected success status, got %s", ev.Page.Meta.Status)
	}
}

func TestParseEventUnknown(t *testing.T) {
	if _, err := ParseEvent([]byte(`{"event": "mystery"}`)); err == nil {
		t.Error("expected error for unknown event")
	}
}

func TestParseEventMalformed(t *testing.T) {
	if _, err := ParseEvent([]byte(`{"event":`)); err == nil {
		t.Error("expected error for malformed frame")
	}
	if _, err := ParseEvent([]byte(`{"event": "new_monitor_page", "data": "not an object"}`)); err == nil {
		t.Error("expected error for wrong payload shape")
	}
}
