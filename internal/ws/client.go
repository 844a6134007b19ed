// Package ws consumes the backend's push-based monitor feed: the same
// page stream the polling path produces, delivered over a websocket
// room per task.
package ws

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/net/websocket"

	"github.com/mitosis-ai/mitosis/internal/monitor"
)

// EventType names the backend-emitted feed events.
type EventType string

const (
	EventConnected        EventType = "connected"
	EventMonitoringJoined EventType = "monitoring_joined"
	EventNewMonitorPage   EventType = "new_monitor_page"
)

// Event is one decoded feed message.
type Event struct {
	Type   EventType
	RoomID string       // set for connected
	Page   monitor.Page // set for new_monitor_page
}

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type connectedPayload struct {
	RoomID string `json:"room_id"`
}

// ParseEvent decodes a raw feed frame. Unknown event names are an error
// so new backend events surface in diagnostics instead of vanishing.
func ParseEvent(raw []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Event{}, fmt.Errorf("parse feed frame: %w", err)
	}

	switch EventType(env.Event) {
	case EventConnected:
		var p connectedPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			return Event{}, fmt.Errorf("parse connected payload: %w", err)
		}
		return Event{Type: EventConnected, RoomID: p.RoomID}, nil

	case EventMonitoringJoined:
		return Event{Type: EventMonitoringJoined}, nil

	case EventNewMonitorPage:
		var page monitor.Page
		if err := json.Unmarshal(env.Data, &page); err != nil {
			return Event{}, fmt.Errorf("parse monitor page: %w", err)
		}
		return Event{Type: EventNewMonitorPage, Page: page}, nil

	default:
		return Event{}, fmt.Errorf("unknown feed event %q", env.Event)
	}
}

// Client holds one feed connection. Events arrive on Events() until the
// connection drops, at which point the channel closes.
type Client struct {
	conn   *websocket.Conn
	events chan Event
	log    zerolog.Logger
}

// Dial connects to the feed and starts the read loop.
func Dial(url, origin string, logger zerolog.Logger) (*Client, error) {
	conn, err := websocket.Dial(url, "", origin)
	if err != nil {
		return nil, fmt.Errorf("dial monitor feed: %w", err)
	}

	c := &Client{
		conn:   conn,
		events: make(chan Event, 16),
		log:    logger,
	}
	go c.readLoop()
	return c, nil
}

// Events returns the decoded feed stream. Closed when the connection
// ends.
func (c *Client) Events() <-chan Event {
	return c.events
}

// JoinMonitoring subscribes this connection to a task's page feed.
func (c *Client) JoinMonitoring(taskID string) error {
	msg := envelope{Event: "join_monitoring"}
	data, err := json.Marshal(map[string]string{"task_id": taskID})
	if err != nil {
		return fmt.Errorf("marshal join payload: %w", err)
	}
	msg.Data = data
	if err := websocket.JSON.Send(c.conn, msg); err != nil {
		return fmt.Errorf("join monitoring room: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		var raw []byte
		if err := websocket.Message.Receive(c.conn, &raw); err != nil {
			c.log.Debug().Err(err).Msg("monitor feed closed")
			return
		}
		ev, err := ParseEvent(raw)
		if err != nil {
			// Malformed frames are logged and skipped; the feed keeps
			// flowing.
			c.log.Warn().Err(err).Msg("dropping feed frame")
			continue
		}
		c.events <- ev
	}
}
