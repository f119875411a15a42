package ipc

import (
	"encoding/json"
	"fmt"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandMove        CommandType = "MOVE"
	CommandUndo        CommandType = "UNDO"
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetMonitors CommandType = "GET_MONITORS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// MovePayload is the payload of MOVE. Placement accepts anything
// placement.Parse does, including keypad digits.
type MovePayload struct {
	Placement string `json:"placement"`
}

// MoveData is returned by MOVE and describes the committed frame.
type MoveData struct {
	Window    uint32 `json:"window"`
	Placement string `json:"placement"`
	Display   int    `json:"display"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Corrected bool   `json:"corrected"`
}

// UndoData is returned by UNDO with the restored frame.
type UndoData struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning           bool   `json:"daemon_running"`
	UptimeSeconds           int64  `json:"uptime_seconds"`
	MoveCount               int    `json:"move_count"`
	LastPlacement           string `json:"last_placement,omitempty"`
	CorrectMonitorMigration bool   `json:"correct_monitor_migration"`
}

// MonitorInfo represents information about a single monitor. The Usable*
// fields exclude panels and docks.
type MonitorInfo struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	UsableX      int    `json:"usable_x"`
	UsableY      int    `json:"usable_y"`
	UsableWidth  int    `json:"usable_width"`
	UsableHeight int    `json:"usable_height"`
}

// MonitorsData represents the data returned by GET_MONITORS
type MonitorsData struct {
	Monitors []MonitorInfo `json:"monitors"`
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data any) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
