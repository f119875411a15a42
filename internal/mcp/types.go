package mcp

// MoveWindowInput is the input for the move_window tool.
type MoveWindowInput struct {
	Placement string `json:"placement" jsonschema:"Target placement: center, top-left, top-center, top-right, center-right, bottom-right, bottom-center, bottom-left, center-left, or a numeric keypad digit 1-9"`
}

// MoveWindowOutput is the output for the move_window tool.
type MoveWindowOutput struct {
	Window    string `json:"window"`
	Placement string `json:"placement"`
	Display   int    `json:"display"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	// Corrected reports that the window manager moved the window to another
	// monitor and it was sent back.
	Corrected bool `json:"corrected"`
}

// UndoMoveInput is the input for the undo_move tool.
type UndoMoveInput struct{}

// UndoMoveOutput is the output for the undo_move tool.
type UndoMoveOutput struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ListPlacementsInput is the input for the list_placements tool.
type ListPlacementsInput struct{}

// PlacementInfo describes one placement.
type PlacementInfo struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	KeypadDigit int    `json:"keypad_digit"`
}

// ListPlacementsOutput is the output for the list_placements tool.
type ListPlacementsOutput struct {
	Placements []PlacementInfo `json:"placements"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorInfo describes a monitor and the area left after panels and docks.
type MonitorInfo struct {
	ID     int       `json:"id"`
	Name   string    `json:"name"`
	Bounds RectValue `json:"bounds"`
	Usable RectValue `json:"usable"`
}

// RectValue is a rectangle in root window coordinates.
type RectValue struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorInfo `json:"monitors"`
}
