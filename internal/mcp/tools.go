package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winplace/internal/placement"
)

func (s *Server) handleMoveWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args MoveWindowInput) (*mcpsdk.CallToolResult, MoveWindowOutput, error) {
	if strings.TrimSpace(args.Placement) == "" {
		return nil, MoveWindowOutput{}, fmt.Errorf("placement is required")
	}
	p, err := placement.Parse(args.Placement)
	if err != nil {
		return nil, MoveWindowOutput{}, err
	}

	data, err := s.ctrl.Move(p.String())
	if err != nil {
		return nil, MoveWindowOutput{}, fmt.Errorf("move_window: %w", err)
	}

	return nil, MoveWindowOutput{
		Window:    fmt.Sprintf("0x%x", data.Window),
		Placement: data.Placement,
		Display:   data.Display,
		X:         data.X,
		Y:         data.Y,
		Width:     data.Width,
		Height:    data.Height,
		Corrected: data.Corrected,
	}, nil
}

func (s *Server) handleUndoMove(_ context.Context, _ *mcpsdk.CallToolRequest, _ UndoMoveInput) (*mcpsdk.CallToolResult, UndoMoveOutput, error) {
	data, err := s.ctrl.Undo()
	if err != nil {
		return nil, UndoMoveOutput{}, fmt.Errorf("undo_move: %w", err)
	}
	return nil, UndoMoveOutput{
		X:      data.X,
		Y:      data.Y,
		Width:  data.Width,
		Height: data.Height,
	}, nil
}

func (s *Server) handleListPlacements(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListPlacementsInput) (*mcpsdk.CallToolResult, ListPlacementsOutput, error) {
	all := placement.All()
	out := ListPlacementsOutput{Placements: make([]PlacementInfo, 0, len(all))}
	for _, p := range all {
		out.Placements = append(out.Placements, PlacementInfo{
			Name:        p.String(),
			Title:       p.Title(),
			KeypadDigit: p.KeypadDigit(),
		})
	}
	return nil, out, nil
}

func (s *Server) handleListMonitors(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListMonitorsInput) (*mcpsdk.CallToolResult, ListMonitorsOutput, error) {
	data, err := s.ctrl.GetMonitors()
	if err != nil {
		return nil, ListMonitorsOutput{}, fmt.Errorf("list_monitors: %w", err)
	}

	out := ListMonitorsOutput{Monitors: make([]MonitorInfo, 0, len(data.Monitors))}
	for _, m := range data.Monitors {
		out.Monitors = append(out.Monitors, MonitorInfo{
			ID:     m.ID,
			Name:   m.Name,
			Bounds: RectValue{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
			Usable: RectValue{X: m.UsableX, Y: m.UsableY, Width: m.UsableWidth, Height: m.UsableHeight},
		})
	}
	return nil, out, nil
}
