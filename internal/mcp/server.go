package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winplace/internal/ipc"
)

const (
	ServerName    = "winplace"
	ServerVersion = "0.1.0"
)

// Controller reaches the running daemon. *ipc.Client implements it.
type Controller interface {
	Move(placement string) (*ipc.MoveData, error)
	Undo() (*ipc.UndoData, error)
	GetMonitors() (*ipc.MonitorsData, error)
}

var _ Controller = (*ipc.Client)(nil)

// Server exposes window placement to MCP clients. Every tool goes through
// the daemon so hotkeys, the CLI and MCP share one undo history.
type Server struct {
	mcpServer *mcpsdk.Server
	ctrl      Controller
}

// NewServer creates a new MCP server that drives the daemon through ctrl.
func NewServer(ctrl Controller) *Server {
	s := &Server{ctrl: ctrl}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "move_window",
		Description: "Move the focused window to one of nine positions inside the usable area of its current monitor. The window keeps its size. Returns the final frame geometry.",
	}, s.handleMoveWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "undo_move",
		Description: "Restore the frame the most recently moved window had before its last move. Only one step of history is kept.",
	}, s.handleUndoMove)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_placements",
		Description: "List the nine placement names accepted by move_window, with their titles and numeric keypad digits.",
	}, s.handleListPlacements)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_monitors",
		Description: "List monitors with their full bounds and the usable area left after panels and docks.",
	}, s.handleListMonitors)
}
